package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds one compiled schema per Schema.Name.
var compiled = struct {
	sync.Mutex
	byName map[string]*jsonschema.Schema
}{byName: map[string]*jsonschema.Schema{}}

func schemaName(s *Schema) string {
	if s == nil {
		return ""
	}
	return s.Name
}

// validate checks raw against s. A nil schema accepts anything.
func validate(s *Schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &InvalidOutputError{Schema: s.Name, Raw: raw, Err: fmt.Errorf("not JSON: %w", err)}
	}
	sch, err := compile(s)
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return &InvalidOutputError{Schema: s.Name, Raw: raw, Err: err}
	}
	return nil
}

func compile(s *Schema) (*jsonschema.Schema, error) {
	compiled.Lock()
	defer compiled.Unlock()
	if sch, ok := compiled.byName[s.Name]; ok {
		return sch, nil
	}

	// Round-trip through JSON so Go ints and []string become the
	// float64 and []any values the compiler expects.
	def, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}

	url := "mem://arise/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	compiled.byName[s.Name] = sch
	return sch, nil
}
