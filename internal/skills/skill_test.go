package skills

import (
	"math"
	"testing"

	"github.com/abhisek/arise/internal/apperr"
)

func TestXPThreshold_KnownValues(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 150},
		{3, 225},
		{4, 337},
		{5, 506},
		{10, 3844},
	}
	for _, tt := range tests {
		if got := XPThreshold(tt.level); got != tt.want {
			t.Errorf("XPThreshold(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestXPThreshold_MatchesFormula(t *testing.T) {
	for level := 1; level <= 40; level++ {
		want := int(math.Floor(100 * math.Pow(1.5, float64(level-1))))
		if got := XPThreshold(level); got != want {
			t.Errorf("XPThreshold(%d) = %d, want %d", level, got, want)
		}
	}
}

func TestXPThreshold_StrictlyIncreasing(t *testing.T) {
	prev := XPThreshold(1)
	for level := 2; level <= 60; level++ {
		cur := XPThreshold(level)
		if cur <= prev {
			t.Fatalf("XPThreshold(%d) = %d, not greater than XPThreshold(%d) = %d", level, cur, level-1, prev)
		}
		prev = cur
	}
}

func TestXPThreshold_ClampsLowLevels(t *testing.T) {
	if got := XPThreshold(0); got != 100 {
		t.Errorf("XPThreshold(0) = %d, want 100", got)
	}
	if got := XPThreshold(-3); got != 100 {
		t.Errorf("XPThreshold(-3) = %d, want 100", got)
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(1, 0); got != 0 {
		t.Errorf("Progress(1, 0) = %f, want 0", got)
	}
	if got := Progress(1, 50); got != 0.5 {
		t.Errorf("Progress(1, 50) = %f, want 0.5", got)
	}
	if got := Progress(2, 75); got != 0.5 {
		t.Errorf("Progress(2, 75) = %f, want 0.5", got)
	}
}

func TestAll_EightSkillsInCatalog(t *testing.T) {
	all := All()
	if len(all) != 8 {
		t.Fatalf("All() has %d skills, want 8", len(all))
	}
	for _, k := range all {
		info, ok := Lookup(k)
		if !ok {
			t.Errorf("skill %q missing from catalog", k)
			continue
		}
		if info.Name == "" || info.Description == "" || info.Color == "" {
			t.Errorf("skill %q has incomplete catalog entry: %+v", k, info)
		}
	}
	if len(Catalog()) != len(all) {
		t.Errorf("Catalog() has %d entries, want %d", len(Catalog()), len(all))
	}
}

func TestParse(t *testing.T) {
	k, err := Parse("emotional_intelligence")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if k != EmotionalIntelligence {
		t.Errorf("Parse = %q, want %q", k, EmotionalIntelligence)
	}

	_, err = Parse("juggling")
	if !apperr.IsNotFound(err) {
		t.Errorf("Parse(unknown) error = %v, want NotFoundError", err)
	}
}

func TestDisplayName(t *testing.T) {
	if got := EmotionalIntelligence.DisplayName(); got != "Emotional Intelligence" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := Key("other").DisplayName(); got != "other" {
		t.Errorf("DisplayName(unknown) = %q, want raw key", got)
	}
}
