package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	kvColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "bucket", Type: field.TypeString},
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// KvTable holds the bucketed JSON documents.
	KvTable = &schema.Table{
		Name:       "kv_entries",
		Columns:    kvColumns,
		PrimaryKey: []*schema.Column{kvColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "kventry_bucket_key",
				Unique:  true,
				Columns: []*schema.Column{kvColumns[1], kvColumns[2]},
			},
		},
	}

	llmColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LlmRequestEventsTable records every LLM API call.
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    llmColumns,
		PrimaryKey: []*schema.Column{llmColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_sequence", Columns: []*schema.Column{llmColumns[1]}},
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmColumns[2]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmColumns[5]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{llmColumns[9]}},
		},
	}

	// Tables holds every table managed by auto-migration.
	Tables = []*schema.Table{
		KvTable,
		LlmRequestEventsTable,
	}
)
