package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := MustNew(reg)

	m.XPAwarded("fitness", "entry", 8)
	m.XPAwarded("fitness", "entry", 2)
	m.XPAwarded("fitness", "entry", 0)
	m.LevelUps("fitness", 2)
	m.EntryRecorded("text")
	m.QuestCompleted("learning")
	m.QuestReset()
	m.ClassifierFailed("huggingface")
	m.LLMRequest("gpt-4o-mini", true, 300*time.Millisecond)
	m.LLMRequest("gpt-4o-mini", false, time.Second)

	if got := testutil.ToFloat64(m.xpAwarded.WithLabelValues("fitness", "entry")); got != 10 {
		t.Errorf("xp awarded = %v, want 10", got)
	}
	if got := testutil.ToFloat64(m.levelUps.WithLabelValues("fitness")); got != 2 {
		t.Errorf("level ups = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.questResets); got != 1 {
		t.Errorf("resets = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.entries); n != 1 {
		t.Errorf("entry series = %d, want 1", n)
	}
	if got := testutil.ToFloat64(m.llmRequests.WithLabelValues("gpt-4o-mini", "error")); got != 1 {
		t.Errorf("failed llm requests = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.llmLatency); n != 1 {
		t.Errorf("latency series = %d, want 1", n)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.XPAwarded("fitness", "entry", 5)
	m.LevelUps("fitness", 1)
	m.EntryRecorded("text")
	m.QuestCompleted("fitness")
	m.QuestReset()
	m.ClassifierFailed("llm")
	m.LLMRequest("mock", true, 0)
}
