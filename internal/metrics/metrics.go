// Package metrics exposes Prometheus collectors for progression activity.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "arise"

// Metrics holds the engine's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	xpAwarded      *prometheus.CounterVec
	levelUps       *prometheus.CounterVec
	entries        *prometheus.CounterVec
	questsDone     *prometheus.CounterVec
	questResets    prometheus.Counter
	classifyErrors *prometheus.CounterVec
	llmRequests    *prometheus.CounterVec
	llmLatency     *prometheus.HistogramVec
}

// MustNew constructs Metrics registered with reg. A nil reg uses the
// default registerer. Registration errors panic, as with promauto.
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		xpAwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "xp_awarded_total",
			Help:      "XP applied to skills, by skill and source.",
		}, []string{"skill", "source"}),
		levelUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "level_ups_total",
			Help:      "Skill level-ups, by skill.",
		}, []string{"skill"}),
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_entries_total",
			Help:      "Journal entries recorded, by entry type.",
		}, []string{"type"}),
		questsDone: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quests_completed_total",
			Help:      "Daily quests completed, by skill.",
		}, []string{"skill"}),
		questResets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quest_resets_total",
			Help:      "Global daily quest resets.",
		}),
		classifyErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifier_failures_total",
			Help:      "Classifier calls that failed, by classifier.",
		}, []string{"classifier"}),
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "LLM provider calls, by model and outcome.",
		}, []string{"model", "outcome"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "LLM provider call latency, by model.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"model"}),
	}
	reg.MustRegister(m.xpAwarded, m.levelUps, m.entries, m.questsDone, m.questResets,
		m.classifyErrors, m.llmRequests, m.llmLatency)
	return m
}

// XPAwarded records amount XP applied to skill from source ("entry" or "quest").
func (m *Metrics) XPAwarded(skill, source string, amount int) {
	if m == nil || amount <= 0 {
		return
	}
	m.xpAwarded.WithLabelValues(skill, source).Add(float64(amount))
}

// LevelUps records n level-ups on skill.
func (m *Metrics) LevelUps(skill string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.levelUps.WithLabelValues(skill).Add(float64(n))
}

// EntryRecorded counts a journal entry of the given type.
func (m *Metrics) EntryRecorded(entryType string) {
	if m == nil {
		return
	}
	m.entries.WithLabelValues(entryType).Inc()
}

// QuestCompleted counts a completed quest for skill.
func (m *Metrics) QuestCompleted(skill string) {
	if m == nil {
		return
	}
	m.questsDone.WithLabelValues(skill).Inc()
}

// QuestReset counts a global quest reset.
func (m *Metrics) QuestReset() {
	if m == nil {
		return
	}
	m.questResets.Inc()
}

// ClassifierFailed counts a failed call to the named classifier.
func (m *Metrics) ClassifierFailed(name string) {
	if m == nil {
		return
	}
	m.classifyErrors.WithLabelValues(name).Inc()
}

// LLMRequest records one provider call.
func (m *Metrics) LLMRequest(model string, ok bool, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.llmRequests.WithLabelValues(model, outcome).Inc()
	m.llmLatency.WithLabelValues(model).Observe(d.Seconds())
}
