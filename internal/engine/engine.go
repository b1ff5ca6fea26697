// Package engine is the progression facade: it loads users and quest sets
// from a store, runs the ledger, scoring and quest rules against them, and
// persists the result atomically while serializing mutations per user.
package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/arise/internal/apperr"
	"github.com/abhisek/arise/internal/classify"
	"github.com/abhisek/arise/internal/ledger"
	"github.com/abhisek/arise/internal/metrics"
	"github.com/abhisek/arise/internal/quests"
	"github.com/abhisek/arise/internal/rewards"
	"github.com/abhisek/arise/internal/scoring"
	"github.com/abhisek/arise/internal/skills"
	"github.com/abhisek/arise/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Engine coordinates progression operations over a store.KV.
type Engine struct {
	kv              store.KV
	gen             *quests.Generator
	classifier      classify.Classifier
	classifyTimeout time.Duration
	now             func() time.Time
	loc             *time.Location
	newID           func() string
	log             zerolog.Logger
	metrics         *metrics.Metrics
	version         string

	// resetMu is held for reading by every per-user mutation and for
	// writing by the global quest reset.
	resetMu sync.RWMutex

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithGenerator sets the quest generator.
func WithGenerator(g *quests.Generator) Option {
	return func(e *Engine) { e.gen = g }
}

// WithClassifier sets the classifier used by SubmitEntry.
func WithClassifier(c classify.Classifier) Option {
	return func(e *Engine) { e.classifier = c }
}

// WithClassifyTimeout bounds classifier calls made by SubmitEntry.
func WithClassifyTimeout(d time.Duration) Option {
	return func(e *Engine) { e.classifyTimeout = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the time zone that defines a calendar day.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

// WithIDFunc overrides journal entry id generation.
func WithIDFunc(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithVersion sets the version reported by Stats.
func WithVersion(v string) Option {
	return func(e *Engine) { e.version = v }
}

// New creates an Engine over kv.
func New(kv store.KV, opts ...Option) *Engine {
	e := &Engine{
		kv:              kv,
		classifyTimeout: 10 * time.Second,
		now:             time.Now,
		loc:             time.Local,
		newID:           uuid.NewString,
		log:             zerolog.Nop(),
		version:         "dev",
		locks:           make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.gen == nil {
		e.gen = quests.NewGenerator(nil, nil)
	}
	if e.loc == nil {
		e.loc = time.Local
	}
	return e
}

// Today returns the current calendar date key in the engine's time zone.
func (e *Engine) Today() string {
	return quests.DateKey(e.now(), e.loc)
}

// lockUser serializes mutations for userID and excludes the global reset.
// The returned func releases both locks.
func (e *Engine) lockUser(userID string) func() {
	e.resetMu.RLock()

	e.locksMu.Lock()
	mu, ok := e.locks[userID]
	if !ok {
		mu = &sync.Mutex{}
		e.locks[userID] = mu
	}
	e.locksMu.Unlock()

	mu.Lock()
	return func() {
		mu.Unlock()
		e.resetMu.RUnlock()
	}
}

func validateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return &apperr.ValidationError{Field: "userId", Reason: "must not be empty"}
	}
	return nil
}

func (e *Engine) loadUser(ctx context.Context, kv store.KV, userID string) (*ledger.User, error) {
	var u ledger.User
	ok, err := kv.Get(ctx, store.BucketUsers, userID, &u)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &apperr.NotFoundError{Kind: "user", ID: userID}
	}
	if u.JournalEntries == nil {
		u.JournalEntries = []ledger.JournalEntry{}
	}
	return &u, nil
}

// GetOrCreateUser returns the user, creating it with every skill at level 1
// on first access.
func (e *Engine) GetOrCreateUser(ctx context.Context, userID string) (*ledger.User, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	unlock := e.lockUser(userID)
	defer unlock()

	u, err := e.loadUser(ctx, e.kv, userID)
	if err == nil {
		return u, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	u = ledger.NewUser(userID, e.now())
	if err := e.kv.Put(ctx, store.BucketUsers, userID, u); err != nil {
		return nil, err
	}
	e.log.Info().Str("user", userID).Msg("user created")
	return u, nil
}

// GetUser returns an existing user or a NotFoundError.
func (e *Engine) GetUser(ctx context.Context, userID string) (*ledger.User, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return e.loadUser(ctx, e.kv, userID)
}

// XPResult is the outcome of a direct skill award.
type XPResult struct {
	User            *ledger.User `json:"user"`
	Award           ledger.Award `json:"-"`
	LeveledUpSkills []skills.Key `json:"leveledUpSkills"`
}

// ApplySkillXP awards amount XP to one skill of an existing user.
func (e *Engine) ApplySkillXP(ctx context.Context, userID string, skill skills.Key, amount int) (*XPResult, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	unlock := e.lockUser(userID)
	defer unlock()

	u, err := e.loadUser(ctx, e.kv, userID)
	if err != nil {
		return nil, err
	}
	award, err := u.ApplyXP(skill, amount, e.now())
	if err != nil {
		return nil, err
	}
	if err := u.CheckInvariants(); err != nil {
		return nil, err
	}
	if err := e.kv.Put(ctx, store.BucketUsers, userID, u); err != nil {
		return nil, err
	}

	e.recordAward(userID, skill, "direct", amount, award.LevelsGained)
	res := &XPResult{User: u, Award: award, LeveledUpSkills: []skills.Key{}}
	if award.LeveledUp() {
		res.LeveledUpSkills = append(res.LeveledUpSkills, skill)
	}
	return res, nil
}

func (e *Engine) recordAward(userID string, skill skills.Key, source string, amount, levels int) {
	e.metrics.XPAwarded(string(skill), source, amount)
	e.metrics.LevelUps(string(skill), levels)
	if levels > 0 {
		e.log.Info().
			Str("user", userID).
			Str("skill", string(skill)).
			Int("levels", levels).
			Str("source", source).
			Msg("level up")
	}
}

// ScoreEntry allocates XP for text given classifier confidences. It does
// not touch any user.
func (e *Engine) ScoreEntry(text string, analysis map[skills.Key]int) scoring.Result {
	return scoring.Score(text, analysis)
}

// DeriveMilestones lists the milestone rewards earned by an existing user.
func (e *Engine) DeriveMilestones(ctx context.Context, userID string) ([]rewards.Milestone, error) {
	u, err := e.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return rewards.Derive(u), nil
}
