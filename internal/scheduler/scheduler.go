// Package scheduler runs the daily quest reset on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Resetter clears every user's daily quest set.
type Resetter interface {
	ResetDailyQuests(ctx context.Context) (int, error)
}

// Config holds scheduler configuration.
type Config struct {
	// Spec is a five-field cron expression or a descriptor such as
	// "@midnight" or "@every 1h".
	Spec     string
	Location *time.Location
	// Timeout bounds a single reset run.
	Timeout time.Duration
}

// Scheduler triggers quest resets using robfig/cron.
type Scheduler struct {
	cron     *cron.Cron
	resetter Resetter
	config   Config
	log      zerolog.Logger
	entryID  cron.EntryID
	stopped  chan struct{}
	stopOnce sync.Once
}

// New validates cfg.Spec and creates a Scheduler. It does not start it.
func New(cfg Config, r Resetter, log zerolog.Logger) (*Scheduler, error) {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(
		cron.WithParser(parser),
		cron.WithLocation(cfg.Location),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	s := &Scheduler{
		cron:     c,
		resetter: r,
		config:   cfg,
		log:      log,
		stopped:  make(chan struct{}),
	}
	id, err := c.AddFunc(cfg.Spec, func() { s.RunOnce(context.Background()) })
	if err != nil {
		return nil, fmt.Errorf("invalid quest reset schedule %q: %w", cfg.Spec, err)
	}
	s.entryID = id
	return s, nil
}

// Start runs the cron loop until ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	s.log.Info().
		Str("spec", s.config.Spec).
		Str("location", s.config.Location.String()).
		Time("next", s.Next()).
		Msg("quest reset scheduler started")

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-s.stopped:
		}
	}()
}

// Stop halts the scheduler and waits for a running reset to finish. Safe
// to call multiple times.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		<-s.cron.Stop().Done()
		close(s.stopped)
		s.log.Info().Msg("quest reset scheduler stopped")
	})
}

// Done is closed once the scheduler has fully stopped.
func (s *Scheduler) Done() <-chan struct{} {
	return s.stopped
}

// Next returns the next scheduled reset, or the zero time before Start.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entryID).Next
}

// RunOnce performs a single reset now.
func (s *Scheduler) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	n, err := s.resetter.ResetDailyQuests(ctx)
	if err != nil {
		s.log.Error().Stack().Err(err).Msg("daily quest reset failed")
		return
	}
	s.log.Info().Int("sets_cleared", n).Msg("daily quest reset completed")
}
