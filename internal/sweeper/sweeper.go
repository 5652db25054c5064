// Package sweeper removes expired session tokens on a fixed schedule,
// independent of request traffic.
package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nbekov/noted/internal/metrics"
	"github.com/nbekov/noted/internal/repository"
	"github.com/robfig/cron/v3"
)

type Sweeper struct {
	tokens   repository.TokenRepository
	logger   *slog.Logger
	schedule string
	now      func() time.Time
	cron     *cron.Cron
}

type Option func(*Sweeper)

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Sweeper) { s.now = now }
}

// New builds a sweeper firing on the given cron schedule (e.g. "@hourly").
// The sweeper shares the live token repository with request traffic, so its
// deletions are immediately visible.
func New(tokens repository.TokenRepository, logger *slog.Logger, schedule string, opts ...Option) *Sweeper {
	s := &Sweeper{
		tokens:   tokens,
		logger:   logger.With("component", "sweeper"),
		schedule: schedule,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start schedules the sweep. SkipIfStillRunning guarantees a timer firing
// while the previous sweep is still in flight is dropped, never run in
// parallel.
func (s *Sweeper) Start() error {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	if _, err := c.AddFunc(s.schedule, func() {
		s.Sweep(context.Background())
	}); err != nil {
		return err
	}
	c.Start()
	s.cron = c

	s.logger.Info("sweeper started", "schedule", s.schedule)
	return nil
}

// Stop cancels the timer and returns a context that is done once any
// in-flight sweep has finished.
func (s *Sweeper) Stop() context.Context {
	if s.cron == nil {
		done, cancel := context.WithCancel(context.Background())
		cancel()
		return done
	}
	s.logger.Info("sweeper stopped")
	return s.cron.Stop()
}

// Sweep scans all tokens and deletes the expired ones. Failures are logged
// and skipped; the next scheduled run retries the full scan. Deleting a
// token that is already gone is a no-op.
func (s *Sweeper) Sweep(ctx context.Context) {
	start := s.now()

	tokens, err := s.tokens.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "sweep: list tokens", "error", err)
		return
	}

	var deleted int
	for _, token := range tokens {
		if !token.Expired(start) {
			continue
		}
		if err := s.tokens.Delete(ctx, token.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			s.logger.ErrorContext(ctx, "sweep: delete token", "token_id", token.ID, "error", err)
			continue
		}
		deleted++
	}

	metrics.SweepDuration.Observe(time.Since(start).Seconds())
	if deleted > 0 {
		metrics.SweptTokensTotal.Add(float64(deleted))
		s.logger.InfoContext(ctx, "swept expired tokens", "deleted", deleted)
	}
}
