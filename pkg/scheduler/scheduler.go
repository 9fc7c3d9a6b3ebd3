package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"veritor-hq/veritor/pkg/policy"
)

// BatchFunc receives each completed batch, e.g. to score and persist it.
type BatchFunc func(profileID string, batch *policy.ResultBatch)

// Config contains configuration for the evaluation scheduler.
type Config struct {
	// Schedule is a standard five-field cron expression.
	//
	// Common expressions:
	//   - "0 3 * * *"    - daily at 3 AM
	//   - "0 */6 * * *"  - every 6 hours
	//   - "*/30 * * * *" - every 30 minutes
	Schedule string

	// Profiles lists profile ids to evaluate each tick. Empty means
	// every policy already instantiated on the model.
	Profiles []string
}

// Scheduler re-evaluates policies on a cron schedule. Each tick runs the
// configured profiles sequentially; a policy still evaluating from the
// previous tick is skipped rather than queued.
type Scheduler struct {
	model   *policy.Model
	config  Config
	onBatch BatchFunc
	cron    *cron.Cron
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
}

// New creates an evaluation scheduler. onBatch may be nil.
func New(model *policy.Model, config Config, onBatch BatchFunc, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		model:   model,
		config:  config,
		onBatch: onBatch,
		cron:    cron.New(),
		logger:  logger.With("component", "scheduler"),
	}
}

// Start validates the schedule and begins ticking. The scheduler stops
// itself when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.Schedule == "" {
		s.logger.Info("schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.config.Schedule, err)
	}

	_, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runPass(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule evaluation: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("evaluation scheduler started",
		"schedule", s.config.Schedule,
		"profiles", s.config.Profiles,
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runPass evaluates every configured profile once.
func (s *Scheduler) runPass(ctx context.Context) {
	profiles := s.config.Profiles
	if len(profiles) == 0 {
		for _, p := range s.model.Policies() {
			profiles = append(profiles, p.ProfileID())
		}
	}
	if len(profiles) == 0 {
		s.logger.Debug("scheduled pass skipped, no policies instantiated")
		return
	}

	s.logger.Info("scheduled evaluation pass starting", "profiles", len(profiles))

	for _, profileID := range profiles {
		if ctx.Err() != nil {
			return
		}
		s.runProfile(ctx, profileID)
	}
}

func (s *Scheduler) runProfile(ctx context.Context, profileID string) {
	p, err := s.model.Policy(profileID)
	if err != nil {
		s.logger.Error("scheduled evaluation skipped, profile resolution failed",
			"profile_id", profileID,
			"error", err,
		)
		return
	}

	batch, err := p.Evaluate(ctx)
	if err == policy.ErrEvaluating {
		s.logger.Warn("scheduled evaluation skipped, policy busy",
			"profile_id", profileID,
		)
		return
	}
	if err != nil {
		s.logger.Error("scheduled evaluation failed",
			"profile_id", profileID,
			"error", err,
		)
		return
	}

	if s.onBatch != nil {
		s.onBatch(profileID, batch)
	}
}

// Stop stops the scheduler and waits for a running pass to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
		s.running = false
		s.logger.Info("evaluation scheduler stopped")
	}
}

// IsRunning reports whether the scheduler is ticking.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled evaluation time, nil when idle.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
