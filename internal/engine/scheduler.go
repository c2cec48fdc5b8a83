package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/stock-tracker/internal/metrics"
)

// Scheduler runs the periodic stock digest.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	log    *slog.Logger

	digestEntryID cron.EntryID
}

// NewScheduler creates a Scheduler that sends a digest on the given standard
// cron schedule (for example "0 8 * * 1-5" or "@daily").
func NewScheduler(eng *Engine, schedule string, log *slog.Logger) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	id, err := c.AddFunc(schedule, s.runDigest)
	if err != nil {
		return nil, fmt.Errorf("registering digest schedule %q: %w", schedule, err)
	}
	s.digestEntryID = id

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
	s.SyncNextRunTimestamps()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// SyncNextRunTimestamps publishes the next digest time as a gauge.
func (s *Scheduler) SyncNextRunTimestamps() {
	next := s.cron.Entry(s.digestEntryID).Next
	if next.IsZero() {
		return
	}
	metrics.SchedulerNextDigestTimestamp.Set(float64(next.Unix()))
}

func (s *Scheduler) runDigest() {
	ctx := context.Background()
	s.log.Info("scheduled digest starting")
	if err := s.engine.SendDigest(ctx); err != nil {
		s.log.Error("scheduled digest failed", "error", err)
	}
	s.SyncNextRunTimestamps()
}
