package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskloop/backend/internal/infrastructure/activitylog"
)

// ActivitySweeper prunes old activity-log entries on a cron schedule so
// the embedded store stays bounded.
type ActivitySweeper struct {
	store     *activitylog.Store
	retention time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewActivitySweeper(store *activitylog.Store, retention time.Duration, schedule string, logger *zap.Logger) *ActivitySweeper {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	if schedule == "" {
		schedule = "@every 1h"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivitySweeper{
		store:     store,
		retention: retention,
		schedule:  schedule,
		logger:    logger,
	}
}

// Start schedules the sweep. An invalid schedule is an error; the
// sweeper is not optional once constructed.
func (s *ActivitySweeper) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *ActivitySweeper) Stop(ctx context.Context) {
	if s.cron == nil {
		return
	}
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
}

func (s *ActivitySweeper) sweep() {
	removed, err := s.store.Sweep(time.Now().Add(-s.retention))
	if err != nil {
		s.logger.Error("activity log sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("activity log swept", zap.Int("removed", removed))
	}
}
