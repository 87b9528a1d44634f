// Package monitor keeps a cached view of dependency health for the
// health endpoint, refreshed on a fixed interval.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/taskloop/backend/internal/infrastructure/activitylog"
)

type Monitor struct {
	pg       *pgxpool.Pool
	redis    *redislib.Client
	activity *activitylog.Store
	interval time.Duration
	logger   *zap.Logger

	cancel context.CancelFunc

	mu     sync.RWMutex
	status Status
}

func New(pg *pgxpool.Pool, redis *redislib.Client, activity *activitylog.Store, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		pg:       pg,
		redis:    redis,
		activity: activity,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the first check synchronously so the health endpoint has a
// real status from the first request, then keeps refreshing until Stop.
func (m *Monitor) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	m.refresh(ctx)
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.refresh(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Monitor) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
}

// IsOnline reports whether both primary datastores answered the last ping.
func (m *Monitor) IsOnline() bool {
	s := m.GetStatus()
	return s.PostgreSQL && s.Redis
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) refresh(ctx context.Context) {
	next := Status{LastCheck: time.Now()}

	if m.pg != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		next.PostgreSQL = m.pg.Ping(pingCtx) == nil
		cancel()
	}
	if m.redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		next.Redis = m.redis.Ping(pingCtx).Err() == nil
		cancel()
	}
	if m.activity != nil {
		size, err := m.activity.Size()
		next.ActivityLog = err == nil
		next.ActivitySize = size
	}

	m.mu.Lock()
	prev := m.status
	m.status = next
	m.mu.Unlock()

	if (prev.PostgreSQL && !next.PostgreSQL) || (prev.Redis && !next.Redis) {
		m.logger.Warn("dependency went offline",
			zap.Bool("postgresql", next.PostgreSQL),
			zap.Bool("redis", next.Redis),
		)
	}
}
