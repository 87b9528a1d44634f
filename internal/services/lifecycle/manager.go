// Package lifecycle sequences graceful shutdown: components register a
// named closer at startup and are stopped in reverse order on SIGTERM
// or SIGINT.
package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownFunc stops one component. It must respect ctx's deadline.
type ShutdownFunc func(ctx context.Context) error

type closer struct {
	name string
	stop ShutdownFunc
}

// Manager collects shutdown closers and runs them once on termination.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu      sync.Mutex
	closers []closer
}

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{timeout: timeout, logger: logger}
}

// Register adds a closer. Registration order is startup order; shutdown
// runs the closers last-in first-out.
func (m *Manager) Register(name string, stop ShutdownFunc) {
	if stop == nil {
		return
	}
	m.mu.Lock()
	m.closers = append(m.closers, closer{name: name, stop: stop})
	m.mu.Unlock()
}

// Listen arms the signal handler; the cancel function fires once on
// SIGTERM or SIGINT.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		sig := <-sigCh
		m.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()
}

// Shutdown stops every registered component in reverse order under one
// shared deadline and returns the joined errors.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	closers := make([]closer, len(m.closers))
	copy(closers, m.closers)
	m.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		c := closers[i]
		started := time.Now()
		if err := c.stop(ctx); err != nil {
			m.logger.Error("component stop failed",
				zap.String("component", c.name),
				zap.Error(err),
			)
			errs = append(errs, err)
			continue
		}
		m.logger.Info("component stopped",
			zap.String("component", c.name),
			zap.Duration("took", time.Since(started)),
		)
	}
	return errors.Join(errs...)
}
