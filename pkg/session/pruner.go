package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Pruner removes expired sessions on a cron schedule.
//
// Common schedules:
//   - "0 * * * *"   - hourly
//   - "0 3 * * *"   - daily at 3 AM
type Pruner struct {
	store    Store
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool

	// OnPruned, if set before Start, is called with the number of sessions
	// removed by each prune pass that removed any.
	OnPruned func(removed int64)
}

// NewPruner creates a pruner for the given store. An empty schedule
// disables pruning.
func NewPruner(store Store, schedule string) *Pruner {
	return &Pruner{
		store:    store,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "session.pruner"),
	}
}

// Start begins scheduled pruning. It returns immediately; pruning runs on
// the cron goroutine until the context is cancelled or Stop is called.
func (p *Pruner) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.schedule == "" {
		p.logger.Info("prune schedule not configured, skipping pruner")
		return nil
	}

	if _, err := cron.ParseStandard(p.schedule); err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", p.schedule, err)
	}

	if _, err := p.cron.AddFunc(p.schedule, func() {
		p.runPruning(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule session pruning: %w", err)
	}

	p.cron.Start()
	p.running = true

	p.logger.Info("session pruner started", "schedule", p.schedule)

	go func() {
		<-ctx.Done()
		p.Stop()
	}()

	return nil
}

// Stop halts the scheduler. In-flight pruning completes.
func (p *Pruner) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	stopCtx := p.cron.Stop()
	<-stopCtx.Done()
	p.running = false

	p.logger.Info("session pruner stopped")
}

// runPruning executes one prune pass.
func (p *Pruner) runPruning(ctx context.Context) {
	removed, err := p.store.DeleteExpiredSessions(ctx)
	if err != nil {
		p.logger.Error("session pruning failed", "error", err)
		return
	}

	if removed > 0 {
		p.logger.Info("pruned expired sessions", "removed", removed)
		if p.OnPruned != nil {
			p.OnPruned(removed)
		}
	}
}
