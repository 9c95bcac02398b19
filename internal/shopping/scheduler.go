package shopping

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler periodically sweeps recurring items and regenerates the ones
// whose interval has elapsed
type Scheduler struct {
	service *Service
	period  time.Duration
}

// NewScheduler creates a scheduler that sweeps every period
func NewScheduler(service *Service, period time.Duration) *Scheduler {
	return &Scheduler{service: service, period: period}
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled. Sweep errors are logged, never fatal.
func (s *Scheduler) Run(ctx context.Context) {
	slog.InfoContext(ctx, "recurring item scheduler started", "period", s.period)

	s.sweep(ctx)

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "recurring item scheduler stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	regenerated, err := s.service.RegenerateDueItems(ctx, time.Now())
	if err != nil {
		slog.ErrorContext(ctx, "recurring item sweep failed", "error", err)
		return
	}
	if regenerated > 0 {
		slog.InfoContext(ctx, "regenerated recurring items", "count", regenerated)
	}
}
