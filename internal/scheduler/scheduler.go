package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/alert"
)

// Scheduler drives periodic evaluation cycles for the deadline-check
// surface. It stops when its context is cancelled.
type Scheduler struct {
	coordinator *alert.Coordinator
	interval    time.Duration
	surface     alert.Surface
}

func New(coordinator *alert.Coordinator, interval time.Duration, surface alert.Surface) *Scheduler {
	return &Scheduler{
		coordinator: coordinator,
		interval:    interval,
		surface:     surface,
	}
}

// Run blocks until ctx is cancelled, firing one cycle per interval. The
// first cycle fires after one full interval, not at startup; the login
// trigger covers the start of a session.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "periodic check scheduler started",
		slog.Duration("interval", s.interval),
		slog.String("surface", string(s.surface)),
	)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "periodic check scheduler stopped")
			return
		case <-ticker.C:
			result := s.coordinator.RunCycle(ctx, s.surface, alert.TriggerPeriodic)
			if result.Stale {
				slog.DebugContext(ctx, "periodic cycle superseded",
					slog.String("run_id", result.RunID),
				)
			}
		}
	}
}
