package tasksource

import (
	"context"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
)

//go:generate mockgen -source=source.go -destination=mock.go -package=tasksource

// TaskSource provides the task records the coordinator evaluates. The
// backing implementation (project-tracking API or direct database read)
// must already exclude completed tasks.
type TaskSource interface {
	FetchUpcomingTasks(ctx context.Context, windowDays int) ([]domain.TaskDeadline, error)
}
