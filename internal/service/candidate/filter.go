package candidate

import (
	"time"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
)

// The two inclusion windows observed in the dashboard. They are distinct
// call sites, not one tunable: the alert panel looks two weeks out, the
// mobile deadline check one week.
const (
	WindowUpcoming      = 14
	WindowDeadlineAlert = 7
)

type Filter struct{}

func NewFilter() *Filter {
	return &Filter{}
}

// Select returns the tasks eligible for alerting at now, unordered.
// A task qualifies when it is not completed and either its deadline falls
// within windowDays, it is overdue, or it has no due date but is
// high priority. Tasks missing a due date at lower priority are excluded
// rather than treated as malformed.
func (f *Filter) Select(tasks []domain.TaskDeadline, now time.Time, windowDays int) []domain.TaskDeadline {
	selected := make([]domain.TaskDeadline, 0, len(tasks))

	for _, task := range tasks {
		if task.Status.IsCompleted() {
			continue
		}

		if !task.HasDueDate() {
			if task.Priority == domain.PriorityHigh {
				selected = append(selected, task)
			}
			continue
		}

		// Overdue tasks stay in regardless of window width.
		if task.DaysRemaining(now) <= windowDays {
			selected = append(selected, task)
		}
	}

	return selected
}
