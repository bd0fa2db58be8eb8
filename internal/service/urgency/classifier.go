package urgency

import (
	"fmt"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
)

const (
	// ScoreOverdue through ScoreUrgent are the tier-fixed scores; tasks
	// further out score by declared priority instead.
	ScoreOverdue  = 100
	ScoreCritical = 90
	ScoreUrgent   = 80

	// WarningThresholdDays is the upper bound (inclusive) of the warning
	// tier: due within 2-3 days.
	WarningThresholdDays = 3
)

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify maps a task's days-remaining to its urgency tier. Precedence is
// fixed: overdue, due today, due tomorrow, warning window, normal.
func (c *Classifier) Classify(daysRemaining int) domain.UrgencyTier {
	switch {
	case daysRemaining < 0:
		return domain.TierOverdue
	case daysRemaining == 0:
		return domain.TierCritical
	case daysRemaining == 1:
		return domain.TierUrgent
	case daysRemaining <= WarningThresholdDays:
		return domain.TierWarning
	default:
		return domain.TierNormal
	}
}

// Label renders the human-readable urgency text for a task. Tasks without a
// due date carry the NoDueDateSortKey sentinel and get a fixed label.
func (c *Classifier) Label(daysRemaining int) string {
	switch {
	case daysRemaining == domain.NoDueDateSortKey:
		return "No due date"
	case daysRemaining < 0:
		return fmt.Sprintf("%d days overdue", -daysRemaining)
	case daysRemaining == 0:
		return "Due today"
	case daysRemaining == 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("%d days left", daysRemaining)
	}
}

// Score computes display priority. Overdue, due-today and due-tomorrow
// outrank any declared priority; everything else falls back to the task's
// priority score.
func (c *Classifier) Score(daysRemaining int, priority domain.Priority) int {
	switch {
	case daysRemaining < 0:
		return ScoreOverdue
	case daysRemaining == 0:
		return ScoreCritical
	case daysRemaining == 1:
		return ScoreUrgent
	default:
		return priority.Score()
	}
}

// Rank classifies a task in full for one evaluation instant.
func (c *Classifier) Rank(task domain.TaskDeadline, daysRemaining int) domain.RankedTask {
	return domain.RankedTask{
		Task:          task,
		DaysRemaining: daysRemaining,
		Tier:          c.Classify(daysRemaining),
		Label:         c.Label(daysRemaining),
		Score:         c.Score(daysRemaining, task.Priority),
	}
}
