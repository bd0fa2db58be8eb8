package domain

import (
	"math"
	"time"
)

// Status is the workflow state of a task as reported by the
// project-tracking backend.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on-hold"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsCompleted() bool {
	return s == StatusCompleted
}

// Priority is the declared priority of a task. Unknown values are treated
// as low priority.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) String() string {
	return string(p)
}

// Score maps a priority to its display-urgency score for tasks that are
// neither overdue, due today, nor due tomorrow.
func (p Priority) Score() int {
	switch p {
	case PriorityHigh:
		return 70
	case PriorityMedium:
		return 50
	default:
		return 30
	}
}

// NoDueDateSortKey is the synthetic daysRemaining assigned to tasks without
// an end date so they sort last among equal scores.
const NoDueDateSortKey = 999

// TaskDeadline is a task record as read from the task source. The
// coordinator never owns or mutates these; they are re-fetched each cycle.
type TaskDeadline struct {
	ID          string
	Title       string
	ProjectName string
	EndDate     time.Time // zero value means no due date
	Status      Status
	Priority    Priority
	AssignedTo  string
}

func (t *TaskDeadline) HasDueDate() bool {
	return !t.EndDate.IsZero()
}

// DaysRemaining returns the calendar-day distance from now to the task's
// end date. Day granularity: due today is 0, overdue yesterday is -1.
// Always recomputed at evaluation time, never cached across cycles.
func (t *TaskDeadline) DaysRemaining(now time.Time) int {
	if !t.HasDueDate() {
		return NoDueDateSortKey
	}

	diff := startOfDay(t.EndDate).Sub(startOfDay(now.In(t.EndDate.Location())))
	// Round instead of truncate so DST-shortened days still count as one day.
	return int(math.Round(diff.Hours() / 24))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// RankedTask is a TaskDeadline enriched with the urgency classification
// computed for one evaluation cycle.
type RankedTask struct {
	Task          TaskDeadline `json:"task"`
	DaysRemaining int          `json:"days_remaining"`
	Tier          UrgencyTier  `json:"tier"`
	Label         string       `json:"label"`
	Score         int          `json:"score"`
}
