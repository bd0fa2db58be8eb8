package dispatch

import (
	"fmt"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
)

// urgentVibratePattern is the vibration hint attached to Overdue and
// Critical alerts (milliseconds on/off/on).
var urgentVibratePattern = []int{200, 100, 200}

// AlertTag derives the task-scoped tag used both for OS-level replacement
// dedup and for deleting a queued push on dismissal.
func AlertTag(taskID string) string {
	return "deadline-" + taskID
}

// RenderPayload turns a ranked task into the alert payload handed to the
// dispatcher. The tag is task-scoped so repeat alerts for the same task
// replace each other on OS-level surfaces instead of stacking.
func RenderPayload(task domain.RankedTask) domain.AlertPayload {
	body := task.Label
	if task.Task.ProjectName != "" {
		body = fmt.Sprintf("%s (%s)", task.Label, task.Task.ProjectName)
	}

	payload := domain.AlertPayload{
		TaskID: task.Task.ID,
		Title:  task.Task.Title,
		Body:   body,
		Tag:    AlertTag(task.Task.ID),
		Tier:   task.Tier,
		Data: map[string]string{
			"task_id": task.Task.ID,
			"tier":    string(task.Tier),
		},
	}

	if task.Tier.IsHighUrgency() {
		payload.RequireInteraction = true
		payload.Vibrate = urgentVibratePattern
	}

	return payload
}

// RenderPayloads renders a ranked list in order.
func RenderPayloads(tasks []domain.RankedTask) []domain.AlertPayload {
	payloads := make([]domain.AlertPayload, 0, len(tasks))
	for _, task := range tasks {
		payloads = append(payloads, RenderPayload(task))
	}
	return payloads
}
