package dispatch

import (
	"context"
	"log/slog"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/infra/pushqueue"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/observability/metrics"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/observability/tracing"
)

// Result reports the outcome of one payload's dispatch. Failures surface
// here as degraded outcomes, never as errors to the caller.
type Result struct {
	TaskID  string
	Tag     string
	Tier    domain.UrgencyTier
	Outcome domain.DeliveryOutcome
}

// Dispatcher routes rendered alerts to the push channel when the cached
// capability probe allows it, degrading to in-app-only delivery otherwise.
type Dispatcher struct {
	queue        pushqueue.PushQueue
	capabilities Capabilities
	metrics      *metrics.AlertMetrics
}

// Config carries the capability probe inputs.
type Config struct {
	// PushPermission is the permission state reported by the client
	// platform: "granted", "denied", or "default".
	PushPermission string
	// Origin is the origin the alert surface is served from; only secure
	// origins may use the push channel.
	Origin string
}

func NewDispatcher(queue pushqueue.PushQueue, cfg Config, alertMetrics *metrics.AlertMetrics) *Dispatcher {
	caps := Capabilities{
		PushConfigured:    queue != nil,
		PermissionGranted: cfg.PushPermission == "granted",
		SecureContext:     isSecureOrigin(cfg.Origin),
	}

	slog.Info("notification dispatcher initialized",
		slog.Bool("push_configured", caps.PushConfigured),
		slog.Bool("permission_granted", caps.PermissionGranted),
		slog.Bool("secure_context", caps.SecureContext),
	)

	return &Dispatcher{
		queue:        queue,
		capabilities: caps,
		metrics:      alertMetrics,
	}
}

func (d *Dispatcher) Capabilities() Capabilities {
	return d.capabilities
}

// DispatchAll delivers every payload, one outcome per payload. A failure on
// one payload never stops the rest.
func (d *Dispatcher) DispatchAll(ctx context.Context, surface string, payloads []domain.AlertPayload) []Result {
	results := make([]Result, 0, len(payloads))
	for _, payload := range payloads {
		results = append(results, d.dispatchOne(ctx, surface, payload))
	}
	return results
}

func (d *Dispatcher) dispatchOne(ctx context.Context, surface string, payload domain.AlertPayload) Result {
	ctx, span := tracing.StartDispatchSpan(ctx, payload.TaskID, string(payload.Tier))
	defer span.End()

	result := Result{
		TaskID: payload.TaskID,
		Tag:    payload.Tag,
		Tier:   payload.Tier,
	}

	switch {
	case d.capabilities.Blocked():
		result.Outcome = domain.OutcomeSkipped
		slog.DebugContext(ctx, "dispatch refused by capability gap",
			slog.String("task_id", payload.TaskID),
			slog.Bool("permission_granted", d.capabilities.PermissionGranted),
			slog.Bool("secure_context", d.capabilities.SecureContext),
		)

	case !d.capabilities.PushConfigured:
		result.Outcome = domain.OutcomeDeliveredFallback

	default:
		result.Outcome = d.enqueue(ctx, payload)
	}

	tracing.RecordDispatchResult(span, result.Outcome.String(), nil)
	if d.metrics != nil {
		d.metrics.RecordDispatch(ctx, surface, string(payload.Tier), result.Outcome.String())
	}

	return result
}

// Dismiss deletes a task's queued push so a dismissed alert does not still
// fire on devices. The in-app snapshot refreshes on the next cycle.
func (d *Dispatcher) Dismiss(ctx context.Context, taskID string) error {
	if !d.capabilities.PushConfigured {
		return nil
	}

	tag := AlertTag(taskID)
	if err := d.queue.DeleteAlert(ctx, tag); err != nil {
		slog.WarnContext(ctx, "queued push delete failed",
			slog.String("task_id", taskID),
			slog.String("tag", tag),
			slog.String("error", err.Error()),
		)
		return err
	}

	slog.DebugContext(ctx, "queued push deleted",
		slog.String("task_id", taskID),
		slog.String("tag", tag),
	)
	return nil
}

func (d *Dispatcher) enqueue(ctx context.Context, payload domain.AlertPayload) domain.DeliveryOutcome {
	task := &pushqueue.AlertTask{
		TaskID:             payload.TaskID,
		Title:              payload.Title,
		Body:               payload.Body,
		Tag:                payload.Tag,
		Tier:               string(payload.Tier),
		RequireInteraction: payload.RequireInteraction,
		Vibrate:            payload.Vibrate,
		Data:               payload.Data,
	}

	if _, err := d.queue.EnqueueAlert(ctx, task); err != nil {
		// The in-app surface still shows the ranked list, so a push miss
		// degrades rather than fails.
		slog.WarnContext(ctx, "push enqueue failed, falling back to in-app delivery",
			slog.String("task_id", payload.TaskID),
			slog.String("tag", payload.Tag),
			slog.String("error", err.Error()),
		)
		return domain.OutcomeDeliveredFallback
	}

	return domain.OutcomeDeliveredNative
}
