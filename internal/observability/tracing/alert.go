package tracing

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const alertTracerName = "github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/alert"

func AlertTracer() trace.Tracer {
	return otel.Tracer(alertTracerName)
}

func StartEvaluationCycleSpan(ctx context.Context, surface, trigger string, generation uint64) (context.Context, trace.Span) {
	return AlertTracer().Start(ctx, "alert.evaluation_cycle",
		trace.WithAttributes(
			attribute.String("cycle.surface", surface),
			attribute.String("cycle.trigger", trigger),
			attribute.Int64("cycle.generation", int64(generation)),
		),
	)
}

func StartTaskFetchSpan(ctx context.Context, windowDays int) (context.Context, trace.Span) {
	return AlertTracer().Start(ctx, "alert.task_fetch",
		trace.WithAttributes(
			attribute.Int("fetch.window_days", windowDays),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartDispatchSpan(ctx context.Context, taskID, tier string) (context.Context, trace.Span) {
	return AlertTracer().Start(ctx, "alert.dispatch",
		trace.WithAttributes(
			attribute.String("task_id", taskID),
			attribute.String("tier", tier),
		),
	)
}

func StartGateCheckSpan(ctx context.Context, surface, sessionID string) (context.Context, trace.Span) {
	return AlertTracer().Start(ctx, "alert.gate_check",
		trace.WithAttributes(
			attribute.String("gate.surface", surface),
			attribute.String("gate.session_id", sessionID),
		),
	)
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return AlertTracer().Start(ctx, "alert.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordEvaluationCycleResult(span trace.Span, candidateCount, deliveredCount, skippedCount int, suppressed bool, err error) {
	span.SetAttributes(
		attribute.Int("cycle.candidate_count", candidateCount),
		attribute.Int("cycle.delivered_count", deliveredCount),
		attribute.Int("cycle.skipped_count", skippedCount),
		attribute.Bool("cycle.suppressed", suppressed),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordTaskFetchResult(span trace.Span, taskCount int, duration time.Duration, err error) {
	span.SetAttributes(
		attribute.Int("fetch.task_count", taskCount),
		attribute.Int64("fetch.duration_ms", duration.Milliseconds()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordGateDecision(span trace.Span, decision string, err error) {
	span.SetAttributes(
		attribute.String("gate.decision", decision),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordDispatchResult(span trace.Span, outcome string, err error) {
	span.SetAttributes(
		attribute.String("dispatch.outcome", outcome),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

// InjectToHTTPRequest propagates the current trace context onto an outgoing
// request.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

// ExtractFromHTTPRequest resumes a trace context carried by an incoming
// request.
func ExtractFromHTTPRequest(req *http.Request) context.Context {
	return otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))
}
