package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	alertMeterName = "alert.service"
)

type AlertMetrics struct {
	cyclesTotal      metric.Int64Counter
	dispatchesTotal  metric.Int64Counter
	gateDecisions    metric.Int64Counter
	candidateCount   metric.Int64Histogram
	fetchDuration    metric.Float64Histogram
	cycleDuration    metric.Float64Histogram
	tierDistribution metric.Int64Counter
}

func NewAlertMetrics() (*AlertMetrics, error) {
	meter := otel.Meter(alertMeterName)

	cyclesTotal, err := meter.Int64Counter(
		"alert_cycles_total",
		metric.WithDescription("Total number of alert evaluation cycles"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	dispatchesTotal, err := meter.Int64Counter(
		"alert_dispatches_total",
		metric.WithDescription("Total number of alert dispatch attempts by outcome"),
		metric.WithUnit("{dispatch}"),
	)
	if err != nil {
		return nil, err
	}

	gateDecisions, err := meter.Int64Counter(
		"alert_gate_decisions_total",
		metric.WithDescription("Session deduplication gate decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, err
	}

	candidateCount, err := meter.Int64Histogram(
		"alert_candidates_per_cycle",
		metric.WithDescription("Number of deadline candidates per evaluation cycle"),
		metric.WithUnit("{task}"),
		metric.WithExplicitBucketBoundaries(
			0, 1, 2, 5, 10, 25, 50, 100, 250,
		),
	)
	if err != nil {
		return nil, err
	}

	fetchDuration, err := meter.Float64Histogram(
		"alert_task_fetch_duration_seconds",
		metric.WithDescription("Time spent fetching tasks from the task source"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
		),
	)
	if err != nil {
		return nil, err
	}

	cycleDuration, err := meter.Float64Histogram(
		"alert_cycle_duration_seconds",
		metric.WithDescription("Full evaluation cycle duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	tierDistribution, err := meter.Int64Counter(
		"alert_tier_distribution_total",
		metric.WithDescription("Distribution of ranked tasks across urgency tiers"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, err
	}

	return &AlertMetrics{
		cyclesTotal:      cyclesTotal,
		dispatchesTotal:  dispatchesTotal,
		gateDecisions:    gateDecisions,
		candidateCount:   candidateCount,
		fetchDuration:    fetchDuration,
		cycleDuration:    cycleDuration,
		tierDistribution: tierDistribution,
	}, nil
}

func (m *AlertMetrics) RecordCycle(ctx context.Context, surface, trigger string) {
	attrs := appendLoadtestLabels(ctx, []attribute.KeyValue{
		attribute.String("surface", surface),
		attribute.String("trigger", trigger),
	})
	m.cyclesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *AlertMetrics) RecordDispatch(ctx context.Context, surface, tier, outcome string) {
	attrs := appendLoadtestLabels(ctx, []attribute.KeyValue{
		attribute.String("surface", surface),
		attribute.String("tier", tier),
		attribute.String("outcome", outcome),
	})
	m.dispatchesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *AlertMetrics) RecordGateDecision(ctx context.Context, surface, decision string) {
	attrs := appendLoadtestLabels(ctx, []attribute.KeyValue{
		attribute.String("surface", surface),
		attribute.String("decision", decision),
	})
	m.gateDecisions.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *AlertMetrics) RecordCandidateCount(ctx context.Context, surface string, count int) {
	m.candidateCount.Record(ctx, int64(count), metric.WithAttributes(
		attribute.String("surface", surface),
	))
}

func (m *AlertMetrics) RecordFetchDuration(ctx context.Context, outcome string, duration time.Duration) {
	m.fetchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *AlertMetrics) RecordCycleDuration(ctx context.Context, surface string, duration time.Duration) {
	m.cycleDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("surface", surface),
	))
}

func (m *AlertMetrics) RecordTier(ctx context.Context, tier string) {
	m.tierDistribution.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tier", tier),
	))
}
