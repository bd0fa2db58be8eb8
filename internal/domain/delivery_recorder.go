package domain

import (
	"context"
	"time"
)

// DispatchResultRecord captures the outcome of one task's dispatch within
// an evaluation cycle.
type DispatchResultRecord struct {
	RunID      string
	CycleTime  time.Time
	Surface    string
	TaskID     string
	Tier       string
	Outcome    string
	Suppressed bool
}

// CycleSummaryRecord captures aggregate counters for one evaluation cycle.
type CycleSummaryRecord struct {
	RunID           string
	CycleTime       time.Time
	Surface         string
	Trigger         string
	CandidateCount  int
	NativeCount     int
	FallbackCount   int
	SkippedCount    int
	SuppressedCount int
	FetchMillis     int64
}

// DeliveryResultRecorder records dispatch outcomes to an analytics backend
// (InfluxDB locally, BigQuery on gcloud). Recording failures are diagnostic
// only and never affect the evaluation cycle.
type DeliveryResultRecorder interface {
	RecordDispatchResults(ctx context.Context, records []DispatchResultRecord) error
	RecordCycleSummary(ctx context.Context, record CycleSummaryRecord) error
	Flush(ctx context.Context) error
	Close() error
}
