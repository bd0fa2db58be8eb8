//go:build gcloud

package deliveryrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
)

type bigQueryDispatchRecord struct {
	RecordedAt time.Time `bigquery:"recorded_at"`
	CycleTime  time.Time `bigquery:"cycle_time"`
	RunID      string    `bigquery:"run_id"`
	Surface    string    `bigquery:"surface"`
	TaskID     string    `bigquery:"task_id"`
	Tier       string    `bigquery:"tier"`
	Outcome    string    `bigquery:"outcome"`
	Suppressed bool      `bigquery:"suppressed"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
	dataset  string
	table    string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DeliveryResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "delivery result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, delivery result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, delivery result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	table := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable)
	inserter := table.Inserter()

	slog.InfoContext(ctx, "delivery result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
		dataset:  cfg.BigQueryDataset,
		table:    cfg.BigQueryTable,
	}, nil
}

func (r *bigQueryRecorder) RecordDispatchResults(ctx context.Context, records []domain.DispatchResultRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	bqRecords := make([]*bigQueryDispatchRecord, 0, len(records))
	for _, record := range records {
		bqRecords = append(bqRecords, &bigQueryDispatchRecord{
			RecordedAt: now,
			CycleTime:  record.CycleTime,
			RunID:      record.RunID,
			Surface:    record.Surface,
			TaskID:     record.TaskID,
			Tier:       record.Tier,
			Outcome:    record.Outcome,
			Suppressed: record.Suppressed,
		})
	}

	if err := r.inserter.Put(ctx, bqRecords); err != nil {
		slog.WarnContext(ctx, "failed to insert dispatch results to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

type bigQuerySummaryRecord struct {
	RecordedAt      time.Time `bigquery:"recorded_at"`
	CycleTime       time.Time `bigquery:"cycle_time"`
	RunID           string    `bigquery:"run_id"`
	Surface         string    `bigquery:"surface"`
	Trigger         string    `bigquery:"trigger"`
	CandidateCount  int64     `bigquery:"candidate_count"`
	NativeCount     int64     `bigquery:"native_count"`
	FallbackCount   int64     `bigquery:"fallback_count"`
	SkippedCount    int64     `bigquery:"skipped_count"`
	SuppressedCount int64     `bigquery:"suppressed_count"`
	FetchMillis     int64     `bigquery:"fetch_millis"`
}

func (r *bigQueryRecorder) RecordCycleSummary(ctx context.Context, record domain.CycleSummaryRecord) error {
	bqRecord := &bigQuerySummaryRecord{
		RecordedAt:      time.Now(),
		CycleTime:       record.CycleTime,
		RunID:           record.RunID,
		Surface:         record.Surface,
		Trigger:         record.Trigger,
		CandidateCount:  int64(record.CandidateCount),
		NativeCount:     int64(record.NativeCount),
		FallbackCount:   int64(record.FallbackCount),
		SkippedCount:    int64(record.SkippedCount),
		SuppressedCount: int64(record.SuppressedCount),
		FetchMillis:     record.FetchMillis,
	}

	summaryTable := r.client.Dataset(r.dataset).Table(r.table + "_summary")
	if err := summaryTable.Inserter().Put(ctx, bqRecord); err != nil {
		slog.WarnContext(ctx, "failed to insert cycle summary to BigQuery",
			slog.String("error", err.Error()),
			slog.String("surface", record.Surface),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
