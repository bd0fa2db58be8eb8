//go:build !gcloud

package deliveryrecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DeliveryResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "delivery result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, delivery result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "delivery result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func (r *influxDBRecorder) RecordDispatchResults(ctx context.Context, records []domain.DispatchResultRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		runID := record.RunID
		if runID == "" {
			runID = "default"
		}

		// Use real time as timestamp to prevent overwrites between cycles
		pointTime := time.Now()

		point := influxdb2.NewPoint(
			"dispatch_result",
			map[string]string{
				"run_id":  runID,
				"surface": record.Surface,
				"tier":    record.Tier,
				"outcome": record.Outcome,
			},
			map[string]any{
				"task_id":    record.TaskID,
				"suppressed": record.Suppressed,
				"cycle_unix": record.CycleTime.Unix(),
			},
			pointTime,
		)

		if err := r.writeAPI.WritePoint(ctx, point); err != nil {
			slog.WarnContext(ctx, "failed to write dispatch result to InfluxDB",
				slog.String("error", err.Error()),
				slog.String("surface", record.Surface),
				slog.String("task_id", record.TaskID),
			)
		}
	}

	return nil
}

func (r *influxDBRecorder) RecordCycleSummary(ctx context.Context, record domain.CycleSummaryRecord) error {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	point := influxdb2.NewPoint(
		"cycle_summary",
		map[string]string{
			"run_id":  runID,
			"surface": record.Surface,
			"trigger": record.Trigger,
		},
		map[string]any{
			"candidate_count":  record.CandidateCount,
			"native_count":     record.NativeCount,
			"fallback_count":   record.FallbackCount,
			"skipped_count":    record.SkippedCount,
			"suppressed_count": record.SuppressedCount,
			"fetch_millis":     record.FetchMillis,
			"cycle_unix":       record.CycleTime.Unix(),
		},
		time.Now(),
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write cycle summary to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("surface", record.Surface),
		)
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
