//go:build loadtest

package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

func appendLoadtestLabels(ctx context.Context, attrs []attribute.KeyValue) []attribute.KeyValue {
	if runID := runIDFromContext(ctx); runID != "" {
		attrs = append(attrs, attribute.String("run_id", runID))
	}
	return attrs
}
