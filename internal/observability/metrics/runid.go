package metrics

import "context"

type contextKey string

const runIDKey contextKey = "run_id"

// WithRunID tags the context with a load-test run identifier picked up by
// the loadtest build's metric labels.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

func runIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(runIDKey).(string); ok {
		return v
	}
	return ""
}
