package deliveryrecorder

import (
	"context"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.DeliveryResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordDispatchResults(_ context.Context, _ []domain.DispatchResultRecord) error {
	return nil
}

func (n *noopRecorder) RecordCycleSummary(_ context.Context, _ domain.CycleSummaryRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
