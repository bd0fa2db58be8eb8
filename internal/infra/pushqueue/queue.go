package pushqueue

import "context"

//go:generate mockgen -source=queue.go -destination=mock.go -package=pushqueue

// PushQueue is the background delivery channel for alerts. Implementations
// hand the payload to a push worker (sitetrack-push gateway locally, Cloud
// Tasks on gcloud) that fans out to user devices.
type PushQueue interface {
	EnqueueAlert(ctx context.Context, task *AlertTask) (*PushResponse, error)
	DeleteAlert(ctx context.Context, tag string) error
}
