package domain

import "context"

//go:generate mockgen -source=gate_store.go -destination=gate_store_mock.go -package=domain

// GateStore persists the single delivery record of one deduplication gate.
// The in-memory implementation matches the observed per-process behavior;
// the Redis implementation is for deployments that want the record shared
// across instances.
type GateStore interface {
	Get(ctx context.Context) (*DeliveryRecord, error)
	Put(ctx context.Context, record *DeliveryRecord) error
	Reset(ctx context.Context) error
}
