package gatestore

import (
	"context"
	"sync"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
)

// MemoryStore holds the delivery record in process memory. This is the
// default store and matches the observed behavior: the record does not
// survive a restart, and two instances of the service gate independently.
type MemoryStore struct {
	mu     sync.Mutex
	record *domain.DeliveryRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) (*domain.DeliveryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.record == nil {
		return nil, domain.ErrDeliveryRecordNotFound
	}

	copied := *s.record
	return &copied, nil
}

func (s *MemoryStore) Put(_ context.Context, record *domain.DeliveryRecord) error {
	if record == nil {
		return ErrInvalidRecordData
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *record
	s.record = &copied
	return nil
}

func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record = nil
	return nil
}
