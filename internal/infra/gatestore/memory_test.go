package gatestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx); !errors.Is(err, domain.ErrDeliveryRecordNotFound) {
		t.Errorf("Get on empty store: got %v, want ErrDeliveryRecordNotFound", err)
	}

	sentAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	if err := store.Put(ctx, domain.NewDeliveryRecord("session-a", "user-x", sentAt)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Matches("session-a", "user-x") {
		t.Errorf("got identity (%q, %q), want (session-a, user-x)", got.SessionID, got.UserID)
	}

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(ctx); !errors.Is(err, domain.ErrDeliveryRecordNotFound) {
		t.Errorf("Get after Reset: got %v, want ErrDeliveryRecordNotFound", err)
	}
}

func TestMemoryStorePutNil(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Put(context.Background(), nil); !errors.Is(err, ErrInvalidRecordData) {
		t.Errorf("Put(nil): got %v, want ErrInvalidRecordData", err)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Put(ctx, domain.NewDeliveryRecord("session-a", "user-x", time.Now())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, _ := store.Get(ctx)
	first.SessionID = "mutated"

	second, _ := store.Get(ctx)
	if second.SessionID != "session-a" {
		t.Errorf("store record mutated through returned pointer: %q", second.SessionID)
	}
}
