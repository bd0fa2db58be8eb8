package gatestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/testutil"
)

func TestRedisStoreGetMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	store := NewRedisStore(client, "panel")

	_, err := store.Get(ctx)
	if !errors.Is(err, domain.ErrDeliveryRecordNotFound) {
		t.Errorf("Get on empty store: got %v, want ErrDeliveryRecordNotFound", err)
	}
}

func TestRedisStorePutGetRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	store := NewRedisStore(client, "panel")

	sentAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	record := domain.NewDeliveryRecord("session-a", "user-x", sentAt)

	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.SessionID != "session-a" || got.UserID != "user-x" {
		t.Errorf("got identity (%q, %q), want (session-a, user-x)", got.SessionID, got.UserID)
	}
	if !got.LastSentAt.Equal(sentAt) {
		t.Errorf("got LastSentAt %v, want %v", got.LastSentAt, sentAt)
	}
}

func TestRedisStoreScopesAreIndependent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	panelStore := NewRedisStore(client, "panel")
	deadlineStore := NewRedisStore(client, "deadline")

	record := domain.NewDeliveryRecord("session-a", "user-x", time.Now().UTC())
	if err := panelStore.Put(ctx, record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := deadlineStore.Get(ctx); !errors.Is(err, domain.ErrDeliveryRecordNotFound) {
		t.Errorf("deadline scope should be empty, got %v", err)
	}

	if err := deadlineStore.Reset(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := panelStore.Get(ctx); err != nil {
		t.Errorf("panel record should survive deadline reset, got %v", err)
	}
}

func TestRedisStoreReset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	store := NewRedisStore(client, "panel")

	if err := store.Put(ctx, domain.NewDeliveryRecord("session-a", "user-x", time.Now().UTC())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Get(ctx); !errors.Is(err, domain.ErrDeliveryRecordNotFound) {
		t.Errorf("Get after Reset: got %v, want ErrDeliveryRecordNotFound", err)
	}

	// Resetting an already empty scope is not an error.
	if err := store.Reset(ctx); err != nil {
		t.Errorf("Reset on empty scope: unexpected error %v", err)
	}
}

func TestRedisStoreTracesOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	store := NewRedisStore(client, "panel")

	record := domain.NewDeliveryRecord("session-a", "user-x", time.Now())
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{
		"alert.redis.set": false,
		"alert.redis.get": false,
		"alert.redis.del": false,
	}
	for _, span := range recorder.Ended() {
		if _, ok := want[span.Name()]; ok {
			want[span.Name()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("no %s span recorded", name)
		}
	}
}
