package gatestore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/observability/tracing"
)

const (
	recordKeyPrefix = "alertgate:record:"

	// Records expire on their own well past any configured cooldown so an
	// abandoned scope does not linger in Redis forever.
	recordTTL = 24 * time.Hour
)

type deliveryRecord struct {
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	LastSentAt time.Time `json:"last_sent_at"`
}

// RedisStore shares one gate's delivery record across service instances.
// Scope separates the gated flows (panel, deadline-check) from each other.
type RedisStore struct {
	client *redis.Client
	scope  string
}

func NewRedisStore(client *redis.Client, scope string) *RedisStore {
	return &RedisStore{
		client: client,
		scope:  scope,
	}
}

func (s *RedisStore) key() string {
	return recordKeyPrefix + s.scope
}

func (s *RedisStore) Get(ctx context.Context) (*domain.DeliveryRecord, error) {
	ctx, span := tracing.StartRedisOperationSpan(ctx, "get", s.key())
	defer span.End()

	data, err := s.client.Get(ctx, s.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrDeliveryRecordNotFound
		}
		span.RecordError(err)
		return nil, err
	}

	var record deliveryRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidRecordData
	}

	return &domain.DeliveryRecord{
		SessionID:  record.SessionID,
		UserID:     record.UserID,
		LastSentAt: record.LastSentAt,
	}, nil
}

func (s *RedisStore) Put(ctx context.Context, record *domain.DeliveryRecord) error {
	if record == nil {
		return ErrInvalidRecordData
	}

	data, err := json.Marshal(deliveryRecord{
		SessionID:  record.SessionID,
		UserID:     record.UserID,
		LastSentAt: record.LastSentAt,
	})
	if err != nil {
		return ErrInvalidRecordData
	}

	ctx, span := tracing.StartRedisOperationSpan(ctx, "set", s.key())
	defer span.End()

	if err := s.client.Set(ctx, s.key(), data, recordTTL).Err(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *RedisStore) Reset(ctx context.Context) error {
	ctx, span := tracing.StartRedisOperationSpan(ctx, "del", s.key())
	defer span.End()

	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
