// Package session stores payment sessions in Redis. A session is a small
// JSON record with a TTL; a secondary key indexes it by the bound order id so
// inbound notifications can be correlated without touching Postgres.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/crowdtide/payeer-gateway/internal/domain/models"
	"github.com/crowdtide/payeer-gateway/internal/domain/repositories"
	apperrors "github.com/crowdtide/payeer-gateway/internal/errors"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "payeer:session:"
	orderKeyPrefix   = "payeer:order:"
)

type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{
		client: client,
		ttl:    ttl,
	}
}

var _ repositories.PaymentSessionRepository = (*RedisSessionRepository)(nil)

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func orderKey(orderID string) string {
	return orderKeyPrefix + orderID
}

func (r *RedisSessionRepository) Open(ctx context.Context, session *models.PaymentSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal payment session: %w", err)
	}
	return r.client.Set(ctx, sessionKey(session.ID), data, r.ttl).Err()
}

func (r *RedisSessionRepository) GetByID(ctx context.Context, id string) (*models.PaymentSession, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NewSessionNotFoundError("")
		}
		return nil, err
	}

	session := &models.PaymentSession{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("unmarshal payment session: %w", err)
	}
	return session, nil
}

// BindOrderID claims the order id for the session via SETNX, so two
// concurrent renders can never hand the same order id to different sessions.
// Rebinding the same id is idempotent; a second distinct bind is an error.
func (r *RedisSessionRepository) BindOrderID(ctx context.Context, session *models.PaymentSession, orderID string) error {
	if session.UniqueKey == orderID {
		return nil
	}
	if session.UniqueKey != "" {
		return apperrors.NewOrderIDAlreadyBoundError(session.UniqueKey)
	}

	claimed, err := r.client.SetNX(ctx, orderKey(orderID), session.ID, r.ttl).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return apperrors.NewOrderIDAlreadyBoundError(orderID)
	}

	session.UniqueKey = orderID
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal payment session: %w", err)
	}
	return r.client.Set(ctx, sessionKey(session.ID), data, redis.KeepTTL).Err()
}

func (r *RedisSessionRepository) ResolveByOrderID(ctx context.Context, orderID string) (*models.PaymentSession, error) {
	sessionID, err := r.client.Get(ctx, orderKey(orderID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NewSessionNotFoundError(orderID)
		}
		return nil, err
	}

	session, err := r.GetByID(ctx, sessionID)
	if err != nil {
		if apperrors.As(err, new(*apperrors.SessionNotFoundError)) {
			return nil, apperrors.NewSessionNotFoundError(orderID)
		}
		return nil, err
	}
	return session, nil
}

// Close releases the order-id index; the session record itself survives a
// failed or pending attempt so a retried notification can still resolve it.
func (r *RedisSessionRepository) Close(ctx context.Context, session *models.PaymentSession, removeEntirely bool) error {
	if !removeEntirely {
		return nil
	}
	keys := []string{sessionKey(session.ID)}
	if session.UniqueKey != "" {
		keys = append(keys, orderKey(session.UniqueKey))
	}
	return r.client.Del(ctx, keys...).Err()
}

// SweepOrphanedOrderKeys removes order-id indexes whose session record has
// already expired. Returns the number of keys dropped.
func (r *RedisSessionRepository) SweepOrphanedOrderKeys(ctx context.Context) (int, error) {
	var dropped int
	iter := r.client.Scan(ctx, 0, orderKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		sessionID, err := r.client.Get(ctx, key).Result()
		if err != nil {
			continue
		}
		exists, err := r.client.Exists(ctx, sessionKey(sessionID)).Result()
		if err != nil {
			continue
		}
		if exists == 0 {
			if err := r.client.Del(ctx, key).Err(); err == nil {
				dropped++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return dropped, err
	}
	return dropped, nil
}
