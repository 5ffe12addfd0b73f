package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// maxCartRetries bounds the optimistic-lock retry loop in UpdateCart.
const maxCartRetries = 5

var ErrSessionConflict = errors.New("session modified concurrently")

// SessionRepository defines the interface for session and cart storage
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) (string, error)
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
	UpdateCart(ctx context.Context, sessionID string, mutate func(cart map[uint]int) error) (*models.Session, error)
}

// RedisSessionRepository implements SessionRepository on Redis with a TTL
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepository creates a new instance of RedisSessionRepository
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisSessionRepository) getKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Create stores the session under a fresh identifier and returns it.
func (r *RedisSessionRepository) Create(ctx context.Context, session *models.Session) (string, error) {
	sessionID := uuid.NewString()
	session.CreatedAt = time.Now()
	if session.Cart == nil {
		session.Cart = map[uint]int{}
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", err
	}

	if err := r.client.Set(ctx, r.getKey(sessionID), data, r.ttl).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Get returns the session, or nil when it does not exist or has expired.
func (r *RedisSessionRepository) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	data, err := r.client.Get(ctx, r.getKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.getKey(sessionID)).Err()
}

// UpdateCart applies mutate to the cart under an optimistic WATCH
// transaction, so two overlapping requests against the same session
// cannot lose each other's writes. A mutate error aborts with no write.
func (r *RedisSessionRepository) UpdateCart(ctx context.Context, sessionID string, mutate func(cart map[uint]int) error) (*models.Session, error) {
	key := r.getKey(sessionID)
	var updated *models.Session

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return redis.Nil
		}
		if err != nil {
			return err
		}

		var session models.Session
		if err := json.Unmarshal([]byte(data), &session); err != nil {
			return err
		}
		if session.Cart == nil {
			session.Cart = map[uint]int{}
		}

		if err := mutate(session.Cart); err != nil {
			return err
		}

		payload, err := json.Marshal(&session)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		if err == nil {
			updated = &session
		}
		return err
	}

	for i := 0; i < maxCartRetries; i++ {
		err := r.client.Watch(ctx, txn, key)
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, ErrSessionConflict
}
