// Package session stores login sessions in Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lifetrail/internal/feature/accounts/domain/entity"
	"lifetrail/internal/feature/accounts/usecase"
)

// SessionRedis implements usecase.SessionRepository on Redis.
// Each session is a JSON string expiring with the session; a per-user sorted
// set scored by creation time indexes them.
type SessionRedis struct {
	client *redis.Client
	prefix string
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis. Keys are namespaced by prefix.
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{client: client, prefix: prefix}
}

func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

func (r *SessionRedis) userSessionsKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// Create stores the session until its expiry and indexes it under the user.
func (r *SessionRedis) Create(ctx context.Context, s *entity.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	userKey := r.userSessionsKey(s.UserID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.sessionKey(s.ID), data, ttl)
		pipe.ZAdd(ctx, userKey, redis.Z{Score: float64(s.CreatedAt.UnixNano()), Member: s.ID})
		pipe.Expire(ctx, userKey, ttl)
		return nil
	})
	return err
}

func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var s entity.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// Revoke marks the session revoked, keeping its remaining TTL.
func (r *SessionRedis) Revoke(ctx context.Context, id string) error {
	s, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if s.RevokedAt != nil {
		return nil
	}

	now := time.Now()
	s.RevokedAt = &now
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.client.SetArgs(ctx, r.sessionKey(id), data, redis.SetArgs{KeepTTL: true}).Err(); err != nil {
		return err
	}
	return r.client.ZRem(ctx, r.userSessionsKey(s.UserID), id).Err()
}

func (r *SessionRedis) RevokeAllByUserID(ctx context.Context, userID uint) error {
	ids, err := r.client.ZRange(ctx, r.userSessionsKey(userID), 0, -1).Result()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := r.Revoke(ctx, id); err != nil && !errors.Is(err, usecase.ErrSessionNotFound) {
			return err
		}
	}
	return r.client.Del(ctx, r.userSessionsKey(userID)).Err()
}

// DeleteExpired is a no-op: Redis expires session keys on its own.
func (r *SessionRedis) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

// live returns the user's live session IDs, oldest first, pruning index
// entries whose session key has expired.
func (r *SessionRedis) live(ctx context.Context, userID uint) ([]string, error) {
	userKey := r.userSessionsKey(userID)
	ids, err := r.client.ZRange(ctx, userKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var live []string
	for _, id := range ids {
		s, err := r.FindByID(ctx, id)
		if errors.Is(err, usecase.ErrSessionNotFound) {
			r.client.ZRem(ctx, userKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if s.IsValid() {
			live = append(live, id)
		}
	}
	return live, nil
}

func (r *SessionRedis) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	ids, err := r.live(ctx, userID)
	return int64(len(ids)), err
}

func (r *SessionRedis) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	ids, err := r.live(ctx, userID)
	if err != nil || len(ids) == 0 {
		return err
	}
	oldest := ids[0]
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.sessionKey(oldest))
		pipe.ZRem(ctx, r.userSessionsKey(userID), oldest)
		return nil
	})
	return err
}
