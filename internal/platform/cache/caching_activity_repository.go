// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"lifetrail/internal/feature/activity/domain/entity"
	"lifetrail/internal/feature/activity/usecase"
)

// CachingActivityRepository decorates an ActivityRepository with Redis
// caching of the per-user list queries. Writes invalidate every cached
// query of the affected user.
type CachingActivityRepository struct {
	inner     usecase.ActivityRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ActivityRepository = (*CachingActivityRepository)(nil)

// NewCachingActivityRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "activities".
// A nil rdb disables caching.
func NewCachingActivityRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ActivityRepository, namespace string) *CachingActivityRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "activities"
	}
	return &CachingActivityRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create stores the activity and drops the user's cached lists.
func (c *CachingActivityRepository) Create(ctx context.Context, a *entity.Activity) error {
	if err := c.inner.Create(ctx, a); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	if err := c.deleteByPattern(ctx, c.userPrefix(a.UserID)+"*"); err != nil {
		logrus.WithError(err).WithField("user_id", a.UserID).Warn("failed to invalidate activity cache")
	}
	return nil
}

func (c *CachingActivityRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Activity, error) {
	return c.cached(ctx, c.userPrefix(userID)+"all", func() ([]entity.Activity, error) {
		return c.inner.ListByUser(ctx, userID)
	})
}

func (c *CachingActivityRepository) ListRecent(ctx context.Context, userID uint, limit int) ([]entity.Activity, error) {
	return c.cached(ctx, fmt.Sprintf("%srecent:%d", c.userPrefix(userID), limit), func() ([]entity.Activity, error) {
		return c.inner.ListRecent(ctx, userID, limit)
	})
}

// Forget drops every cached query of the user.
func (c *CachingActivityRepository) Forget(ctx context.Context, userID uint) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.userPrefix(userID)+"*")
}

func (c *CachingActivityRepository) cached(ctx context.Context, key string, load func() ([]entity.Activity, error)) ([]entity.Activity, error) {
	if c.rdb == nil {
		return load()
	}

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Activity
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := load()
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachingActivityRepository) userPrefix(userID uint) string {
	return fmt.Sprintf("%s:%d:", c.namespace, userID)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingActivityRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
