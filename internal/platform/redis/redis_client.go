// Package redis opens the optional Redis connection.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisClient connects to addr and pings it.
// An empty addr means Redis is disabled and (nil, nil) is returned.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	if addr == "" {
		logrus.Info("redis not configured, using database-backed sessions and no cache")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		logrus.WithError(err).WithField("address", addr).Error("redis connection failed")
		return nil, err
	}

	logrus.WithField("address", addr).Info("redis connection successful")
	return rdb, nil
}
