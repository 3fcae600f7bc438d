// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	accountsadapters "lifetrail/internal/feature/accounts/adapters"
	"lifetrail/internal/feature/accounts/usecase"
	"lifetrail/internal/platform/session"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the sessions table.
func NewSessionRepository(rdb *redis.Client, gdb *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return accountsadapters.NewSessionGorm(gdb)
}
