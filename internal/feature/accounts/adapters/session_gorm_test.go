package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lifetrail/internal/feature/accounts/domain/entity"
	"lifetrail/internal/feature/accounts/usecase"
	"lifetrail/internal/platform/db"
)

func setupSessionTestDB(t *testing.T) (*gorm.DB, *sessionGorm) {
	t.Helper()

	gdb := db.OpenTestDB(t, &SessionRecord{})
	return gdb, NewSessionGorm(gdb)
}

func seedSession(t *testing.T, gdb *gorm.DB, id string, userID uint, createdAt, expiresAt time.Time, revokedAt *time.Time) {
	t.Helper()

	rec := &SessionRecord{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
		RevokedAt: revokedAt,
	}
	require.NoError(t, gdb.Create(rec).Error, "failed to seed session")
}

func TestSessionGorm_CreateAndFind(t *testing.T) {
	t.Parallel()

	_, repo := setupSessionTestDB(t)
	ctx := context.Background()
	s := &entity.Session{
		ID:        "0b6f7a3e-0000-4000-8000-000000000001",
		UserID:    1,
		UserAgent: "Mozilla/5.0",
		IPAddress: "192.168.1.1",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	require.NoError(t, repo.Create(ctx, s))
	assert.Error(t, repo.Create(ctx, s), "duplicate id must fail")

	found, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.UserID, found.UserID)
	assert.Equal(t, "Mozilla/5.0", found.UserAgent)
	assert.True(t, found.IsValid())

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionGorm_Revoke(t *testing.T) {
	t.Parallel()

	gdb, repo := setupSessionTestDB(t)
	ctx := context.Background()
	now := time.Now()
	seedSession(t, gdb, "s1", 1, now, now.Add(time.Hour), nil)
	seedSession(t, gdb, "s2", 1, now, now.Add(time.Hour), nil)
	seedSession(t, gdb, "s3", 2, now, now.Add(time.Hour), nil)

	require.NoError(t, repo.Revoke(ctx, "s1"))
	found, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, found.IsRevoked())

	assert.ErrorIs(t, repo.Revoke(ctx, "missing"), usecase.ErrSessionNotFound)

	require.NoError(t, repo.RevokeAllByUserID(ctx, 1))
	found, err = repo.FindByID(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, found.IsRevoked())
	found, err = repo.FindByID(ctx, "s3")
	require.NoError(t, err)
	assert.False(t, found.IsRevoked(), "other users keep their sessions")
}

func TestSessionGorm_CountAndEvict(t *testing.T) {
	t.Parallel()

	gdb, repo := setupSessionTestDB(t)
	ctx := context.Background()
	now := time.Now()
	seedSession(t, gdb, "oldest", 1, now.Add(-2*time.Hour), now.Add(time.Hour), nil)
	seedSession(t, gdb, "newest", 1, now.Add(-time.Hour), now.Add(time.Hour), nil)
	seedSession(t, gdb, "expired", 1, now.Add(-3*time.Hour), now.Add(-time.Minute), nil)
	seedSession(t, gdb, "revoked", 1, now.Add(-4*time.Hour), now.Add(time.Hour), &now)

	count, err := repo.CountByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "only live sessions count")

	require.NoError(t, repo.DeleteOldestByUserID(ctx, 1))
	_, err = repo.FindByID(ctx, "oldest")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	_, err = repo.FindByID(ctx, "newest")
	assert.NoError(t, err)

	assert.NoError(t, repo.DeleteOldestByUserID(ctx, 42), "no sessions is not an error")
}

func TestSessionGorm_DeleteExpired(t *testing.T) {
	t.Parallel()

	gdb, repo := setupSessionTestDB(t)
	now := time.Now()
	seedSession(t, gdb, "expired", 1, now, now.Add(-time.Hour), nil)
	seedSession(t, gdb, "revoked", 1, now, now.Add(time.Hour), &now)
	seedSession(t, gdb, "live", 1, now, now.Add(time.Hour), nil)

	deleted, err := repo.DeleteExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	var remaining int64
	gdb.Model(&SessionRecord{}).Count(&remaining)
	assert.Equal(t, int64(1), remaining)
}
