package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"lifetrail/internal/feature/accounts/domain/entity"
	"lifetrail/internal/feature/accounts/usecase"
)

// sessionGorm stores sessions in the relational database.
// It backs the session store when Redis is not configured.
type sessionGorm struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.SessionRepository = (*sessionGorm)(nil)

// NewSessionGorm creates a new sessionGorm.
func NewSessionGorm(gdb *gorm.DB) *sessionGorm {
	return &sessionGorm{db: gdb, now: time.Now}
}

func (r *sessionGorm) active(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&SessionRecord{}).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, r.now())
}

func (r *sessionGorm) Create(ctx context.Context, s *entity.Session) error {
	return r.db.WithContext(ctx).Create(newSessionRecord(s)).Error
}

func (r *sessionGorm) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var m SessionRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return m.toEntity(), nil
}

func (r *sessionGorm) Revoke(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&SessionRecord{}).
		Where("id = ?", id).
		Update("revoked_at", r.now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

func (r *sessionGorm) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&SessionRecord{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", r.now()).Error
}

// DeleteExpired removes expired and revoked sessions.
func (r *sessionGorm) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", r.now()).
		Delete(&SessionRecord{})
	return res.RowsAffected, res.Error
}

func (r *sessionGorm) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.active(ctx, userID).Count(&count).Error
	return count, err
}

func (r *sessionGorm) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	var oldest SessionRecord
	if err := r.active(ctx, userID).Order("created_at ASC").First(&oldest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return r.db.WithContext(ctx).Delete(&SessionRecord{}, "id = ?", oldest.ID).Error
}
