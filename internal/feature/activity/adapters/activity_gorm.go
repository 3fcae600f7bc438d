// Package adapters provides repository implementations for the activity feature.
package adapters

import (
	"context"

	"gorm.io/gorm"

	"lifetrail/internal/feature/activity/domain/entity"
	"lifetrail/internal/feature/activity/usecase"
)

type activityGorm struct {
	db *gorm.DB
}

var _ usecase.ActivityRepository = (*activityGorm)(nil)

// NewActivityGorm creates a new activityGorm.
func NewActivityGorm(gdb *gorm.DB) *activityGorm {
	return &activityGorm{db: gdb}
}

func (r *activityGorm) Create(ctx context.Context, a *entity.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *activityGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Activity, error) {
	return r.list(ctx, userID, 0)
}

func (r *activityGorm) ListRecent(ctx context.Context, userID uint, limit int) ([]entity.Activity, error) {
	return r.list(ctx, userID, limit)
}

func (r *activityGorm) list(ctx context.Context, userID uint, limit int) ([]entity.Activity, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []entity.Activity
	err := q.Find(&out).Error
	return out, err
}
