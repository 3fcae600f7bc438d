// Package adapters provides repository implementations for the checkin feature.
package adapters

import (
	"context"

	"gorm.io/gorm"

	"lifetrail/internal/feature/checkin/domain/entity"
	"lifetrail/internal/feature/checkin/usecase"
	"lifetrail/internal/platform/db"
)

type checkInGorm struct {
	db *gorm.DB
}

var _ usecase.CheckInRepository = (*checkInGorm)(nil)

// NewCheckInGorm creates a new checkInGorm.
func NewCheckInGorm(gdb *gorm.DB) *checkInGorm {
	return &checkInGorm{db: gdb}
}

// Create relies on the (user_id, check_in_date) unique index to reject a
// second check-in that raced past ExistsForDay.
func (r *checkInGorm) Create(ctx context.Context, c *entity.CheckIn) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrAlreadyCheckedIn
		}
		return err
	}
	return nil
}

func (r *checkInGorm) ExistsForDay(ctx context.Context, userID uint, day string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.CheckIn{}).
		Where("user_id = ? AND check_in_date = ?", userID, day).
		Count(&count).Error
	return count > 0, err
}

func (r *checkInGorm) ListByUser(ctx context.Context, userID uint, limit int) ([]entity.CheckIn, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []entity.CheckIn
	err := q.Find(&out).Error
	return out, err
}
