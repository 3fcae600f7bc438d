// Package adapters provides repository implementations for the location feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lifetrail/internal/feature/location/domain/entity"
	"lifetrail/internal/feature/location/usecase"
)

type locationGorm struct {
	db *gorm.DB

	// dependents are models with a nullable location_id column.
	dependents []any
}

var _ usecase.LocationRepository = (*locationGorm)(nil)

// NewLocationGorm creates a locationGorm. dependents have their location_id
// set to NULL when the referenced location is deleted.
func NewLocationGorm(gdb *gorm.DB, dependents ...any) *locationGorm {
	return &locationGorm{db: gdb, dependents: dependents}
}

func demoteDefaults(tx *gorm.DB, userID, keepID uint) error {
	q := tx.Model(&entity.Location{}).Where("user_id = ? AND is_default = ?", userID, true)
	if keepID != 0 {
		q = q.Where("id <> ?", keepID)
	}
	return q.Update("is_default", false).Error
}

func (r *locationGorm) Create(ctx context.Context, loc *entity.Location) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if loc.IsDefault {
			if err := demoteDefaults(tx, loc.UserID, 0); err != nil {
				return err
			}
		}
		return tx.Create(loc).Error
	})
}

func (r *locationGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Location, error) {
	var out []entity.Location
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *locationGorm) FindByIDForUser(ctx context.Context, id, userID uint) (*entity.Location, error) {
	return findOwned(r.db.WithContext(ctx), id, userID)
}

func findOwned(tx *gorm.DB, id, userID uint) (*entity.Location, error) {
	var loc entity.Location
	if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&loc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrLocationNotFound
		}
		return nil, err
	}
	return &loc, nil
}

func (r *locationGorm) SetDefault(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loc, err := findOwned(tx, id, userID)
		if err != nil {
			return err
		}
		if err := demoteDefaults(tx, userID, loc.ID); err != nil {
			return err
		}
		return tx.Model(loc).Update("is_default", true).Error
	})
}

func (r *locationGorm) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loc, err := findOwned(tx, id, userID)
		if err != nil {
			return err
		}
		for _, model := range r.dependents {
			if err := tx.Model(model).
				Where("location_id = ?", loc.ID).
				Update("location_id", nil).Error; err != nil {
				return err
			}
		}
		return tx.Delete(loc).Error
	})
}

func (r *locationGorm) LatestByUser(ctx context.Context, userID uint) (*entity.Location, error) {
	var loc entity.Location
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrLocationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}
