// Package adapters provides repository implementations for the accounts feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lifetrail/internal/feature/accounts/domain/entity"
	"lifetrail/internal/feature/accounts/usecase"
	"lifetrail/internal/platform/db"
)

// userGorm is a GORM implementation of the UserRepository interface.
type userGorm struct {
	db *gorm.DB

	// owned are the models holding a user_id column; their rows are
	// removed, in order, when the user is deleted.
	owned []any
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a userGorm. owned lists the per-user models to purge on
// Delete, children before parents.
func NewUserGorm(gdb *gorm.DB, owned ...any) *userGorm {
	return &userGorm{db: gdb, owned: owned}
}

// Create inserts the user and its profile in one transaction.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	profile := u.Profile
	if profile == nil {
		profile = &entity.Profile{}
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(u).Error; err != nil {
			return err
		}
		profile.UserID = u.ID
		return tx.Create(profile).Error
	})
	if err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrUserAlreadyExists
		}
		return err
	}
	u.Profile = profile
	return nil
}

// Update saves the user and its profile. A missing profile row is recreated.
func (r *userGorm) Update(ctx context.Context, u *entity.User) error {
	if u.Profile == nil {
		u.Profile = &entity.Profile{}
	}
	if err := u.Profile.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(u).Error; err != nil {
			return err
		}

		u.Profile.UserID = u.ID
		if u.Profile.ID == 0 {
			var existing entity.Profile
			err := tx.Where("user_id = ?", u.ID).First(&existing).Error
			switch {
			case err == nil:
				u.Profile.ID = existing.ID
				u.Profile.CreatedAt = existing.CreatedAt
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}
		return tx.Save(u.Profile).Error
	})
	if err != nil && db.IsDuplicateKey(err) {
		return usecase.ErrUserAlreadyExists
	}
	return err
}

// Delete removes the user, its profile and every owned record in one transaction.
func (r *userGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range r.owned {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&entity.Profile{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrUserNotFound
		}
		return nil
	})
}

// FindByUsername returns usecase.ErrUserNotFound when no user matches.
func (r *userGorm) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.first(ctx, "username = ?", username)
}

// FindByID returns usecase.ErrUserNotFound when no user matches.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userGorm) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Preload("Profile").Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userGorm) ExistsByUsername(ctx context.Context, username string, excludeID uint) (bool, error) {
	return r.exists(ctx, "username = ?", username, excludeID)
}

func (r *userGorm) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	return r.exists(ctx, "email = ?", email, excludeID)
}

func (r *userGorm) exists(ctx context.Context, query string, arg any, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where(query, arg).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}
