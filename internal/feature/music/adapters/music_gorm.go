// Package adapters provides repository implementations for the music feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lifetrail/internal/feature/music/domain/entity"
	"lifetrail/internal/feature/music/usecase"
)

type musicGorm struct {
	db *gorm.DB
}

var _ usecase.MusicRepository = (*musicGorm)(nil)

// NewMusicGorm creates a new musicGorm.
func NewMusicGorm(gdb *gorm.DB) *musicGorm {
	return &musicGorm{db: gdb}
}

func (r *musicGorm) Create(ctx context.Context, m *entity.Music) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *musicGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Music, error) {
	var out []entity.Music
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *musicGorm) FindByIDForUser(ctx context.Context, id, userID uint) (*entity.Music, error) {
	var m entity.Music
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrMusicNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *musicGorm) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Music{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrMusicNotFound
	}
	return nil
}

func (r *musicGorm) HasMediaKey(ctx context.Context, userID uint, key string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Music{}).
		Where("user_id = ? AND (audio_file = ? OR cover_image = ?)", userID, key, key).
		Count(&n).Error
	return n > 0, err
}
