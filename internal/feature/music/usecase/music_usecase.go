package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"lifetrail/internal/feature/music/domain/entity"
	"lifetrail/internal/shared/upload"
)

const (
	audioPrefix = "music"
	coverPrefix = "music_covers"
)

// MusicRepository abstracts the persistence layer for music.
type MusicRepository interface {
	Create(ctx context.Context, m *entity.Music) error

	// ListByUser returns the user's tracks, most recently uploaded first.
	ListByUser(ctx context.Context, userID uint) ([]entity.Music, error)

	// FindByIDForUser returns ErrMusicNotFound unless id belongs to userID.
	FindByIDForUser(ctx context.Context, id, userID uint) (*entity.Music, error)

	// Delete returns ErrMusicNotFound unless id belongs to userID.
	Delete(ctx context.Context, id, userID uint) error

	// HasMediaKey reports whether one of the user's tracks references key.
	HasMediaKey(ctx context.Context, userID uint, key string) (bool, error)
}

// MediaStore persists uploaded files under a storage key.
type MediaStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
}

// UploadInput is the data submitted on the upload form. Cover is optional.
type UploadInput struct {
	Title  string
	Artist string
	Audio  *upload.File
	Cover  *upload.File
}

type musicUsecase struct {
	repo  MusicRepository
	media MediaStore
}

// NewMusicUsecase creates a new musicUsecase.
func NewMusicUsecase(repo MusicRepository, media MediaStore) *musicUsecase {
	return &musicUsecase{repo: repo, media: media}
}

// Upload validates the form, stores the files and records the track.
// Stored files are removed again when the record cannot be saved.
func (u *musicUsecase) Upload(ctx context.Context, userID uint, in UploadInput) (*entity.Music, error) {
	m := &entity.Music{
		UserID: userID,
		Title:  strings.TrimSpace(in.Title),
		Artist: strings.TrimSpace(in.Artist),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if in.Audio == nil {
		return nil, ErrAudioRequired
	}

	audioType, err := upload.Sniff(in.Audio)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	if !upload.IsAudio(audioType) {
		return nil, ErrInvalidAudio
	}
	var coverType string
	if in.Cover != nil {
		if coverType, err = upload.Sniff(in.Cover); err != nil {
			return nil, fmt.Errorf("failed to read cover image: %w", err)
		}
		if !upload.IsImage(coverType) {
			return nil, ErrInvalidCover
		}
	}

	m.AudioFile = upload.Key(audioPrefix, in.Audio.Filename)
	if err := u.media.Put(ctx, m.AudioFile, in.Audio.Content, in.Audio.Size, audioType); err != nil {
		return nil, fmt.Errorf("failed to store audio file: %w", err)
	}
	if in.Cover != nil {
		m.CoverImage = upload.Key(coverPrefix, in.Cover.Filename)
		if err := u.media.Put(ctx, m.CoverImage, in.Cover.Content, in.Cover.Size, coverType); err != nil {
			u.removeMedia(ctx, m.AudioFile)
			return nil, fmt.Errorf("failed to store cover image: %w", err)
		}
	}

	if err := u.repo.Create(ctx, m); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("failed to save music")
		for _, key := range m.MediaKeys() {
			u.removeMedia(ctx, key)
		}
		return nil, err
	}
	return m, nil
}

func (u *musicUsecase) List(ctx context.Context, userID uint) ([]entity.Music, error) {
	return u.repo.ListByUser(ctx, userID)
}

// Delete removes an owned track and its files.
func (u *musicUsecase) Delete(ctx context.Context, userID, id uint) error {
	m, err := u.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	for _, key := range m.MediaKeys() {
		u.removeMedia(ctx, key)
	}
	return nil
}

// MediaKeys lists every storage key referenced by the user's tracks.
func (u *musicUsecase) MediaKeys(ctx context.Context, userID uint) ([]string, error) {
	tracks, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var keys []string
	for i := range tracks {
		keys = append(keys, tracks[i].MediaKeys()...)
	}
	return keys, nil
}

// OwnsMedia reports whether key is the audio file or cover of one of the user's tracks.
func (u *musicUsecase) OwnsMedia(ctx context.Context, userID uint, key string) (bool, error) {
	if !strings.HasPrefix(key, audioPrefix+"/") && !strings.HasPrefix(key, coverPrefix+"/") {
		return false, nil
	}
	return u.repo.HasMediaKey(ctx, userID, key)
}

func (u *musicUsecase) removeMedia(ctx context.Context, key string) {
	if err := u.media.Remove(ctx, key); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("failed to remove media")
	}
}
