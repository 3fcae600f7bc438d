package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"lifetrail/internal/feature/accounts/domain/entity"
	"lifetrail/internal/shared/upload"
)

const avatarPrefix = "avatars"

// MediaStore persists uploaded files under a storage key.
type MediaStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
}

// MediaOwner reports the media keys referenced by a user's records so they
// can be removed together with the account.
type MediaOwner interface {
	MediaKeys(ctx context.Context, userID uint) ([]string, error)
}

// AccountListener is told when an account is gone, e.g. to drop caches.
type AccountListener interface {
	Forget(ctx context.Context, userID uint) error
}

// ProfileInput carries the editable profile fields. Nil pointers leave a field unchanged.
type ProfileInput struct {
	Username string
	Email    string
	Phone    *string
	Bio      *string
	Avatar   *upload.File
}

// profileUsecase implements profile viewing, editing and account deletion.
type profileUsecase struct {
	users    UserRepository
	sessions SessionRepository
	media    MediaStore

	owners    []MediaOwner
	listeners []AccountListener
}

// NewProfileUsecase creates a new profileUsecase.
func NewProfileUsecase(users UserRepository, sessions SessionRepository, media MediaStore) *profileUsecase {
	return &profileUsecase{users: users, sessions: sessions, media: media}
}

// WithMediaOwners registers features whose files are removed on account deletion.
func (u *profileUsecase) WithMediaOwners(owners ...MediaOwner) *profileUsecase {
	u.owners = append(u.owners, owners...)
	return u
}

// WithAccountListeners registers listeners notified after account deletion.
func (u *profileUsecase) WithAccountListeners(listeners ...AccountListener) *profileUsecase {
	u.listeners = append(u.listeners, listeners...)
	return u
}

// GetProfile returns the user with a non-nil profile.
func (u *profileUsecase) GetProfile(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		user.Profile = &entity.Profile{UserID: user.ID}
	}
	return user, nil
}

// OwnsMedia reports whether key is the user's current avatar.
func (u *profileUsecase) OwnsMedia(ctx context.Context, userID uint, key string) (bool, error) {
	if !strings.HasPrefix(key, avatarPrefix+"/") {
		return false, nil
	}
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.Profile != nil && user.Profile.Avatar == key, nil
}

// UpdateProfile applies in to the user and its profile.
// Uniqueness of username and email is checked before anything is written.
func (u *profileUsecase) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*entity.User, error) {
	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Username); name != "" && name != user.Username {
		taken, err := u.users.ExistsByUsername(ctx, name, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
		user.Username = name
	}
	if email := strings.TrimSpace(in.Email); email != "" && email != user.Email {
		taken, err := u.users.ExistsByEmail(ctx, email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		user.Email = email
	}

	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if phone == "" {
			user.Profile.Phone = nil
		} else {
			user.Profile.Phone = &phone
		}
	}
	if in.Bio != nil {
		user.Profile.Bio = *in.Bio
	}
	if err := user.Profile.Validate(); err != nil {
		return nil, err
	}

	oldAvatar := user.Profile.Avatar
	newAvatar := ""
	if in.Avatar != nil {
		key, err := u.storeAvatar(ctx, in.Avatar)
		if err != nil {
			return nil, err
		}
		newAvatar = key
		user.Profile.Avatar = key
	}

	if err := u.users.Update(ctx, user); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to save profile")
		if newAvatar != "" {
			u.removeMedia(ctx, newAvatar)
		}
		return nil, err
	}
	if newAvatar != "" && oldAvatar != "" {
		u.removeMedia(ctx, oldAvatar)
	}
	return user, nil
}

// DeleteAccount revokes every session and deletes the user with all owned
// records. Media files are removed once the rows are gone.
func (u *profileUsecase) DeleteAccount(ctx context.Context, userID uint) error {
	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	var keys []string
	if user.Profile.Avatar != "" {
		keys = append(keys, user.Profile.Avatar)
	}
	for _, o := range u.owners {
		owned, err := o.MediaKeys(ctx, userID)
		if err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("failed to collect media keys")
			continue
		}
		keys = append(keys, owned...)
	}

	if err := u.sessions.RevokeAllByUserID(ctx, userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("failed to revoke sessions")
	}
	if err := u.users.Delete(ctx, userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("failed to delete account")
		return err
	}

	for _, key := range keys {
		u.removeMedia(ctx, key)
	}
	for _, l := range u.listeners {
		if err := l.Forget(ctx, userID); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("account listener failed")
		}
	}
	return nil
}

func (u *profileUsecase) storeAvatar(ctx context.Context, f *upload.File) (string, error) {
	ctype, err := upload.Sniff(f)
	if err != nil {
		return "", fmt.Errorf("failed to read avatar: %w", err)
	}
	if !upload.IsImage(ctype) {
		return "", ErrInvalidAvatar
	}
	key := upload.Key(avatarPrefix, f.Filename)
	if err := u.media.Put(ctx, key, f.Content, f.Size, ctype); err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}
	return key, nil
}

// removeMedia is best effort; an orphaned file is not worth failing the request.
func (u *profileUsecase) removeMedia(ctx context.Context, key string) {
	if err := u.media.Remove(ctx, key); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("failed to remove media")
	}
}
