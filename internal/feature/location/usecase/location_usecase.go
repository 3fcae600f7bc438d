package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"lifetrail/internal/feature/location/domain/entity"
)

// LocationRepository abstracts the persistence layer for locations.
// Every method is scoped to the owning user.
type LocationRepository interface {
	// Create inserts loc. When loc.IsDefault is set, the user's other
	// defaults are cleared in the same transaction.
	Create(ctx context.Context, loc *entity.Location) error

	// ListByUser returns the user's locations, newest first.
	ListByUser(ctx context.Context, userID uint) ([]entity.Location, error)

	// FindByIDForUser returns ErrLocationNotFound unless id belongs to userID.
	FindByIDForUser(ctx context.Context, id, userID uint) (*entity.Location, error)

	// SetDefault makes id the user's only default location.
	SetDefault(ctx context.Context, id, userID uint) error

	// Delete removes the location and detaches records referencing it.
	Delete(ctx context.Context, id, userID uint) error

	// LatestByUser returns the most recently created location, or ErrLocationNotFound.
	LatestByUser(ctx context.Context, userID uint) (*entity.Location, error)
}

// Listener is told when a user's locations change in a way that affects
// records referencing them, e.g. to drop cached lists.
type Listener interface {
	Forget(ctx context.Context, userID uint) error
}

// CreateInput is the data submitted on the location form.
type CreateInput struct {
	Name      string
	Address   string
	Latitude  *float64
	Longitude *float64
	IsDefault bool
}

type locationUsecase struct {
	repo      LocationRepository
	listeners []Listener
}

// NewLocationUsecase creates a new locationUsecase.
func NewLocationUsecase(repo LocationRepository) *locationUsecase {
	return &locationUsecase{repo: repo}
}

// WithListeners registers listeners notified after a location is deleted.
func (u *locationUsecase) WithListeners(listeners ...Listener) *locationUsecase {
	u.listeners = append(u.listeners, listeners...)
	return u
}

// Create validates the input before anything touches the database.
func (u *locationUsecase) Create(ctx context.Context, userID uint, in CreateInput) (*entity.Location, error) {
	loc := &entity.Location{
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		IsDefault: in.IsDefault,
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, loc); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("failed to save location")
		return nil, err
	}
	return loc, nil
}

func (u *locationUsecase) List(ctx context.Context, userID uint) ([]entity.Location, error) {
	return u.repo.ListByUser(ctx, userID)
}

func (u *locationUsecase) SetDefault(ctx context.Context, userID, id uint) error {
	return u.repo.SetDefault(ctx, id, userID)
}

// Delete removes the location. Records that referenced it are detached, so
// listeners are told to drop anything they cached for the user.
func (u *locationUsecase) Delete(ctx context.Context, userID, id uint) error {
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	for _, l := range u.listeners {
		if err := l.Forget(ctx, userID); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("location listener failed")
		}
	}
	return nil
}

// Latest returns the user's most recent location, or nil when there is none.
func (u *locationUsecase) Latest(ctx context.Context, userID uint) (*entity.Location, error) {
	loc, err := u.repo.LatestByUser(ctx, userID)
	if errors.Is(err, ErrLocationNotFound) {
		return nil, nil
	}
	return loc, err
}

// Owns reports whether locationID belongs to userID.
func (u *locationUsecase) Owns(ctx context.Context, userID, locationID uint) (bool, error) {
	_, err := u.repo.FindByIDForUser(ctx, locationID, userID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrLocationNotFound):
		return false, nil
	default:
		return false, err
	}
}
