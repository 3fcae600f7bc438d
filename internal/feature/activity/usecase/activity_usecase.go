package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"lifetrail/internal/feature/activity/domain/entity"
)

// ActivityRepository abstracts the persistence layer for activities.
type ActivityRepository interface {
	Create(ctx context.Context, a *entity.Activity) error

	// ListByUser returns every activity of the user, latest start first.
	ListByUser(ctx context.Context, userID uint) ([]entity.Activity, error)

	// ListRecent returns at most limit activities, latest start first.
	ListRecent(ctx context.Context, userID uint, limit int) ([]entity.Activity, error)
}

// LocationOwnership tells whether a location belongs to a user.
type LocationOwnership interface {
	Owns(ctx context.Context, userID, locationID uint) (bool, error)
}

// CreateInput is the data submitted on the activity form.
type CreateInput struct {
	Title       string
	Category    entity.Category
	Description string
	LocationID  *uint
	StartTime   time.Time
	EndTime     time.Time
}

type activityUsecase struct {
	repo      ActivityRepository
	locations LocationOwnership
}

// NewActivityUsecase creates a new activityUsecase.
func NewActivityUsecase(repo ActivityRepository, locations LocationOwnership) *activityUsecase {
	return &activityUsecase{repo: repo, locations: locations}
}

// Create validates and stores an activity. An empty category means other.
func (u *activityUsecase) Create(ctx context.Context, userID uint, in CreateInput) (*entity.Activity, error) {
	category := in.Category
	if category == "" {
		category = entity.CategoryOther
	}
	a := &entity.Activity{
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Category:    category,
		Description: strings.TrimSpace(in.Description),
		LocationID:  in.LocationID,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if a.LocationID != nil {
		owns, err := u.locations.Owns(ctx, userID, *a.LocationID)
		if err != nil {
			return nil, err
		}
		if !owns {
			return nil, ErrLocationNotOwned
		}
	}

	if err := u.repo.Create(ctx, a); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("failed to save activity")
		return nil, err
	}
	return a, nil
}

func (u *activityUsecase) List(ctx context.Context, userID uint) ([]entity.Activity, error) {
	return u.repo.ListByUser(ctx, userID)
}

// Recent returns the user's latest activities for the dashboard.
func (u *activityUsecase) Recent(ctx context.Context, userID uint, limit int) ([]entity.Activity, error) {
	return u.repo.ListRecent(ctx, userID, limit)
}
