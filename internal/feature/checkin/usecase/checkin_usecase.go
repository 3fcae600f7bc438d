package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"lifetrail/internal/feature/checkin/domain/entity"
)

// CheckInRepository abstracts the persistence layer for check-ins.
type CheckInRepository interface {
	// Create inserts c. It returns ErrAlreadyCheckedIn when the user already
	// has a check-in for c.CheckInDate.
	Create(ctx context.Context, c *entity.CheckIn) error

	ExistsForDay(ctx context.Context, userID uint, day string) (bool, error)

	// ListByUser returns the user's check-ins, newest first.
	ListByUser(ctx context.Context, userID uint, limit int) ([]entity.CheckIn, error)
}

// LocationOwnership tells whether a location belongs to a user.
type LocationOwnership interface {
	Owns(ctx context.Context, userID, locationID uint) (bool, error)
}

// CheckInInput is the data submitted on the check-in form.
type CheckInInput struct {
	LocationID *uint
	Status     entity.Status
	Notes      string
}

type checkInUsecase struct {
	repo      CheckInRepository
	locations LocationOwnership
	loc       *time.Location
	now       func() time.Time
}

// NewCheckInUsecase creates a checkInUsecase. Days are counted in loc.
func NewCheckInUsecase(repo CheckInRepository, locations LocationOwnership, loc *time.Location) *checkInUsecase {
	if loc == nil {
		loc = time.Local
	}
	return &checkInUsecase{repo: repo, locations: locations, loc: loc, now: time.Now}
}

// Today returns the current day in the configured time zone.
func (u *checkInUsecase) Today() string {
	return entity.DayOf(u.now(), u.loc)
}

// CheckedInToday reports whether the user has a check-in for today.
func (u *checkInUsecase) CheckedInToday(ctx context.Context, userID uint) (bool, error) {
	return u.repo.ExistsForDay(ctx, userID, u.Today())
}

// CheckIn records today's check-in for the user.
func (u *checkInUsecase) CheckIn(ctx context.Context, userID uint, in CheckInInput) (*entity.CheckIn, error) {
	status := in.Status
	if status == "" {
		status = entity.StatusCompleted
	}
	if !status.Valid() {
		return nil, entity.ErrInvalidStatus
	}

	if in.LocationID != nil {
		owns, err := u.locations.Owns(ctx, userID, *in.LocationID)
		if err != nil {
			return nil, err
		}
		if !owns {
			return nil, ErrLocationNotOwned
		}
	}

	now := u.now()
	day := entity.DayOf(now, u.loc)
	done, err := u.repo.ExistsForDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, ErrAlreadyCheckedIn
	}

	c := &entity.CheckIn{
		UserID:      userID,
		LocationID:  in.LocationID,
		Status:      status,
		Notes:       strings.TrimSpace(in.Notes),
		CheckInDate: day,
		CreatedAt:   now,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("failed to save check-in")
		return nil, err
	}
	return c, nil
}

// History returns the user's most recent check-ins.
func (u *checkInUsecase) History(ctx context.Context, userID uint, limit int) ([]entity.CheckIn, error) {
	return u.repo.ListByUser(ctx, userID, limit)
}
