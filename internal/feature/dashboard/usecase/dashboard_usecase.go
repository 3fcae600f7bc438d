// Package usecase assembles the dashboard from the other features.
package usecase

import (
	"context"
	"fmt"

	accentity "lifetrail/internal/feature/accounts/domain/entity"
	actentity "lifetrail/internal/feature/activity/domain/entity"
	"lifetrail/internal/feature/dashboard/domain/entity"
	locentity "lifetrail/internal/feature/location/domain/entity"
)

// RecentActivityLimit is how many activities the dashboard shows.
const RecentActivityLimit = 3

type ProfileReader interface {
	GetProfile(ctx context.Context, userID uint) (*accentity.User, error)
}

type CheckInStatus interface {
	CheckedInToday(ctx context.Context, userID uint) (bool, error)
}

type LatestLocation interface {
	Latest(ctx context.Context, userID uint) (*locentity.Location, error)
}

type RecentActivities interface {
	Recent(ctx context.Context, userID uint, limit int) ([]actentity.Activity, error)
}

type dashboardUsecase struct {
	profiles   ProfileReader
	checkins   CheckInStatus
	locations  LatestLocation
	activities RecentActivities
}

// NewDashboardUsecase creates a new dashboardUsecase.
func NewDashboardUsecase(profiles ProfileReader, checkins CheckInStatus, locations LatestLocation, activities RecentActivities) *dashboardUsecase {
	return &dashboardUsecase{profiles: profiles, checkins: checkins, locations: locations, activities: activities}
}

// Summary collects today's check-in state, the latest location and the
// most recent activities of the user.
func (u *dashboardUsecase) Summary(ctx context.Context, userID uint) (*entity.Summary, error) {
	user, err := u.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	done, err := u.checkins.CheckedInToday(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load check-in: %w", err)
	}
	loc, err := u.locations.Latest(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load location: %w", err)
	}
	acts, err := u.activities.Recent(ctx, userID, RecentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}
	return &entity.Summary{
		Username:         user.Username,
		CheckedInToday:   done,
		RecentLocation:   loc,
		RecentActivities: acts,
	}, nil
}
