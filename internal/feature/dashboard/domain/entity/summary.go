// Package entity defines the read model shown on the dashboard.
package entity

import (
	actentity "lifetrail/internal/feature/activity/domain/entity"
	locentity "lifetrail/internal/feature/location/domain/entity"
)

// Summary is the dashboard view of a user's day.
type Summary struct {
	Username         string
	CheckedInToday   bool
	RecentLocation   *locentity.Location // nil when the user has none
	RecentActivities []actentity.Activity
}
