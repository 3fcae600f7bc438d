// Package entity defines the domain entities for the checkin feature.
package entity

import (
	"errors"
	"time"
)

// Status is the outcome recorded with a check-in.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusLate      Status = "late"
	StatusAbsent    Status = "absent"
)

// Statuses lists the accepted statuses in display order.
var Statuses = []Status{StatusCompleted, StatusLate, StatusAbsent}

// DateLayout is the format of CheckInDate.
const DateLayout = "2006-01-02"

// ErrInvalidStatus is returned for a status outside Statuses.
var ErrInvalidStatus = errors.New("status must be completed, late or absent")

// CheckIn records that a user showed up on a given day.
// At most one exists per user and CheckInDate.
type CheckIn struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_checkin_user_day"`
	LocationID *uint  `gorm:"index"`
	Status     Status `gorm:"size:20;not null;default:completed"`
	Notes      string `gorm:"type:text"`

	// CheckInDate is the calendar day in the application time zone.
	CheckInDate string `gorm:"size:10;not null;uniqueIndex:idx_checkin_user_day"`

	CreatedAt time.Time
}

// Valid reports whether s is an accepted status.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// DayOf returns the CheckInDate value for t in loc.
func DayOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}
