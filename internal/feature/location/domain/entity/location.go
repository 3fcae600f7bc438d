// Package entity defines the domain entities for the location feature.
package entity

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNameRequired        = errors.New("location name is required")
	ErrNameTooLong         = errors.New("location name must be at most 100 characters")
	ErrAddressRequired     = errors.New("address is required")
	ErrLatitudeOutOfRange  = errors.New("latitude must be between -90 and 90")
	ErrLongitudeOutOfRange = errors.New("longitude must be between -180 and 180")
)

// MaxNameLength is the maximum length of a location name in characters.
const MaxNameLength = 100

// Location is a place bookmarked by a user.
type Location struct {
	ID      uint   `gorm:"primaryKey"`
	UserID  uint   `gorm:"index;not null"`
	Name    string `gorm:"size:100;not null"`
	Address string `gorm:"type:text;not null"`

	// Latitude and Longitude are nil when unknown.
	Latitude  *float64
	Longitude *float64

	IsDefault bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks required fields and coordinate ranges.
func (l *Location) Validate() error {
	name := strings.TrimSpace(l.Name)
	switch {
	case name == "":
		return ErrNameRequired
	case len([]rune(name)) > MaxNameLength:
		return ErrNameTooLong
	case strings.TrimSpace(l.Address) == "":
		return ErrAddressRequired
	case l.Latitude != nil && (*l.Latitude < -90 || *l.Latitude > 90):
		return ErrLatitudeOutOfRange
	case l.Longitude != nil && (*l.Longitude < -180 || *l.Longitude > 180):
		return ErrLongitudeOutOfRange
	}
	return nil
}
