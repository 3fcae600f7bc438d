// Package entity defines the domain entities for the activity feature.
package entity

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrTitleTooLong     = errors.New("title must be at most 200 characters")
	ErrInvalidCategory  = errors.New("category must be work, life, travel, study or other")
	ErrTimeRequired     = errors.New("start and end time are required")
	ErrInvalidTimeRange = errors.New("start time must not be after end time")
)

// MaxTitleLength is the maximum length of a title in characters.
const MaxTitleLength = 200

// Category groups activities.
type Category string

const (
	CategoryWork   Category = "work"
	CategoryLife   Category = "life"
	CategoryTravel Category = "travel"
	CategoryStudy  Category = "study"
	CategoryOther  Category = "other"
)

// Categories lists the accepted categories in display order.
var Categories = []Category{CategoryWork, CategoryLife, CategoryTravel, CategoryStudy, CategoryOther}

// Valid reports whether c is an accepted category.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Activity is a time-boxed entry in a user's log.
type Activity struct {
	ID          uint     `gorm:"primaryKey"`
	UserID      uint     `gorm:"index;not null"`
	Title       string   `gorm:"size:200;not null"`
	Category    Category `gorm:"size:20;not null;default:other"`
	Description string   `gorm:"type:text"`
	LocationID  *uint    `gorm:"index"`

	StartTime time.Time `gorm:"index;not null"`
	EndTime   time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// Validate checks the title, the category and that the activity does not
// end before it starts. Equal start and end times are accepted.
func (a *Activity) Validate() error {
	title := strings.TrimSpace(a.Title)
	switch {
	case title == "":
		return ErrTitleRequired
	case utf8.RuneCountInString(title) > MaxTitleLength:
		return ErrTitleTooLong
	case !a.Category.Valid():
		return ErrInvalidCategory
	case a.StartTime.IsZero() || a.EndTime.IsZero():
		return ErrTimeRequired
	case a.StartTime.After(a.EndTime):
		return ErrInvalidTimeRange
	}
	return nil
}
