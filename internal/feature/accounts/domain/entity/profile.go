package entity

import (
	"errors"
	"time"
)

// PhoneLength is the exact number of digits a phone number must have.
const PhoneLength = 11

// ErrInvalidPhone is returned when a phone number is not exactly 11 digits.
var ErrInvalidPhone = errors.New("phone number must be exactly 11 digits")

// Profile holds auxiliary per-user data.
type Profile struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`

	// Phone is optional; nil means not set.
	Phone *string `gorm:"size:11"`
	Bio   string  `gorm:"type:text"`

	// Avatar is the media storage key of the avatar image, empty when unset.
	Avatar string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the profile's field-level rules.
func (p *Profile) Validate() error {
	if p.Phone != nil && *p.Phone != "" && !IsValidPhone(*p.Phone) {
		return ErrInvalidPhone
	}
	return nil
}

// IsValidPhone reports whether s consists of exactly 11 ASCII digits.
func IsValidPhone(s string) bool {
	if len(s) != PhoneLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
