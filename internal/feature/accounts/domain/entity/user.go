// Package entity defines the domain entities for the accounts feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the login name. It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:150;not null"`

	// Email must be unique across all users.
	Email string `gorm:"uniqueIndex;size:254;not null"`

	// Password is the bcrypt hash. Plaintext is never stored.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Profile is the one-to-one extension record, provisioned with the user.
	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
