// Package usecase implements the business logic for the checkin feature.
package usecase

import "errors"

var (
	// ErrAlreadyCheckedIn is returned when the user already checked in today.
	ErrAlreadyCheckedIn = errors.New("already checked in today")

	// ErrLocationNotOwned is returned when the chosen location belongs to someone else.
	ErrLocationNotOwned = errors.New("check-in location must be one of your own locations")
)
