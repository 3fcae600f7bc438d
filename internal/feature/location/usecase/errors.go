// Package usecase implements the business logic for the location feature.
package usecase

import "errors"

// ErrLocationNotFound is returned when a location does not exist or belongs to another user.
var ErrLocationNotFound = errors.New("location not found")
