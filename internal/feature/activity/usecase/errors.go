package usecase

import "errors"

// ErrLocationNotOwned is returned when an activity references a location
// that does not belong to the user.
var ErrLocationNotOwned = errors.New("location does not belong to user")
