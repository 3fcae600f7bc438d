// Package dto defines the form payloads of the check-in page.
package dto

import (
	"errors"
	"strconv"
)

// ErrInvalidLocation is returned when location_id is not a positive id.
var ErrInvalidLocation = errors.New("invalid location id")

// CheckInReq is the body of POST /checkin/.
type CheckInReq struct {
	Status     string `form:"status" binding:"omitempty,oneof=completed late absent"`
	LocationID string `form:"location_id" binding:"omitempty,number"`
	Notes      string `form:"notes" binding:"max=2000"`
}

// Location returns the selected location id, or nil for "(none)".
func (r CheckInReq) Location() (*uint, error) {
	if r.LocationID == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(r.LocationID, 10, 0)
	if err != nil || id == 0 {
		return nil, ErrInvalidLocation
	}
	v := uint(id)
	return &v, nil
}
