// Package dto defines the form payloads of the activity page.
package dto

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTime is returned when a datetime field cannot be parsed.
	ErrInvalidTime = errors.New("start and end time must be valid dates")

	// ErrInvalidLocation is returned when location_id is not a positive id.
	ErrInvalidLocation = errors.New("invalid location id")
)

// datetime-local inputs submit minutes, and seconds when a step is set.
var timeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05", "2006-01-02 15:04"}

// CreateActivityReq is the body of POST /activity/.
type CreateActivityReq struct {
	Title       string `form:"title" binding:"required,max=200"`
	Category    string `form:"category" binding:"omitempty,oneof=work life travel study other"`
	Description string `form:"description" binding:"max=5000"`
	LocationID  string `form:"location_id" binding:"omitempty,number"`
	StartTime   string `form:"start_time" binding:"required"`
	EndTime     string `form:"end_time" binding:"required"`
}

// Location returns the selected location id, or nil for "(none)".
func (r CreateActivityReq) Location() (*uint, error) {
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

// Times parses the start and end fields as wall-clock times in loc.
func (r CreateActivityReq) Times(loc *time.Location) (start, end time.Time, err error) {
	if start, err = parseLocal(r.StartTime, loc); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end, err = parseLocal(r.EndTime, loc); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func parseLocal(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTime
}
