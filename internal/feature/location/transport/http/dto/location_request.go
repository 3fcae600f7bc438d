// Package dto defines the form payloads of the location pages.
package dto

import (
	"strconv"
	"strings"
)

// CreateLocationReq is the body of POST /location/.
// Coordinates stay strings so an empty field means "unknown".
type CreateLocationReq struct {
	Name      string `form:"name" binding:"required,max=100"`
	Address   string `form:"address" binding:"required"`
	Latitude  string `form:"latitude" binding:"omitempty,optfloat,latitude"`
	Longitude string `form:"longitude" binding:"omitempty,optfloat,longitude"`
	IsDefault string `form:"is_default"`
}

// Default reports whether the checkbox was ticked.
func (r CreateLocationReq) Default() bool {
	switch strings.ToLower(r.IsDefault) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Coordinates returns the parsed latitude and longitude; blanks become nil.
func (r CreateLocationReq) Coordinates() (lat, lon *float64) {
	return parseOptional(r.Latitude), parseOptional(r.Longitude)
}

func parseOptional(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
