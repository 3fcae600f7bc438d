// Package handler serves the location pages.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lifetrail/internal/feature/location/domain/entity"
	"lifetrail/internal/feature/location/transport/http/dto"
	"lifetrail/internal/feature/location/usecase"
	"lifetrail/internal/platform/flash"
	jwtmw "lifetrail/internal/platform/jwt"
	"lifetrail/internal/platform/validation"
	"lifetrail/internal/web"
)

const locationPath = "/location/"

// LocationUsecase is what the location pages need from the usecase layer.
type LocationUsecase interface {
	Create(ctx context.Context, userID uint, in usecase.CreateInput) (*entity.Location, error)
	List(ctx context.Context, userID uint) ([]entity.Location, error)
	SetDefault(ctx context.Context, userID, id uint) error
	Delete(ctx context.Context, userID, id uint) error
}

// LocationHandler handles /location/ requests.
type LocationHandler struct {
	locations LocationUsecase
	flash     *flash.Store
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locations LocationUsecase, flashes *flash.Store) *LocationHandler {
	return &LocationHandler{locations: locations, flash: flashes}
}

// List renders the user's locations and the create form.
func (h *LocationHandler) List(c *gin.Context) {
	locs, err := h.locations.List(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		logrus.WithError(err).Error("failed to list locations")
		web.ServerError(c)
		return
	}
	c.HTML(http.StatusOK, "location.html", web.View(c, "location", h.flash.Pop(c), gin.H{
		"Locations": locs,
	}))
}

// Create handles the location form.
func (h *LocationHandler) Create(c *gin.Context) {
	var req dto.CreateLocationReq
	if err := c.ShouldBind(&req); err != nil {
		h.flash.Add(c, flash.Error, "Could not add location: "+validation.Message(err))
		c.Redirect(http.StatusFound, locationPath)
		return
	}

	lat, lon := req.Coordinates()
	_, err := h.locations.Create(c.Request.Context(), jwtmw.UserID(c), usecase.CreateInput{
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  lat,
		Longitude: lon,
		IsDefault: req.Default(),
	})
	switch {
	case err == nil:
		h.flash.Add(c, flash.Success, "Location added.")
	case isValidationError(err):
		h.flash.Add(c, flash.Error, "Could not add location: "+err.Error()+".")
	default:
		h.flash.Add(c, flash.Error, "Could not add location. Please try again.")
	}
	c.Redirect(http.StatusFound, locationPath)
}

// SetDefault promotes a location to the user's default.
func (h *LocationHandler) SetDefault(c *gin.Context) {
	h.mutate(c, h.locations.SetDefault, "Default location updated.")
}

// Delete removes a location.
func (h *LocationHandler) Delete(c *gin.Context) {
	h.mutate(c, h.locations.Delete, "Location deleted.")
}

func (h *LocationHandler) mutate(c *gin.Context, op func(ctx context.Context, userID, id uint) error, okMsg string) {
	id, ok := web.ParamID(c, "id")
	if !ok {
		web.NotFound(c)
		return
	}
	err := op(c.Request.Context(), jwtmw.UserID(c), id)
	switch {
	case errors.Is(err, usecase.ErrLocationNotFound):
		web.NotFound(c)
		return
	case err != nil:
		logrus.WithError(err).WithField("location_id", id).Error("location update failed")
		h.flash.Add(c, flash.Error, "Something went wrong. Please try again.")
	default:
		h.flash.Add(c, flash.Success, okMsg)
	}
	c.Redirect(http.StatusFound, locationPath)
}

func isValidationError(err error) bool {
	for _, target := range []error{
		entity.ErrNameRequired,
		entity.ErrNameTooLong,
		entity.ErrAddressRequired,
		entity.ErrLatitudeOutOfRange,
		entity.ErrLongitudeOutOfRange,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
