// Package handler serves the activity page.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lifetrail/internal/feature/activity/domain/entity"
	"lifetrail/internal/feature/activity/transport/http/dto"
	"lifetrail/internal/feature/activity/usecase"
	locentity "lifetrail/internal/feature/location/domain/entity"
	"lifetrail/internal/platform/flash"
	jwtmw "lifetrail/internal/platform/jwt"
	"lifetrail/internal/platform/validation"
	"lifetrail/internal/web"
)

const activityPath = "/activity/"

// ActivityUsecase is what the activity page needs from the usecase layer.
type ActivityUsecase interface {
	Create(ctx context.Context, userID uint, in usecase.CreateInput) (*entity.Activity, error)
	List(ctx context.Context, userID uint) ([]entity.Activity, error)
}

// LocationLister lists the locations offered on the form.
type LocationLister interface {
	List(ctx context.Context, userID uint) ([]locentity.Location, error)
}

// activityRow is an activity with its location resolved for display.
type activityRow struct {
	entity.Activity
	LocationName string
}

// ActivityHandler handles /activity/ requests.
type ActivityHandler struct {
	activities ActivityUsecase
	locations  LocationLister
	flash      *flash.Store
	loc        *time.Location
}

// NewActivityHandler creates a new ActivityHandler. Form times are read as
// wall-clock times in loc.
func NewActivityHandler(activities ActivityUsecase, locations LocationLister, flashes *flash.Store, loc *time.Location) *ActivityHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ActivityHandler{activities: activities, locations: locations, flash: flashes, loc: loc}
}

// List renders the user's activities and the create form.
func (h *ActivityHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	userID := jwtmw.UserID(c)

	acts, err := h.activities.List(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("failed to list activities")
		web.ServerError(c)
		return
	}
	locs, err := h.locations.List(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("failed to list locations")
		web.ServerError(c)
		return
	}

	names := make(map[uint]string, len(locs))
	for _, l := range locs {
		names[l.ID] = l.Name
	}
	rows := make([]activityRow, 0, len(acts))
	for _, a := range acts {
		row := activityRow{Activity: a}
		if a.LocationID != nil {
			row.LocationName = names[*a.LocationID]
		}
		rows = append(rows, row)
	}

	c.HTML(http.StatusOK, "activity.html", web.View(c, "activity", h.flash.Pop(c), gin.H{
		"Categories": entity.Categories,
		"Locations":  locs,
		"Activities": rows,
	}))
}

// Create handles the activity form.
func (h *ActivityHandler) Create(c *gin.Context) {
	var req dto.CreateActivityReq
	if err := c.ShouldBind(&req); err != nil {
		h.flash.Add(c, flash.Error, "Could not save activity: "+validation.Message(err))
		c.Redirect(http.StatusFound, activityPath)
		return
	}
	start, end, err := req.Times(h.loc)
	if err != nil {
		h.flash.Add(c, flash.Error, "Could not save activity: "+err.Error()+".")
		c.Redirect(http.StatusFound, activityPath)
		return
	}
	locationID, err := req.Location()
	if err != nil {
		h.flash.Add(c, flash.Error, "Please choose one of your own locations.")
		c.Redirect(http.StatusFound, activityPath)
		return
	}

	_, err = h.activities.Create(c.Request.Context(), jwtmw.UserID(c), usecase.CreateInput{
		Title:       req.Title,
		Category:    entity.Category(req.Category),
		Description: req.Description,
		LocationID:  locationID,
		StartTime:   start,
		EndTime:     end,
	})
	switch {
	case err == nil:
		h.flash.Add(c, flash.Success, "Activity saved.")
	case errors.Is(err, usecase.ErrLocationNotOwned):
		h.flash.Add(c, flash.Error, "Please choose one of your own locations.")
	case isValidationError(err):
		h.flash.Add(c, flash.Error, "Could not save activity: "+err.Error()+".")
	default:
		h.flash.Add(c, flash.Error, "Could not save activity. Please try again.")
	}
	c.Redirect(http.StatusFound, activityPath)
}

func isValidationError(err error) bool {
	for _, target := range []error{
		entity.ErrTitleRequired,
		entity.ErrTitleTooLong,
		entity.ErrInvalidCategory,
		entity.ErrTimeRequired,
		entity.ErrInvalidTimeRange,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
