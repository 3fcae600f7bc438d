// Package handler serves the check-in page.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lifetrail/internal/feature/checkin/domain/entity"
	"lifetrail/internal/feature/checkin/transport/http/dto"
	"lifetrail/internal/feature/checkin/usecase"
	locentity "lifetrail/internal/feature/location/domain/entity"
	"lifetrail/internal/platform/flash"
	jwtmw "lifetrail/internal/platform/jwt"
	"lifetrail/internal/platform/validation"
	"lifetrail/internal/web"
)

const (
	checkInPath  = "/checkin/"
	historyLimit = 10
)

// CheckInUsecase is what the check-in page needs from the usecase layer.
type CheckInUsecase interface {
	Today() string
	CheckedInToday(ctx context.Context, userID uint) (bool, error)
	CheckIn(ctx context.Context, userID uint, in usecase.CheckInInput) (*entity.CheckIn, error)
	History(ctx context.Context, userID uint, limit int) ([]entity.CheckIn, error)
}

// LocationLister lists the locations offered on the form.
type LocationLister interface {
	List(ctx context.Context, userID uint) ([]locentity.Location, error)
}

// CheckInHandler handles /checkin/ requests.
type CheckInHandler struct {
	checkins  CheckInUsecase
	locations LocationLister
	flash     *flash.Store
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(checkins CheckInUsecase, locations LocationLister, flashes *flash.Store) *CheckInHandler {
	return &CheckInHandler{checkins: checkins, locations: locations, flash: flashes}
}

// Form renders today's check-in form, or sends the user back to the
// dashboard when they already checked in.
func (h *CheckInHandler) Form(c *gin.Context) {
	ctx := c.Request.Context()
	userID := jwtmw.UserID(c)

	done, err := h.checkins.CheckedInToday(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("failed to look up today's check-in")
		web.ServerError(c)
		return
	}
	if done {
		h.flash.Add(c, flash.Info, "You have already checked in today.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	locs, err := h.locations.List(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("failed to list locations")
		web.ServerError(c)
		return
	}
	history, err := h.checkins.History(ctx, userID, historyLimit)
	if err != nil {
		logrus.WithError(err).Error("failed to list check-ins")
		web.ServerError(c)
		return
	}

	c.HTML(http.StatusOK, "checkin.html", web.View(c, "checkin", h.flash.Pop(c), gin.H{
		"Today":     h.checkins.Today(),
		"Statuses":  entity.Statuses,
		"Locations": locs,
		"History":   history,
	}))
}

// Submit records today's check-in.
func (h *CheckInHandler) Submit(c *gin.Context) {
	var req dto.CheckInReq
	if err := c.ShouldBind(&req); err != nil {
		h.flash.Add(c, flash.Error, "Could not check in: "+validation.Message(err))
		c.Redirect(http.StatusFound, checkInPath)
		return
	}
	locationID, err := req.Location()
	if err != nil {
		h.flash.Add(c, flash.Error, "Please choose one of your own locations.")
		c.Redirect(http.StatusFound, checkInPath)
		return
	}

	_, err = h.checkins.CheckIn(c.Request.Context(), jwtmw.UserID(c), usecase.CheckInInput{
		LocationID: locationID,
		Status:     entity.Status(req.Status),
		Notes:      req.Notes,
	})
	switch {
	case err == nil:
		h.flash.Add(c, flash.Success, "Checked in. Have a good day!")
		c.Redirect(http.StatusFound, "/")
	case errors.Is(err, usecase.ErrAlreadyCheckedIn):
		h.flash.Add(c, flash.Info, "You have already checked in today.")
		c.Redirect(http.StatusFound, "/")
	case errors.Is(err, usecase.ErrLocationNotOwned):
		h.flash.Add(c, flash.Error, "Please choose one of your own locations.")
		c.Redirect(http.StatusFound, checkInPath)
	case errors.Is(err, entity.ErrInvalidStatus):
		h.flash.Add(c, flash.Error, "Please choose a valid status.")
		c.Redirect(http.StatusFound, checkInPath)
	default:
		h.flash.Add(c, flash.Error, "Could not check in. Please try again.")
		c.Redirect(http.StatusFound, checkInPath)
	}
}
