// Package handler serves the dashboard.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lifetrail/internal/feature/dashboard/domain/entity"
	"lifetrail/internal/platform/flash"
	jwtmw "lifetrail/internal/platform/jwt"
	"lifetrail/internal/web"
)

// DashboardUsecase builds the dashboard summary.
type DashboardUsecase interface {
	Summary(ctx context.Context, userID uint) (*entity.Summary, error)
}

// DashboardHandler handles GET /.
type DashboardHandler struct {
	dashboard DashboardUsecase
	flash     *flash.Store
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard DashboardUsecase, flashes *flash.Store) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, flash: flashes}
}

// Show renders the dashboard.
func (h *DashboardHandler) Show(c *gin.Context) {
	s, err := h.dashboard.Summary(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		logrus.WithError(err).Error("failed to build dashboard")
		web.ServerError(c)
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", web.View(c, "dashboard", h.flash.Pop(c), gin.H{
		"Username":         s.Username,
		"CheckedInToday":   s.CheckedInToday,
		"RecentLocation":   s.RecentLocation,
		"RecentActivities": s.RecentActivities,
	}))
}
