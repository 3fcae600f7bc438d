// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const checkTimeout = 2 * time.Second

// Check probes one dependency, e.g. the database or Redis.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler serves /healthz.
type HealthHandler struct {
	checks []Check
}

// NewHealthHandler creates a HealthHandler running checks on GET.
func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health answers GET with the state of every check, HEAD with the status
// code only and OPTIONS with 204. Responses are never cached.
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	status := http.StatusOK
	results := make(gin.H, len(h.checks))
	for _, chk := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		err := chk.Ping(ctx)
		cancel()
		if err != nil {
			logrus.WithError(err).WithField("check", chk.Name).Warn("health check failed")
			results[chk.Name] = "fail"
			status = http.StatusServiceUnavailable
			continue
		}
		results[chk.Name] = "ok"
	}

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}
	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "checks": results})
}
