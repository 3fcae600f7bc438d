package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	jwtmw "lifetrail/internal/platform/jwt"
	"lifetrail/internal/platform/storage"
	"lifetrail/internal/shared/upload"
	"lifetrail/internal/web"
)

// MediaOwner reports whether a storage key belongs to one of the user's records.
type MediaOwner interface {
	OwnsMedia(ctx context.Context, userID uint, key string) (bool, error)
}

// MediaHandler streams stored uploads (avatars, audio, covers) to their owner.
type MediaHandler struct {
	store  storage.Storage
	owners []MediaOwner
}

// NewMediaHandler creates a MediaHandler. A key is served only when one of
// owners claims it for the signed-in user.
func NewMediaHandler(store storage.Storage, owners ...MediaOwner) *MediaHandler {
	return &MediaHandler{store: store, owners: owners}
}

// Serve handles GET /media/*key.
func (h *MediaHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if !storage.ValidKey(key) {
		web.NotFound(c)
		return
	}

	owned, err := h.owned(c.Request.Context(), jwtmw.UserID(c), key)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("failed to check media owner")
		web.ServerError(c)
		return
	}
	if !owned {
		web.NotFound(c)
		return
	}

	obj, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			web.NotFound(c)
			return
		}
		logrus.WithError(err).WithField("key", key).Error("failed to open media object")
		web.ServerError(c)
		return
	}
	defer obj.Body.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	headers := map[string]string{
		"Cache-Control":           "private, max-age=86400",
		"X-Content-Type-Options":  "nosniff",
		"Content-Security-Policy": "sandbox",
	}
	if !upload.Inline(contentType) {
		headers["Content-Disposition"] = "attachment"
	}
	c.DataFromReader(http.StatusOK, obj.Size, contentType, obj.Body, headers)
}

func (h *MediaHandler) owned(ctx context.Context, userID uint, key string) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	for _, o := range h.owners {
		ok, err := o.OwnsMedia(ctx, userID, key)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
