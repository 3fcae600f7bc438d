package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lifetrail/internal/feature/accounts/domain/entity"
	"lifetrail/internal/feature/accounts/transport/http/dto"
	"lifetrail/internal/feature/accounts/usecase"
	"lifetrail/internal/platform/flash"
	jwtmw "lifetrail/internal/platform/jwt"
	"lifetrail/internal/platform/validation"
	"lifetrail/internal/shared/upload"
	"lifetrail/internal/web"
)

const profilePath = "/profile"

// ProfileUsecase is what the profile page needs from the usecase layer.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uint, in usecase.ProfileInput) (*entity.User, error)
	DeleteAccount(ctx context.Context, userID uint) error
}

// ProfileHandler handles /profile requests.
type ProfileHandler struct {
	profiles ProfileUsecase
	flash    *flash.Store
	cookie   jwtmw.CookieOptions
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles ProfileUsecase, flashes *flash.Store, cookie jwtmw.CookieOptions) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, flash: flashes, cookie: cookie}
}

// Show renders the profile page.
func (h *ProfileHandler) Show(c *gin.Context) {
	user, err := h.profiles.GetProfile(c.Request.Context(), jwtmw.UserID(c))
	if errors.Is(err, usecase.ErrUserNotFound) {
		web.NotFound(c)
		return
	}
	if err != nil {
		logrus.WithError(err).Error("failed to load profile")
		web.ServerError(c)
		return
	}
	c.HTML(http.StatusOK, "profile.html", web.View(c, "profile", h.flash.Pop(c), gin.H{
		"User": user,
	}))
}

// Update saves the profile form.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.ProfileReq
	if err := c.ShouldBind(&req); err != nil {
		h.flash.Add(c, flash.Error, "Could not update profile: "+validation.Message(err))
		c.Redirect(http.StatusFound, profilePath)
		return
	}

	avatar, closeAvatar, err := upload.FromForm(c, "avatar")
	defer closeAvatar()
	if err != nil {
		h.flash.Add(c, flash.Error, "Could not read the avatar.")
		c.Redirect(http.StatusFound, profilePath)
		return
	}

	_, err = h.profiles.UpdateProfile(c.Request.Context(), jwtmw.UserID(c), usecase.ProfileInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    &req.Phone,
		Bio:      &req.Bio,
		Avatar:   avatar,
	})
	switch {
	case err == nil:
		h.flash.Add(c, flash.Success, "Profile updated.")
	case errors.Is(err, usecase.ErrUsernameTaken):
		h.flash.Add(c, flash.Error, "That username is already taken.")
	case errors.Is(err, usecase.ErrEmailTaken):
		h.flash.Add(c, flash.Error, "That email is already registered.")
	case errors.Is(err, usecase.ErrInvalidAvatar):
		h.flash.Add(c, flash.Error, "The avatar must be a PNG, JPEG, GIF or WebP image.")
	case errors.Is(err, entity.ErrInvalidPhone):
		h.flash.Add(c, flash.Error, "Phone number must be exactly 11 digits.")
	default:
		h.flash.Add(c, flash.Error, "Could not update profile. Please try again.")
	}
	c.Redirect(http.StatusFound, profilePath)
}

// Delete removes the account with everything it owns and signs the user out.
func (h *ProfileHandler) Delete(c *gin.Context) {
	userID := jwtmw.UserID(c)
	if err := h.profiles.DeleteAccount(c.Request.Context(), userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("account deletion failed")
		h.flash.Add(c, flash.Error, "Could not delete your account. Please try again.")
		c.Redirect(http.StatusFound, profilePath)
		return
	}
	jwtmw.ClearAuthCookie(c, h.cookie)
	logrus.WithField("user_id", userID).Info("account deleted")
	h.flash.Add(c, flash.Info, "Your account has been deleted.")
	c.Redirect(http.StatusFound, "/login")
}
