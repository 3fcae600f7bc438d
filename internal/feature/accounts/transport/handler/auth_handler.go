// Package handler serves the login, registration and profile pages.
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
	"lifetrail/internal/shared/ratelimiter"
	"lifetrail/internal/web"
)

// AuthUsecase is what the auth pages need from the usecase layer.
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, username, password, userAgent, ip string) (string, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandler handles /login, /register and /logout.
type AuthHandler struct {
	auth    AuthUsecase
	flash   *flash.Store
	limiter ratelimiter.Limiter
	secret  string
	cookie  jwtmw.CookieOptions
}

// NewAuthHandler creates a new AuthHandler. secret must match the one used
// by the auth middleware.
func NewAuthHandler(auth AuthUsecase, flashes *flash.Store, limiter ratelimiter.Limiter, secret string, cookie jwtmw.CookieOptions) *AuthHandler {
	return &AuthHandler{auth: auth, flash: flashes, limiter: limiter, secret: secret, cookie: cookie}
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", web.View(c, "login", h.flash.Pop(c), gin.H{"Username": ""}))
}

// Login authenticates the user and sets the auth cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	ip := c.ClientIP()
	if !h.limiter.Allow(ip) {
		h.renderLogin(c, http.StatusTooManyRequests, "", "Too many login attempts. Please wait a minute and try again.")
		return
	}

	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		h.renderLogin(c, http.StatusOK, req.Username, validation.Message(err))
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password, c.Request.UserAgent(), ip)
	if err != nil {
		// Do not reveal which part of the credentials was wrong.
		logrus.WithError(err).WithFields(logrus.Fields{"username": req.Username, "remote_addr": ip}).Warn("login failed")
		msg := "Invalid username or password."
		if !errors.Is(err, usecase.ErrInvalidCredentials) {
			msg = "Could not sign in. Please try again."
		}
		h.renderLogin(c, http.StatusOK, req.Username, msg)
		return
	}

	h.limiter.Reset(ip)
	jwtmw.SetAuthCookie(c, token, h.cookie)
	logrus.WithFields(logrus.Fields{"username": req.Username, "remote_addr": ip}).Info("user login successful")
	h.flash.Add(c, flash.Success, "Welcome back, "+req.Username+"!")
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, username, msg string) {
	c.HTML(status, "login.html", web.View(c, "login", []flash.Message{{Level: flash.Error, Text: msg}}, gin.H{
		"Username": username,
	}))
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", web.View(c, "register", h.flash.Pop(c), gin.H{"Username": "", "Email": ""}))
}

// Register creates the account and sends the user to the login page.
// On failure the form is shown again with what was typed, minus passwords.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBind(&req); err != nil {
		h.renderRegister(c, req, validation.Message(err))
		return
	}

	_, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password1,
		PasswordConfirm: req.Password2,
	})
	if err != nil {
		h.renderRegister(c, req, registerMessage(err))
		return
	}

	logrus.WithField("username", req.Username).Info("user registered")
	h.flash.Add(c, flash.Success, "Account created. Please sign in.")
	c.Redirect(http.StatusFound, "/login")
}

func registerMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrUsernameRequired):
		return "Username must not be blank."
	case errors.Is(err, usecase.ErrEmailRequired):
		return "Email must not be blank."
	case errors.Is(err, usecase.ErrPasswordMismatch):
		return "The two passwords do not match."
	case errors.Is(err, usecase.ErrPasswordTooShort):
		return "Password must be at least 8 characters long."
	case errors.Is(err, usecase.ErrUsernameTaken):
		return "That username is already taken."
	case errors.Is(err, usecase.ErrEmailTaken):
		return "That email is already registered."
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		return "That username or email is already registered."
	default:
		return "Could not create the account. Please try again."
	}
}

func (h *AuthHandler) renderRegister(c *gin.Context, req dto.RegisterReq, msg string) {
	c.HTML(http.StatusOK, "register.html", web.View(c, "register", []flash.Message{{Level: flash.Error, Text: msg}}, gin.H{
		"Username": req.Username,
		"Email":    req.Email,
	}))
}

// Logout revokes the session named by the cookie, if any, and clears it.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid := jwtmw.CurrentSessionID(c, h.secret); sid != "" {
		if err := h.auth.Logout(c.Request.Context(), sid); err != nil {
			logrus.WithError(err).Warn("failed to revoke session on logout")
		}
	}
	jwtmw.ClearAuthCookie(c, h.cookie)
	h.flash.Add(c, flash.Info, "You have been logged out.")
	c.Redirect(http.StatusFound, "/login")
}
