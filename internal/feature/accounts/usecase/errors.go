// Package usecase implements the business logic for the accounts feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned when the store rejects a user as a duplicate.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUsernameRequired is returned when the username is blank after trimming.
	ErrUsernameRequired = errors.New("username is required")

	// ErrEmailRequired is returned when the email is blank after trimming.
	ErrEmailRequired = errors.New("email is required")

	// ErrUsernameTaken is returned when the requested username belongs to someone else.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrEmailTaken is returned when the requested email belongs to someone else.
	ErrEmailTaken = errors.New("email already registered")

	// ErrPasswordMismatch is returned when the two registration passwords differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrPasswordTooShort is returned when the password is below the minimum length.
	ErrPasswordTooShort = errors.New("password is too short")

	// ErrInvalidCredentials is returned for any login failure.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidAvatar is returned when an uploaded avatar is not an image.
	ErrInvalidAvatar = errors.New("avatar must be an image")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")

	// ErrSessionMismatch is returned when a token's user does not own its session.
	ErrSessionMismatch = errors.New("session does not belong to user")
)
