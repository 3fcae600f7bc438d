package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"lifetrail/internal/feature/accounts/domain/entity"
)

const (
	// minPasswordLength is the minimum number of characters in a password.
	minPasswordLength = 8

	// maxSessionsPerUser caps concurrent browser sessions; the oldest is evicted.
	maxSessionsPerUser = 5

	// dummyHash keeps the bcrypt comparison running when the user does not exist.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user together with an empty profile in one transaction.
	// It returns ErrUserAlreadyExists when the username or email is taken.
	Create(ctx context.Context, user *entity.User) error

	// Update saves the user and re-saves its profile, creating the profile if missing.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user and every record the user owns.
	Delete(ctx context.Context, id uint) error

	// FindByUsername retrieves a user by username. Returns ErrUserNotFound if absent.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID retrieves a user with its profile. Returns ErrUserNotFound if absent.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// ExistsByUsername reports whether another user (ID != excludeID) has username.
	ExistsByUsername(ctx context.Context, username string, excludeID uint) (bool, error)

	// ExistsByEmail reports whether another user (ID != excludeID) has email.
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
}

// TokenGenerator issues the signed token stored in the auth cookie.
type TokenGenerator interface {
	GenerateToken(userID uint, sessionID string) (string, error)
}

// RegisterInput is the data submitted on the registration form.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// authUsecase implements registration, login and session checks.
type authUsecase struct {
	users      UserRepository
	sessions   SessionRepository
	tokens     TokenGenerator
	sessionTTL time.Duration
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator, sessionTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
	}
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: at least %d characters required", ErrPasswordTooShort, minPasswordLength)
	}
	return nil
}

// Register creates a user with a hashed password. The profile is provisioned by the repository.
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if username == "" {
		return nil, ErrUsernameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if in.Password != in.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	taken, err := u.users.ExistsByUsername(ctx, username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	taken, err = u.users.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Username: username, Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		logrus.WithError(err).WithField("username", username).Error("failed to create user")
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials, opens a session and returns the signed token.
// The bcrypt comparison always runs so response timing does not reveal unknown usernames.
func (u *authUsecase) Login(ctx context.Context, username, password, userAgent, ip string) (string, error) {
	user, err := u.users.FindByUsername(ctx, strings.TrimSpace(username))

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return "", err
		}
		return "", ErrInvalidCredentials
	}

	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to count sessions: %w", err)
	}
	if count >= maxSessionsPerUser {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return "", fmt.Errorf("failed to evict oldest session: %w", err)
		}
	}

	now := time.Now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ip,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := u.tokens.GenerateToken(user.ID, session.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Logout revokes the session. An unknown session is not an error.
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	if err := u.sessions.Revoke(ctx, sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

// ValidateSession checks that sessionID is live and belongs to userID.
func (u *authUsecase) ValidateSession(ctx context.Context, sessionID string, userID uint) error {
	s, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	switch {
	case s.UserID != userID:
		return ErrSessionMismatch
	case s.IsRevoked():
		return ErrSessionRevoked
	case s.IsExpired():
		return ErrSessionExpired
	}
	return nil
}

// PurgeExpiredSessions deletes expired sessions and returns how many were removed.
func (u *authUsecase) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return u.sessions.DeleteExpired(ctx)
}
