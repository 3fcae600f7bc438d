package usecase

import (
	"context"
	"io"

	"lifetrail/internal/feature/accounts/domain/entity"
)

// mockUserRepository is a function-field mock of UserRepository.
type mockUserRepository struct {
	CreateFunc           func(ctx context.Context, user *entity.User) error
	UpdateFunc           func(ctx context.Context, user *entity.User) error
	DeleteFunc           func(ctx context.Context, id uint) error
	FindByUsernameFunc   func(ctx context.Context, username string) (*entity.User, error)
	FindByIDFunc         func(ctx context.Context, id uint) (*entity.User, error)
	ExistsByUsernameFunc func(ctx context.Context, username string, excludeID uint) (bool, error)
	ExistsByEmailFunc    func(ctx context.Context, email string, excludeID uint) (bool, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string, excludeID uint) (bool, error) {
	if m.ExistsByUsernameFunc != nil {
		return m.ExistsByUsernameFunc(ctx, username, excludeID)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email, excludeID)
	}
	return false, nil
}

// mockSessionRepository is a function-field mock of SessionRepository.
type mockSessionRepository struct {
	CreateFunc               func(ctx context.Context, s *entity.Session) error
	FindByIDFunc             func(ctx context.Context, id string) (*entity.Session, error)
	RevokeFunc               func(ctx context.Context, id string) error
	RevokeAllByUserIDFunc    func(ctx context.Context, userID uint) error
	DeleteExpiredFunc        func(ctx context.Context) (int64, error)
	CountByUserIDFunc        func(ctx context.Context, userID uint) (int64, error)
	DeleteOldestByUserIDFunc func(ctx context.Context, userID uint) error
}

func (m *mockSessionRepository) Create(ctx context.Context, s *entity.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrSessionNotFound
}

func (m *mockSessionRepository) Revoke(ctx context.Context, id string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, id)
	}
	return nil
}

func (m *mockSessionRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	if m.RevokeAllByUserIDFunc != nil {
		return m.RevokeAllByUserIDFunc(ctx, userID)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	return 0, nil
}

func (m *mockSessionRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	if m.CountByUserIDFunc != nil {
		return m.CountByUserIDFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockSessionRepository) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	if m.DeleteOldestByUserIDFunc != nil {
		return m.DeleteOldestByUserIDFunc(ctx, userID)
	}
	return nil
}

// mockTokenGenerator is a function-field mock of TokenGenerator.
type mockTokenGenerator struct {
	GenerateTokenFunc func(userID uint, sessionID string) (string, error)
}

func (m *mockTokenGenerator) GenerateToken(userID uint, sessionID string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, sessionID)
	}
	return "mock-token", nil
}

// mockMediaStore records stored and removed keys.
type mockMediaStore struct {
	PutFunc func(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	removed []string
	stored  []string
}

func (m *mockMediaStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if m.PutFunc != nil {
		if err := m.PutFunc(ctx, key, r, size, contentType); err != nil {
			return err
		}
	}
	m.stored = append(m.stored, key)
	return nil
}

func (m *mockMediaStore) Remove(ctx context.Context, key string) error {
	m.removed = append(m.removed, key)
	return nil
}
