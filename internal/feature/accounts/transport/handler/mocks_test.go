package handler

import (
	"context"

	"lifetrail/internal/feature/accounts/domain/entity"
	"lifetrail/internal/feature/accounts/usecase"
)

type mockAuthUsecase struct {
	RegisterFunc func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	LoginFunc    func(ctx context.Context, username, password, userAgent, ip string) (string, error)
	LogoutFunc   func(ctx context.Context, sessionID string) error
}

func (m *mockAuthUsecase) Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return &entity.User{ID: 1, Username: in.Username, Email: in.Email}, nil
}

func (m *mockAuthUsecase) Login(ctx context.Context, username, password, userAgent, ip string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password, userAgent, ip)
	}
	return "mock-token", nil
}

func (m *mockAuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

type mockProfileUsecase struct {
	GetProfileFunc    func(ctx context.Context, userID uint) (*entity.User, error)
	UpdateProfileFunc func(ctx context.Context, userID uint, in usecase.ProfileInput) (*entity.User, error)
	DeleteAccountFunc func(ctx context.Context, userID uint) error
}

func (m *mockProfileUsecase) GetProfile(ctx context.Context, userID uint) (*entity.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return &entity.User{ID: userID, Username: "alice", Profile: &entity.Profile{UserID: userID}}, nil
}

func (m *mockProfileUsecase) UpdateProfile(ctx context.Context, userID uint, in usecase.ProfileInput) (*entity.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, in)
	}
	return &entity.User{ID: userID}, nil
}

func (m *mockProfileUsecase) DeleteAccount(ctx context.Context, userID uint) error {
	if m.DeleteAccountFunc != nil {
		return m.DeleteAccountFunc(ctx, userID)
	}
	return nil
}

// allowN lets the first n attempts through.
type allowN struct {
	n      int
	resets []string
}

func (a *allowN) Allow(key string) bool {
	a.n--
	return a.n >= 0
}

func (a *allowN) Reset(key string) { a.resets = append(a.resets, key) }
