package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifetrail/internal/feature/accounts/domain/entity"
	"lifetrail/internal/feature/accounts/usecase"
	"lifetrail/internal/platform/flash"
	jwtmw "lifetrail/internal/platform/jwt"
	"lifetrail/internal/web/webtest"
)

func setupProfileRouter(t *testing.T, uc ProfileUsecase) (*gin.Engine, *flash.Store) {
	t.Helper()

	store := webtest.NewFlashStore()
	h := NewProfileHandler(uc, store, jwtmw.CookieOptions{MaxAge: 3600})
	r := webtest.Engine(t, 7)
	r.GET("/profile", h.Show)
	r.POST("/profile", h.Update)
	r.POST("/profile/delete", h.Delete)
	return r, store
}

func TestProfileHandler_Show(t *testing.T) {
	phone := "13800138000"
	uc := &mockProfileUsecase{
		GetProfileFunc: func(ctx context.Context, userID uint) (*entity.User, error) {
			assert.Equal(t, uint(7), userID)
			return &entity.User{
				ID:        7,
				Username:  "alice",
				Email:     "alice@example.com",
				CreatedAt: time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC),
				Profile:   &entity.Profile{UserID: 7, Phone: &phone, Bio: "hello there", Avatar: "avatars/a.png"},
			}, nil
		},
	}
	r, _ := setupProfileRouter(t, uc)

	w := webtest.Serve(r, httptest.NewRequest(http.MethodGet, "/profile", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `value="13800138000"`)
	assert.Contains(t, body, "hello there")
	assert.Contains(t, body, `src="/media/avatars/a.png"`)
	assert.Contains(t, body, "Member since 2024-01-02")
}

func TestProfileHandler_ShowMissingUser(t *testing.T) {
	uc := &mockProfileUsecase{
		GetProfileFunc: func(ctx context.Context, userID uint) (*entity.User, error) {
			return nil, usecase.ErrUserNotFound
		},
	}
	r, _ := setupProfileRouter(t, uc)

	w := webtest.Serve(r, httptest.NewRequest(http.MethodGet, "/profile", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileHandler_Update(t *testing.T) {
	valid := webtest.Values("username", "alice", "email", "alice@example.com", "phone", "13800138000", "bio", "hi")

	t.Run("passes fields and avatar", func(t *testing.T) {
		uc := &mockProfileUsecase{
			UpdateProfileFunc: func(ctx context.Context, userID uint, in usecase.ProfileInput) (*entity.User, error) {
				assert.Equal(t, uint(7), userID)
				assert.Equal(t, "alice", in.Username)
				require.NotNil(t, in.Phone)
				assert.Equal(t, "13800138000", *in.Phone)
				require.NotNil(t, in.Bio)
				assert.Equal(t, "hi", *in.Bio)
				require.NotNil(t, in.Avatar)
				b, _ := io.ReadAll(in.Avatar.Content)
				assert.Equal(t, "img", string(b))
				return &entity.User{ID: userID}, nil
			},
		}
		r, store := setupProfileRouter(t, uc)

		req := webtest.PostMultipart(t, "/profile", valid, webtest.FormFile{Field: "avatar", Filename: "me.png", Content: []byte("img")})
		w := webtest.Serve(r, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/profile", w.Header().Get("Location"))
		assert.Equal(t, flash.Message{Level: flash.Success, Text: "Profile updated."}, webtest.FirstFlash(store, w))
	})

	t.Run("blank phone clears it", func(t *testing.T) {
		uc := &mockProfileUsecase{
			UpdateProfileFunc: func(ctx context.Context, userID uint, in usecase.ProfileInput) (*entity.User, error) {
				require.NotNil(t, in.Phone)
				assert.Empty(t, *in.Phone)
				assert.Nil(t, in.Avatar)
				return &entity.User{ID: userID}, nil
			},
		}
		r, _ := setupProfileRouter(t, uc)

		w := webtest.Serve(r, webtest.PostMultipart(t, "/profile", webtest.Values("username", "alice", "email", "alice@example.com", "phone", "")))

		assert.Equal(t, http.StatusFound, w.Code)
	})

	tests := []struct {
		name     string
		form     []string
		err      error
		wantText string
	}{
		{"username taken", nil, usecase.ErrUsernameTaken, "That username is already taken."},
		{"email taken", nil, usecase.ErrEmailTaken, "That email is already registered."},
		{"avatar not an image", nil, usecase.ErrInvalidAvatar, "The avatar must be a PNG, JPEG, GIF or WebP image."},
		{"store failure", nil, errors.New("db down"), "Could not update profile. Please try again."},
		{
			"phone with ten digits",
			[]string{"username", "alice", "email", "alice@example.com", "phone", "1380013800"},
			nil,
			"Could not update profile: Phone must be exactly 11 digits.",
		},
		{
			"phone with letters",
			[]string{"username", "alice", "email", "alice@example.com", "phone", "1380013800a"},
			nil,
			"Could not update profile: Phone must be exactly 11 digits.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockProfileUsecase{
				UpdateProfileFunc: func(ctx context.Context, userID uint, in usecase.ProfileInput) (*entity.User, error) {
					if tt.err == nil {
						t.Fatal("usecase must not be called for invalid forms")
					}
					return nil, tt.err
				},
			}
			r, store := setupProfileRouter(t, uc)

			form := valid
			if tt.form != nil {
				form = webtest.Values(tt.form...)
			}
			w := webtest.Serve(r, webtest.PostMultipart(t, "/profile", form))

			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, flash.Message{Level: flash.Error, Text: tt.wantText}, webtest.FirstFlash(store, w))
		})
	}
}

func TestProfileHandler_Delete(t *testing.T) {
	t.Run("deletes and signs out", func(t *testing.T) {
		var deleted uint
		uc := &mockProfileUsecase{
			DeleteAccountFunc: func(ctx context.Context, userID uint) error {
				deleted = userID
				return nil
			},
		}
		r, store := setupProfileRouter(t, uc)

		w := webtest.Serve(r, httptest.NewRequest(http.MethodPost, "/profile/delete", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.Equal(t, uint(7), deleted)
		ck := authCookie(w)
		require.NotNil(t, ck)
		assert.True(t, ck.MaxAge < 0)
		assert.Equal(t, flash.Info, webtest.FirstFlash(store, w).Level)
	})

	t.Run("failure keeps the user signed in", func(t *testing.T) {
		uc := &mockProfileUsecase{
			DeleteAccountFunc: func(ctx context.Context, userID uint) error { return errors.New("locked") },
		}
		r, store := setupProfileRouter(t, uc)

		w := webtest.Serve(r, httptest.NewRequest(http.MethodPost, "/profile/delete", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/profile", w.Header().Get("Location"))
		assert.Nil(t, authCookie(w))
		assert.Equal(t, flash.Error, webtest.FirstFlash(store, w).Level)
	})
}
