package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestProfile_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		phone   *string
		wantErr error
	}{
		{"nil phone is allowed", nil, nil},
		{"empty phone is allowed", strPtr(""), nil},
		{"eleven digits", strPtr("13800138000"), nil},
		{"ten digits", strPtr("1380013800"), ErrInvalidPhone},
		{"twelve digits", strPtr("138001380001"), ErrInvalidPhone},
		{"letters", strPtr("1380013800a"), ErrInvalidPhone},
		{"full-width digits", strPtr("１３８００１３８０００"), ErrInvalidPhone},
		{"leading plus", strPtr("+8613800138"), ErrInvalidPhone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := &Profile{Phone: tt.phone}
			assert.Equal(t, tt.wantErr, p.Validate())
		})
	}
}

func TestSession_IsValid(t *testing.T) {
	t.Parallel()

	now := time.Now()
	revoked := now.Add(-time.Minute)

	active := &Session{ExpiresAt: now.Add(time.Hour)}
	expired := &Session{ExpiresAt: now.Add(-time.Hour)}
	revokedSession := &Session{ExpiresAt: now.Add(time.Hour), RevokedAt: &revoked}

	assert.True(t, active.IsValid())
	assert.False(t, expired.IsValid())
	assert.True(t, expired.IsExpired())
	assert.False(t, revokedSession.IsValid())
	assert.True(t, revokedSession.IsRevoked())
}
