// Package jwtmw signs and verifies the auth cookie and guards HTML routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of the auth cookie.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// generator signs session tokens with HS256.
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a token generator. expiration should match the session TTL.
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{secret: []byte(secret), expiration: expiration}
}

// GenerateToken creates a signed token binding userID to sessionID.
func (g *generator) GenerateToken(userID uint, sessionID string) (string, error) {
	now := time.Now()
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies tokenStr and returns the user and session it carries.
// Only HMAC signatures are accepted.
func ParseToken(secret []byte, tokenStr string) (uint, string, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", ErrInvalidToken
	}

	var userID uint
	if _, err := fmt.Sscan(claims.Subject, &userID); err != nil || userID == 0 || claims.SessionID == "" {
		return 0, "", ErrInvalidToken
	}
	return userID, claims.SessionID, nil
}
