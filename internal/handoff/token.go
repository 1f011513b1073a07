package handoff

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set of a handoff token: the subject identifier
// (the euid, never the plaintext id) and an expiry.
type TokenClaims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies signed, time-boxed handoff tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a Tokens service signing with the given secret. ttl is
// the lifetime of issued tokens.
func NewTokens(secret []byte, ttl time.Duration) *Tokens {
	return &Tokens{secret: secret, ttl: ttl}
}

// Issue creates a signed HS256 token for uid, expiring after the configured ttl.
func (t *Tokens) Issue(uid string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign handoff token: %w", err)
	}
	return signed, nil
}

// Verify reports whether the token is validly signed, unexpired, and bound
// to expectedUID. Parse failures of any kind are a plain false, never an
// error or panic.
func (t *Tokens) Verify(tokenString, expectedUID string) bool {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return false
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return false
	}

	return claims.UID == expectedUID
}
