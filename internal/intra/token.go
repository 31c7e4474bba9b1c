package intra

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry reports a platform token without an exp claim.
var ErrNoExpiry = errors.New("intra: token has no expiry claim")

// TokenExpiry reads the expiry of a platform JWT without verifying its
// signature. The signing key belongs to the platform; locally the token is
// only inspected to decide whether a stored session is still usable.
func TokenExpiry(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// TokenUsable reports whether the token still has at least margin of
// lifetime left at now.
func TokenUsable(token string, now time.Time, margin time.Duration) bool {
	expiry, err := TokenExpiry(token)
	if err != nil {
		return false
	}
	return now.Add(margin).Before(expiry)
}
