package intra

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(expiry),
	})
	s, err := tok.SignedString([]byte("platform-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestTokenExpiry(t *testing.T) {
	expiry := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	got, err := TokenExpiry(signedToken(t, expiry))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(expiry) {
		t.Fatalf("expected %v, got %v", expiry, got)
	}
}

func TestTokenExpiryGarbage(t *testing.T) {
	if _, err := TokenExpiry("not-a-token"); err == nil {
		t.Fatalf("expected error for garbage token")
	}
}

func TestTokenUsable(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	token := signedToken(t, now.Add(2*time.Hour))

	if !TokenUsable(token, now, time.Hour) {
		t.Fatalf("expected token usable with an hour of margin")
	}
	if TokenUsable(token, now, 3*time.Hour) {
		t.Fatalf("expected token unusable with three hours of margin")
	}
	if TokenUsable("garbage", now, 0) {
		t.Fatalf("expected garbage token unusable")
	}
}
