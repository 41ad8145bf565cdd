package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cat-api/internal/ports/auth"
)

func mintToken(t *testing.T, secret, userID, role string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("test-secret")

	got, err := v.Verify(context.Background(), mintToken(t, "test-secret", "u1", "admin"))
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got.UserID != "u1" || got.Role != auth.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", got)
	}
}

func TestVerifier_UnknownRoleFallsBackToUser(t *testing.T) {
	v := NewVerifier("test-secret")

	got, err := v.Verify(context.Background(), mintToken(t, "test-secret", "u1", "superadmin"))
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got.Role != auth.RoleUser {
		t.Fatalf("expected fallback to user role, got %s", got.Role)
	}
}

func TestVerifier_RejectsWrongSecret(t *testing.T) {
	v := NewVerifier("test-secret")

	if _, err := v.Verify(context.Background(), mintToken(t, "other-secret", "u1", "user")); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestVerifier_RejectsEmptyAndMissingUser(t *testing.T) {
	v := NewVerifier("test-secret")

	if _, err := v.Verify(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty token")
	}
	if _, err := v.Verify(context.Background(), mintToken(t, "test-secret", "", "user")); err == nil {
		t.Fatalf("expected error for token without user id")
	}
}
