// Package jwtauth implementa auth.AuthVerifier contra tokens HS256 emitidos
// por el autenticador externo. La emisión no vive acá: este servicio solo
// comparte el secret y valida lo que llega.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"cat-api/internal/ports/auth"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrInvalidToken = errors.New("invalid token")
)

// claims es el payload esperado del token.
type claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("parsing token: %w", err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}
	if strings.TrimSpace(c.UserID) == "" {
		return auth.Claims{}, errors.New("token missing user id")
	}

	return auth.Claims{
		UserID: c.UserID,
		Role:   auth.ParseRole(c.Role),
	}, nil
}
