package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
// La emisión/verificación real vive fuera del core (adapter jwtauth);
// para el core el actor llega ya validado vía middleware.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
