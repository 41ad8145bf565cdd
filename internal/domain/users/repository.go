package users

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	ListAll(ctx context.Context) ([]User, error)

	// UpdateByID aplica el patch si el usuario existe; si no, ErrNotFound.
	UpdateByID(ctx context.Context, id string, in UpdateInput, now time.Time) (User, error)

	// DeleteByID borra permanente y devuelve el estado previo.
	DeleteByID(ctx context.Context, id string) (User, error)
}

// UpdateInput es el patch de perfil. Punteros: nil = no tocar.
// Sin campo Role: nunca es editable por este camino.
type UpdateInput struct {
	Username     *string
	Email        *string
	PasswordHash *string
}
