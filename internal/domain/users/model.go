package users

import (
	"time"

	"cat-api/internal/ports/auth"
)

// User representa una cuenta del sistema. Role siempre nace como "user":
// el cliente no puede fijarlo; escalar a admin es un paso operativo externo.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         auth.Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Public es la proyección redactada de un usuario: sin password ni role.
// Toda respuesta que incluya un usuario (propio o como owner de un gato)
// usa esta forma.
type Public struct {
	ID       string `json:"id"`
	Username string `json:"user_name"`
	Email    string `json:"email"`
}

func (u User) ToPublic() Public {
	return Public{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
