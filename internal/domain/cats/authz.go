package cats

import (
	"strings"

	"cat-api/internal/ports/auth"
)

// Action enumera las mutaciones que pasan por el guard de ownership.
type Action string

const (
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Authorize es la regla de ownership en una sola función, sin efectos:
//   - sin actor            -> ErrUnauthorized
//   - admin                -> permitido siempre (incluye transferir owner)
//   - actor == owner       -> permitido
//   - cualquier otro caso  -> ErrNotFound
//
// Un mismatch de ownership devuelve ErrNotFound y no ErrUnauthorized:
// no revelamos si el registro existe bajo otro dueño.
//
// Para el camino no-admin el service no llama esta función suelta sobre un
// registro ya leído (eso abriría una ventana read-then-write); la compila
// en el predicado atómico del store (UpdateOwned/DeleteOwned filtran por
// id+owner en una sola operación). Acá queda la regla normativa completa,
// que es lo que verifican los tests.
func Authorize(actor *auth.Claims, c Cat, action Action) error {
	if actor == nil || strings.TrimSpace(actor.UserID) == "" {
		return ErrUnauthorized
	}
	if actor.IsAdmin() {
		return nil
	}
	if c.OwnerUserID == actor.UserID {
		return nil
	}
	return ErrNotFound
}
