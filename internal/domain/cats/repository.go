package cats

import (
	"context"
	"time"
)

// Repository es el contrato del store de gatos.
//
// UpdateOwned/DeleteOwned son la versión atómica del lookup filtrado por
// (id, owner): el backend tiene que resolver "encontrar y mutar" en una sola
// operación condicional (un UPDATE ... WHERE id AND owner, o el lookup+write
// bajo el mismo lock). Separarlo en read-then-write permitiría que un delete
// concurrente se cuele entre el check y la escritura.
type Repository interface {
	Create(ctx context.Context, c Cat) error
	GetByID(ctx context.Context, id string) (Cat, error)
	ListAll(ctx context.Context) ([]Cat, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Cat, error)

	// FindInBox devuelve los gatos cuya ubicación cae dentro del rectángulo
	// cerrado definido por bottomLeft/topRight (ver InBox). Orden no garantizado.
	FindInBox(ctx context.Context, bottomLeft, topRight GeoPoint) ([]Cat, error)

	// UpdateOwned aplica el patch solo si el registro existe con ese owner;
	// si no, ErrNotFound. Devuelve el registro ya actualizado.
	UpdateOwned(ctx context.Context, id, ownerUserID string, in UpdateInput, now time.Time) (Cat, error)

	// DeleteOwned borra solo si el registro existe con ese owner; si no,
	// ErrNotFound. Devuelve el estado previo del registro borrado.
	DeleteOwned(ctx context.Context, id, ownerUserID string) (Cat, error)

	// UpdateByID es el camino admin: lookup por id solamente, y es el único
	// camino por el que puede cambiar el owner.
	UpdateByID(ctx context.Context, id string, in AdminUpdateInput, now time.Time) (Cat, error)

	// DeleteByID es el camino admin. Devuelve el estado previo.
	DeleteByID(ctx context.Context, id string) (Cat, error)
}

// UpdateInput es el patch del dueño. Punteros: nil = no tocar.
// No hay campo Owner ni Location a propósito: esos son inmutables por este
// camino y el tipo lo garantiza estructuralmente (nada que filtrar en runtime).
type UpdateInput struct {
	Name      *string
	Weight    *float64
	BirthDate *time.Time
}

// AdminUpdateInput es el patch admin: igual que UpdateInput pero puede
// transferir el owner.
type AdminUpdateInput struct {
	Name      *string
	Weight    *float64
	BirthDate *time.Time
	Owner     *string
}
