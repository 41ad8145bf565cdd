package cats

import "time"

// Cat representa un registro geolocalizado con dueño.
// OwnerUserID y Location se fijan al crear desde contexto confiable
// (actor autenticado + coordenadas derivadas); nunca vienen del cliente.
// El único camino para cambiar OwnerUserID después es AdminUpdate.
type Cat struct {
	ID          string
	OwnerUserID string

	Name     string
	Weight   float64
	Filename string // referencia opaca al archivo subido (colaborador externo)

	BirthDate time.Time
	Location  GeoPoint

	CreatedAt time.Time
	UpdatedAt time.Time
}
