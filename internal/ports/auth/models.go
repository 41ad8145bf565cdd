package auth

// Role define los roles soportados del sistema.
// Enum cerrado a propósito: el guard de ownership hace switch exhaustivo
// sobre esto en vez de comparar strings sueltos.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole normaliza un rol externo (token, header de debug).
// Cualquier valor desconocido cae a RoleUser: nunca escalamos por accidente.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// Claims representa la identidad extraída del token por el autenticador externo.
type Claims struct {
	UserID string
	Role   Role
}

// IsAdmin reporta si el actor tiene rol admin.
func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
