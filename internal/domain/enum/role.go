package enum

// Operator roles. Admins may read any operator's register sessions.
const (
	RoleOperador = "operador"
	RoleAdmin    = "admin"
)

// IsValidRole reports whether r is a known role name
func IsValidRole(r string) bool {
	return r == RoleOperador || r == RoleAdmin
}
