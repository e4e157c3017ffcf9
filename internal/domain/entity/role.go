package entity

// Roles fijos (tabla roles, solo lectura).
const (
	RoleAdministrador = 1
	RoleLiderEquipo   = 2
	RoleArbitro       = 3
	RoleAsistente     = 4
	RoleEspectador    = 5

	// RolePublicRegistration rol que recibe quien se registra por su cuenta.
	RolePublicRegistration = RoleEspectador
)

// Role entrada de la tabla de búsqueda roles.
type Role struct {
	ID   int
	Name string
}

// DefaultRoles catálogo que siembra cmd/seed.
func DefaultRoles() []Role {
	return []Role{
		{ID: RoleAdministrador, Name: "administrador"},
		{ID: RoleLiderEquipo, Name: "lider_equipo"},
		{ID: RoleArbitro, Name: "arbitro"},
		{ID: RoleAsistente, Name: "asistente"},
		{ID: RoleEspectador, Name: "espectador"},
	}
}
