package entity

import "time"

// Identity registro del proveedor de identidad (credenciales). Su existencia decide si el usuario puede iniciar sesión.
type Identity struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Profile fila de profiles, con la misma clave que la identidad.
// Un perfil no debe sobrevivir a su identidad (solo se garantiza con borrados best-effort).
type Profile struct {
	ID        string
	FullName  string
	Email     string // duplicado desde la identidad
	RoleID    int    // id_rol
	RoleName  string // solo lectura (JOIN con roles)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleAssignment fila de user_roles. Los flujos mantienen como máximo una por usuario.
type RoleAssignment struct {
	UserID string
	RoleID int
}
