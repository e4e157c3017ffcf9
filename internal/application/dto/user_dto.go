package dto

import "time"

// CreateUserRequest alta de usuario por un administrador (todos los campos requeridos).
type CreateUserRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	RoleID   int    `json:"role_id" validate:"required"`
}

// CreateUserResponse salida de CreateUser.
type CreateUserResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"user_id"`
}

// DeleteUserRequest baja de un usuario.
type DeleteUserRequest struct {
	UserID string `json:"user_id" query:"user_id" validate:"required"`
}

// BulkDeleteRequest baja de todos los usuarios que tengan alguno de los roles.
type BulkDeleteRequest struct {
	RoleIDs []int `json:"role_ids" validate:"required,min=1"`
}

// BulkDeleteResponse resultado del borrado masivo. Errors solo aparece si algún usuario falló.
// Error y Code se rellenan cuando la fase relacional falla después de borrar identidades (HTTP 500).
type BulkDeleteResponse struct {
	Success bool     `json:"success"`
	Deleted int      `json:"deleted"`
	Total   int      `json:"total"`
	Errors  []string `json:"errors,omitempty"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
	Code    string   `json:"code,omitempty"`
}

// RegisterRequest registro público (autoservicio).
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SuccessResponse confirmación sin más datos.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// UpdateRoleRequest reemplazo del rol de un usuario.
type UpdateRoleRequest struct {
	RoleID int `json:"role_id" validate:"required"`
}

// UserResponse perfil visible en el panel.
type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	RoleID    int       `json:"id_rol"`
	RoleName  string    `json:"rol,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// RoleResponse entrada del catálogo de roles.
type RoleResponse struct {
	ID   int    `json:"id_rol"`
	Name string `json:"nombre"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de acceso emitido por el proveedor de identidad.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}
