package repository

import (
	"context"

	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
)

// RoleRepository acceso de solo lectura a la tabla roles (más la siembra inicial).
type RoleRepository interface {
	List(ctx context.Context) ([]entity.Role, error)
	Seed(ctx context.Context, roles []entity.Role) error
}
