package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
	"github.com/jhoicas/torneos-admin-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo acceso a la tabla roles.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de roles.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// List devuelve el catálogo de roles ordenado por id.
func (r *RoleRepo) List(ctx context.Context) ([]entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT id_rol, nombre FROM roles ORDER BY id_rol`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var out []entity.Role
	for rows.Next() {
		var ro entity.Role
		if err := rows.Scan(&ro.ID, &ro.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, ro)
	}
	return out, rows.Err()
}

// Seed inserta o renombra los roles fijos.
func (r *RoleRepo) Seed(ctx context.Context, roles []entity.Role) error {
	query := `
		INSERT INTO roles (id_rol, nombre) VALUES ($1, $2)
		ON CONFLICT (id_rol) DO UPDATE SET nombre = EXCLUDED.nombre`
	for _, ro := range roles {
		if _, err := r.q.Exec(ctx, query, ro.ID, ro.Name); err != nil {
			return fmt.Errorf("seed role %d: %w", ro.ID, err)
		}
	}
	return nil
}
