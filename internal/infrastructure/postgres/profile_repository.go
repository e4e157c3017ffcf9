package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/torneos-admin-api/internal/domain"
	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
	"github.com/jhoicas/torneos-admin-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementación de ProfileRepository sobre PostgreSQL (usable con pool o tx).
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador de perfiles. Pasar pool o tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// Upsert inserta o reemplaza la fila completa del perfil.
func (r *ProfileRepo) Upsert(ctx context.Context, p *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, full_name, email, id_rol, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (id) DO UPDATE
		SET full_name = EXCLUDED.full_name, email = EXCLUDED.email, id_rol = EXCLUDED.id_rol, updated_at = now()`
	_, err := r.q.Exec(ctx, query, p.ID, p.FullName, p.Email, p.RoleID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("upsert profile: rol %d: %w", p.RoleID, domain.ErrUnknownRole)
		}
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil con el nombre de su rol. nil, nil si no existe.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	query := `
		SELECT p.id, p.full_name, p.email, p.id_rol, COALESCE(ro.nombre, ''), p.created_at, p.updated_at
		FROM profiles p LEFT JOIN roles ro ON ro.id_rol = p.id_rol
		WHERE p.id = $1`
	var p entity.Profile
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.FullName, &p.Email, &p.RoleID, &p.RoleName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// List lista perfiles, opcionalmente filtrados por rol (roleID 0 = todos). Devuelve también el total.
func (r *ProfileRepo) List(ctx context.Context, roleID, limit, offset int) ([]*entity.Profile, int, error) {
	query := `
		SELECT p.id, p.full_name, p.email, p.id_rol, COALESCE(ro.nombre, ''), p.created_at, p.updated_at,
		       count(*) OVER ()
		FROM profiles p LEFT JOIN roles ro ON ro.id_rol = p.id_rol
		WHERE ($1 = 0 OR p.id_rol = $1)
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, roleID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Profile
		total int
	)
	for rows.Next() {
		var p entity.Profile
		if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.RoleID, &p.RoleName, &p.CreatedAt, &p.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// Delete elimina un perfil. No es error si no existe.
func (r *ProfileRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// DeleteMany elimina los perfiles indicados en una sola sentencia.
func (r *ProfileRepo) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM profiles WHERE id = ANY($1::uuid[])`, ids); err != nil {
		return fmt.Errorf("delete profiles: %w", err)
	}
	return nil
}
