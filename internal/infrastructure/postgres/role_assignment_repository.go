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

var _ repository.RoleAssignmentRepository = (*RoleAssignmentRepo)(nil)

// RoleAssignmentRepo implementación de RoleAssignmentRepository sobre user_roles.
// La tabla no tiene UNIQUE(user_id): "una por usuario" lo garantiza Replace.
type RoleAssignmentRepo struct {
	q Querier
}

// NewRoleAssignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoleAssignmentRepository(q Querier) *RoleAssignmentRepo {
	return &RoleAssignmentRepo{q: q}
}

// Replace borra las asignaciones del usuario e inserta la nueva en una sola sentencia.
func (r *RoleAssignmentRepo) Replace(ctx context.Context, a entity.RoleAssignment) error {
	query := `
		WITH removed AS (DELETE FROM user_roles WHERE user_id = $1)
		INSERT INTO user_roles (user_id, id_rol, created_at) VALUES ($1, $2, now())`
	if _, err := r.q.Exec(ctx, query, a.UserID, a.RoleID); err != nil {
		return wrapRoleErr("replace user role", a.RoleID, err)
	}
	return nil
}

// Insert agrega una asignación sin tocar las existentes.
func (r *RoleAssignmentRepo) Insert(ctx context.Context, a entity.RoleAssignment) error {
	query := `INSERT INTO user_roles (user_id, id_rol, created_at) VALUES ($1, $2, now())`
	if _, err := r.q.Exec(ctx, query, a.UserID, a.RoleID); err != nil {
		return wrapRoleErr("insert user role", a.RoleID, err)
	}
	return nil
}

// DeleteByUser elimina todas las asignaciones de un usuario.
func (r *RoleAssignmentRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete user roles: %w", err)
	}
	return nil
}

// DeleteByUsers elimina las asignaciones de varios usuarios.
func (r *RoleAssignmentRepo) DeleteByUsers(ctx context.Context, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = ANY($1::uuid[])`, userIDs); err != nil {
		return fmt.Errorf("delete user roles (batch): %w", err)
	}
	return nil
}

// ListByRoles devuelve las asignaciones cuyo rol está en roleIDs, en orden de creación.
func (r *RoleAssignmentRepo) ListByRoles(ctx context.Context, roleIDs []int) ([]entity.RoleAssignment, error) {
	query := `
		SELECT user_id, id_rol FROM user_roles
		WHERE id_rol = ANY($1::int[])
		ORDER BY created_at, user_id`
	rows, err := r.q.Query(ctx, query, roleIDs)
	if err != nil {
		return nil, fmt.Errorf("list user roles: %w", err)
	}
	defer rows.Close()
	var out []entity.RoleAssignment
	for rows.Next() {
		var a entity.RoleAssignment
		if err := rows.Scan(&a.UserID, &a.RoleID); err != nil {
			return nil, fmt.Errorf("scan user role: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// RoleOf devuelve el rol más reciente del usuario; 0 si no tiene.
func (r *RoleAssignmentRepo) RoleOf(ctx context.Context, userID string) (int, error) {
	var roleID int
	err := r.q.QueryRow(ctx,
		`SELECT id_rol FROM user_roles WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`, userID,
	).Scan(&roleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("role of user: %w", err)
	}
	return roleID, nil
}

func wrapRoleErr(op string, roleID int, err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%s: rol %d: %w", op, roleID, domain.ErrUnknownRole)
	}
	return fmt.Errorf("%s: %w", op, err)
}
