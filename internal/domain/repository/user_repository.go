package repository

import (
	"context"

	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
)

// ProfileRepository define el puerto de persistencia para profiles (DIP).
type ProfileRepository interface {
	// Upsert inserta o reemplaza la fila completa del perfil.
	Upsert(ctx context.Context, p *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	List(ctx context.Context, roleID, limit, offset int) ([]*entity.Profile, int, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
}

// RoleAssignmentRepository define el puerto de persistencia para user_roles.
type RoleAssignmentRepository interface {
	// Replace borra las asignaciones del usuario e inserta la nueva (una por usuario).
	Replace(ctx context.Context, a entity.RoleAssignment) error
	Insert(ctx context.Context, a entity.RoleAssignment) error
	DeleteByUser(ctx context.Context, userID string) error
	DeleteByUsers(ctx context.Context, userIDs []string) error
	ListByRoles(ctx context.Context, roleIDs []int) ([]entity.RoleAssignment, error)
	// RoleOf devuelve el rol asignado al usuario; 0 si no tiene.
	RoleOf(ctx context.Context, userID string) (int, error)
}
