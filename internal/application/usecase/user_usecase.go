package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/torneos-admin-api/internal/application/auth"
	"github.com/jhoicas/torneos-admin-api/internal/application/dto"
	"github.com/jhoicas/torneos-admin-api/internal/application/provisioning"
	"github.com/jhoicas/torneos-admin-api/internal/domain"
	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
	"github.com/jhoicas/torneos-admin-api/internal/domain/repository"
)

// UserUseCase consulta y mantenimiento de perfiles desde el panel de administración.
// Alta y baja van por provisioning.Service.
type UserUseCase struct {
	profiles repository.ProfileRepository
	roles    repository.RoleRepository
	tx       provisioning.TxRunner
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(profiles repository.ProfileRepository, roles repository.RoleRepository, tx provisioning.TxRunner) *UserUseCase {
	return &UserUseCase{profiles: profiles, roles: roles, tx: tx}
}

// List devuelve una página de perfiles; roleID 0 = todos los roles.
func (uc *UserUseCase) List(ctx context.Context, roleID int, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	items, total, err := uc.profiles.List(ctx, roleID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{
		Items: make([]dto.UserResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, p := range items {
		out.Items = append(out.Items, auth.ToUserResponse(p))
	}
	return out, nil
}

// GetByID obtiene un perfil. domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	p, err := uc.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}
	out := auth.ToUserResponse(p)
	return &out, nil
}

// UpdateRole cambia el rol del usuario: profiles.id_rol y user_roles en la misma transacción.
func (uc *UserUseCase) UpdateRole(ctx context.Context, userID string, in dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	if userID == "" || in.RoleID <= 0 {
		return nil, domain.ErrValidation
	}
	if err := uc.checkRole(ctx, in.RoleID); err != nil {
		return nil, err
	}

	var updated *entity.Profile
	err := uc.tx.RunUsers(ctx, func(profiles repository.ProfileRepository, roles repository.RoleAssignmentRepository) error {
		p, err := profiles.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrUserNotFound
		}
		p.RoleID = in.RoleID
		p.UpdatedAt = time.Now().UTC()
		if err := profiles.Upsert(ctx, p); err != nil {
			return err
		}
		if err := roles.Replace(ctx, entity.RoleAssignment{UserID: userID, RoleID: in.RoleID}); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := auth.ToUserResponse(updated)
	return &out, nil
}

func (uc *UserUseCase) checkRole(ctx context.Context, roleID int) error {
	roles, err := uc.roles.List(ctx)
	if err != nil {
		return err
	}
	for _, r := range roles {
		if r.ID == roleID {
			return nil
		}
	}
	return fmt.Errorf("%w: rol %d no existe", domain.ErrValidation, roleID)
}
