package provisioning

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/torneos-admin-api/internal/application/dto"
	"github.com/jhoicas/torneos-admin-api/internal/domain"
	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
)

// CreateUser provisiona identidad, perfil y asignación de rol.
//
// Si el email ya está registrado reutiliza la identidad existente y hace upsert de las filas,
// de modo que repetir la llamada no duplica nada. Solo una identidad creada en esta misma
// llamada se compensa si falla un paso posterior; una identidad reutilizada nunca se borra.
func (s *Service) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	in.FullName = normalizeName(in.FullName)
	in.Email = normalizeEmail(in.Email)
	if in.FullName == "" || in.Email == "" || in.Password == "" || in.RoleID == 0 {
		observe(OpCreateUser, resultValidation)
		return nil, fmt.Errorf("%w: full_name, email, password y role_id son requeridos", domain.ErrValidation)
	}
	if in.RoleID < 0 {
		observe(OpCreateUser, resultValidation)
		return nil, fmt.Errorf("%w: role_id %d inválido", domain.ErrValidation, in.RoleID)
	}

	var (
		identity *entity.Identity
		created  bool
	)
	saga := s.newSaga(OpCreateUser, in.Email)
	err := saga.Run(ctx,
		Step{
			Name:   StepCreateIdentity,
			Policy: FailFast,
			Do: func(ctx context.Context) error {
				id, err := s.identity.CreateUser(ctx, in.Email, in.Password)
				switch {
				case errors.Is(err, domain.ErrIdentityExists):
					existing, lerr := s.identity.GetUserByEmail(ctx, in.Email)
					if lerr != nil {
						return fmt.Errorf("buscar identidad existente: %w", lerr)
					}
					if existing == nil {
						return errors.New("el proveedor reporta el email registrado pero no lo encuentra")
					}
					identity = existing
					return nil
				case err != nil:
					return err
				case id == nil || id.ID == "":
					return errors.New("el proveedor no devolvió la identidad creada")
				}
				identity, created = id, true
				return nil
			},
			Compensate: func(ctx context.Context) error {
				if !created {
					return nil
				}
				return s.identity.DeleteUser(ctx, identity.ID)
			},
		},
		Step{
			Name:   StepUpsertProfile,
			Policy: FailFast,
			Do: func(ctx context.Context) error {
				return s.profiles.Upsert(ctx, &entity.Profile{
					ID:       identity.ID,
					FullName: in.FullName,
					Email:    in.Email,
					RoleID:   in.RoleID,
				})
			},
			Compensate: func(ctx context.Context) error {
				if !created {
					return nil
				}
				return s.profiles.Delete(ctx, identity.ID)
			},
		},
		Step{
			Name:   StepAssignRole,
			Policy: FailFast,
			Do: func(ctx context.Context) error {
				return s.roles.Replace(ctx, entity.RoleAssignment{UserID: identity.ID, RoleID: in.RoleID})
			},
		},
	)
	if err != nil {
		observe(OpCreateUser, resultError)
		return nil, fmt.Errorf("crear usuario: %w", err)
	}

	observe(OpCreateUser, resultOK)
	s.log.Info().Str("user_id", identity.ID).Int("id_rol", in.RoleID).Bool("reused", !created).Msg("usuario aprovisionado")
	s.publish(ctx, UserEvent{Type: EventUserCreated, UserID: identity.ID, Email: in.Email, RoleID: in.RoleID})
	return &dto.CreateUserResponse{Success: true, UserID: identity.ID}, nil
}
