package provisioning

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/jhoicas/torneos-admin-api/internal/application/dto"
	"github.com/jhoicas/torneos-admin-api/internal/domain"
	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
)

// RegisterPlan pasos del registro público para una identidad aún no creada.
// El primer paso rellena *identity para los siguientes.
func (s *Service) RegisterPlan(fullName, email, password string, identity *entity.Identity) []Step {
	roleID := s.cfg.PublicRoleID
	return []Step{
		{
			Name:   StepCreateIdentity,
			Policy: FailFast,
			Do: func(ctx context.Context) error {
				id, err := s.identity.CreateUser(ctx, email, password)
				if err != nil {
					return err
				}
				if id == nil || id.ID == "" {
					return errors.New("el proveedor no devolvió la identidad creada")
				}
				*identity = *id
				return nil
			},
			Compensate: func(ctx context.Context) error { return s.identity.DeleteUser(ctx, identity.ID) },
		},
		{
			Name:   StepUpsertProfile,
			Policy: FailFast,
			Do: func(ctx context.Context) error {
				return s.profiles.Upsert(ctx, &entity.Profile{
					ID:       identity.ID,
					FullName: fullName,
					Email:    email,
					RoleID:   roleID,
				})
			},
			Compensate: func(ctx context.Context) error { return s.profiles.Delete(ctx, identity.ID) },
		},
		{
			// Una identidad nueva no debería tener filas; un re-registro de una cuenta
			// borrada a medias sí puede.
			Name:   StepClearRoles,
			Policy: LogAndContinue,
			Do:     func(ctx context.Context) error { return s.roles.DeleteByUser(ctx, identity.ID) },
		},
		{
			Name:   StepInsertRole,
			Policy: FailFast,
			Do: func(ctx context.Context) error {
				return s.roles.Insert(ctx, entity.RoleAssignment{UserID: identity.ID, RoleID: roleID})
			},
		},
	}
}

// PublicRegister registro autoservicio con rol fijo. Cualquier fallo tras crear la identidad
// deshace lo creado en esta llamada.
func (s *Service) PublicRegister(ctx context.Context, in dto.RegisterRequest) (*dto.SuccessResponse, error) {
	in.FullName = normalizeName(in.FullName)
	in.Email = normalizeEmail(in.Email)
	if in.FullName == "" || in.Email == "" || in.Password == "" {
		observe(OpPublicRegister, resultValidation)
		return nil, fmt.Errorf("%w: full_name, email y password son requeridos", domain.ErrValidation)
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		observe(OpPublicRegister, resultValidation)
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrWeakCredential, MinPasswordLength)
	}

	var identity entity.Identity
	err := s.newSaga(OpPublicRegister, in.Email).Run(ctx, s.RegisterPlan(in.FullName, in.Email, in.Password, &identity)...)
	if err != nil {
		observe(OpPublicRegister, resultError)
		if errors.Is(err, domain.ErrIdentityExists) {
			return nil, fmt.Errorf("registro: %w", domain.ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("registro: %w", err)
	}

	observe(OpPublicRegister, resultOK)
	s.log.Info().Str("user_id", identity.ID).Int("id_rol", s.cfg.PublicRoleID).Msg("registro público completado")
	s.publish(ctx, UserEvent{Type: EventUserRegistered, UserID: identity.ID, Email: in.Email, RoleID: s.cfg.PublicRoleID})
	return &dto.SuccessResponse{Success: true, Message: "registro completado, ya puedes iniciar sesión"}, nil
}
