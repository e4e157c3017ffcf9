package provisioning

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/torneos-admin-api/internal/domain"
)

// DeletePlan pasos de DeleteUser. Las filas relacionales son desechables (LogAndContinue);
// la identidad es el recurso autoritativo y su borrado debe confirmarse (FailFast).
func (s *Service) DeletePlan(userID string) []Step {
	return []Step{
		{
			Name:   StepDeleteRoles,
			Policy: LogAndContinue,
			Do:     func(ctx context.Context) error { return s.roles.DeleteByUser(ctx, userID) },
		},
		{
			Name:   StepDeleteProfile,
			Policy: LogAndContinue,
			Do:     func(ctx context.Context) error { return s.profiles.Delete(ctx, userID) },
		},
		{
			Name:   StepDeleteIdentity,
			Policy: FailFast,
			Do:     func(ctx context.Context) error { return s.identity.DeleteUser(ctx, userID) },
		},
	}
}

// DeleteUser borra asignaciones de rol, perfil e identidad, en ese orden. Siempre intenta
// los tres pasos; solo el fallo al borrar la identidad se devuelve como error.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		observe(OpDeleteUser, resultValidation)
		return fmt.Errorf("%w: user_id es requerido", domain.ErrValidation)
	}

	if err := s.newSaga(OpDeleteUser, userID).Run(ctx, s.DeletePlan(userID)...); err != nil {
		observe(OpDeleteUser, resultError)
		return fmt.Errorf("eliminar usuario: %w", err)
	}

	observe(OpDeleteUser, resultOK)
	s.log.Info().Str("user_id", userID).Msg("usuario eliminado")
	s.publish(ctx, UserEvent{Type: EventUserDeleted, UserID: userID})
	return nil
}
