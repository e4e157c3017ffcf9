package provisioning

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/torneos-admin-api/internal/application/dto"
	"github.com/jhoicas/torneos-admin-api/internal/domain"
	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
	"github.com/jhoicas/torneos-admin-api/internal/domain/repository"
)

// BulkDeleteUsersByRole elimina a todos los usuarios que tengan alguno de los roles dados.
//
// Orden: primero las identidades (pool acotado, errores por usuario en el orden de entrada),
// después, en una sola transacción, user_roles y profiles de los usuarios cuya identidad
// sí se borró. Un usuario cuya identidad falla queda intacto.
//
// Si la transacción falla se reintenta una vez fuera del contexto de la petición. Si vuelve
// a fallar se devuelve el resultado parcial junto con el error: Deleted cuenta las identidades
// ya borradas y Errors lista los usuarios cuyas filas quedaron pendientes.
func (s *Service) BulkDeleteUsersByRole(ctx context.Context, in dto.BulkDeleteRequest) (*dto.BulkDeleteResponse, error) {
	roleIDs := distinctRoleIDs(in.RoleIDs)
	if len(roleIDs) == 0 {
		observe(OpBulkDelete, resultValidation)
		return nil, fmt.Errorf("%w: role_ids debe contener al menos un rol", domain.ErrValidation)
	}
	log := s.log.With().Str("op", OpBulkDelete).Ints("role_ids", roleIDs).Logger()

	assignments, err := s.roles.ListByRoles(ctx, roleIDs)
	if err != nil {
		log.Error().Err(err).Str("step", StepSelectAssignments).Msg("paso fallido")
		observe(OpBulkDelete, resultError)
		return nil, fmt.Errorf("borrado masivo: %w", &domain.StepError{Step: StepSelectAssignments, Err: err})
	}

	userIDs := distinctUserIDs(assignments)
	if len(userIDs) == 0 {
		observe(OpBulkDelete, resultOK)
		return &dto.BulkDeleteResponse{
			Success: true,
			Message: "no hay usuarios con los roles indicados",
		}, nil
	}

	failures := s.deleteIdentities(ctx, userIDs)

	deleted := make([]string, 0, len(userIDs))
	var errs []string
	for i, id := range userIDs {
		if failures[i] != nil {
			log.Error().Err(failures[i]).Str("step", StepDeleteIdentity).Str("user_id", id).Msg("paso fallido")
			errs = append(errs, stepFailure(id, StepDeleteIdentity))
			continue
		}
		deleted = append(deleted, id)
	}

	if len(deleted) > 0 {
		err := s.deleteRelational(ctx, deleted)
		if err != nil {
			log.Warn().Err(err).Int("identities_deleted", len(deleted)).Msg("fase relacional fallida, reintentando")
			rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
			err = s.deleteRelational(rctx, deleted)
			cancel()
		}
		if err != nil {
			log.Error().Err(err).Int("identities_deleted", len(deleted)).Msg("fase relacional fallida tras reintento")
			observe(OpBulkDelete, resultError)
			s.publishDeleted(ctx, deleted)
			step := domain.FailedStep(err)
			for _, id := range deleted {
				errs = append(errs, stepFailure(id, step))
			}
			return &dto.BulkDeleteResponse{
				Success: false,
				Deleted: len(deleted),
				Total:   len(userIDs),
				Errors:  errs,
				Message: fmt.Sprintf("%d identidades eliminadas; sus perfiles y roles no se pudieron borrar", len(deleted)),
			}, fmt.Errorf("borrado masivo: %w", err)
		}
	}

	s.publishDeleted(ctx, deleted)

	out := &dto.BulkDeleteResponse{
		Success: true,
		Deleted: len(deleted),
		Total:   len(userIDs),
		Errors:  errs,
	}
	if len(errs) > 0 {
		observe(OpBulkDelete, resultPartial)
		out.Message = fmt.Sprintf("%d de %d usuarios eliminados", out.Deleted, out.Total)
	} else {
		observe(OpBulkDelete, resultOK)
	}
	log.Info().Int("deleted", out.Deleted).Int("total", out.Total).Msg("borrado masivo terminado")
	return out, nil
}

// deleteRelational borra user_roles y profiles de userIDs en una transacción.
// El error siempre es un *domain.StepError.
func (s *Service) deleteRelational(ctx context.Context, userIDs []string) error {
	err := s.tx.RunUsers(ctx, func(profiles repository.ProfileRepository, roles repository.RoleAssignmentRepository) error {
		if err := roles.DeleteByUsers(ctx, userIDs); err != nil {
			return &domain.StepError{Step: StepDeleteRoles, Err: err}
		}
		if err := profiles.DeleteMany(ctx, userIDs); err != nil {
			return &domain.StepError{Step: StepDeleteProfile, Err: err}
		}
		return nil
	})
	if err == nil {
		return nil
	}
	var se *domain.StepError
	if !errors.As(err, &se) {
		err = &domain.StepError{Step: StepDeleteRelationalTx, Err: err}
	}
	return err
}

func (s *Service) publishDeleted(ctx context.Context, userIDs []string) {
	for _, id := range userIDs {
		s.publish(ctx, UserEvent{Type: EventUserDeleted, UserID: id})
	}
}

// stepFailure entrada de Errors: solo id y paso; la causa queda en el log.
func stepFailure(userID, step string) string {
	return userID + ": falló " + step
}

// deleteIdentities borra cada identidad con a lo sumo cfg.BulkWorkers llamadas simultáneas.
// El error de userIDs[i] queda en la posición i.
func (s *Service) deleteIdentities(ctx context.Context, userIDs []string) []error {
	failures := make([]error, len(userIDs))
	var g errgroup.Group
	g.SetLimit(s.cfg.BulkWorkers)
	for i, id := range userIDs {
		g.Go(func() error {
			failures[i] = s.identity.DeleteUser(ctx, id)
			return nil
		})
	}
	_ = g.Wait()
	return failures
}

// distinctUserIDs conserva el orden de primera aparición.
func distinctUserIDs(rows []entity.RoleAssignment) []string {
	seen := make(map[string]struct{}, len(rows))
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.UserID == "" {
			continue
		}
		if _, ok := seen[r.UserID]; ok {
			continue
		}
		seen[r.UserID] = struct{}{}
		out = append(out, r.UserID)
	}
	return out
}

func distinctRoleIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
