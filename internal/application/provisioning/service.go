package provisioning

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
	"github.com/jhoicas/torneos-admin-api/internal/domain/repository"
	"github.com/jhoicas/torneos-admin-api/pkg/logger"
)

// Nombres de operación para logs y métricas.
const (
	OpCreateUser     = "create_user"
	OpDeleteUser     = "delete_user"
	OpBulkDelete     = "bulk_delete_by_role"
	OpPublicRegister = "public_register"
)

// MinPasswordLength longitud mínima de contraseña en el registro público.
const MinPasswordLength = 6

// Config parámetros del servicio.
type Config struct {
	BulkWorkers  int // tamaño del pool de borrado de identidades; <= 0 usa 1
	PublicRoleID int // 0 usa entity.RolePublicRegistration
}

// Service orquesta el alta y baja de usuarios sobre el proveedor de identidad y las tablas
// profiles/user_roles. No guarda estado entre peticiones.
type Service struct {
	identity IdentityProvider
	profiles repository.ProfileRepository
	roles    repository.RoleAssignmentRepository
	tx       TxRunner
	events   EventPublisher
	log      *logger.Logger
	cfg      Config
}

// NewService construye el servicio. events y log pueden ser nil.
func NewService(
	identity IdentityProvider,
	profiles repository.ProfileRepository,
	roles repository.RoleAssignmentRepository,
	tx TxRunner,
	events EventPublisher,
	log *logger.Logger,
	cfg Config,
) *Service {
	if events == nil {
		events = NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.BulkWorkers <= 0 {
		cfg.BulkWorkers = 1
	}
	if cfg.PublicRoleID == 0 {
		cfg.PublicRoleID = entity.RolePublicRegistration
	}
	return &Service{
		identity: identity,
		profiles: profiles,
		roles:    roles,
		tx:       tx,
		events:   events,
		log:      log.Named("provisioning"),
		cfg:      cfg,
	}
}

func (s *Service) newSaga(op, subject string) *Saga {
	return newSaga(op, s.log.With().Str("op", op).Str("subject", subject).Logger())
}

// publish nunca falla la operación: solo registra el error.
func (s *Service) publish(ctx context.Context, ev UserEvent) {
	ev.OccurredAt = time.Now().UTC()
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("event", ev.Type).Str("user_id", ev.UserID).Msg("no se pudo publicar el evento")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
