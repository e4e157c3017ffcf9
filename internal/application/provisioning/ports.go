package provisioning

import (
	"context"
	"time"

	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
	"github.com/jhoicas/torneos-admin-api/internal/domain/repository"
)

// IdentityProvider puerto hacia el proveedor de identidad (GoTrue o el adaptador local).
type IdentityProvider interface {
	// CreateUser crea la identidad. Devuelve domain.ErrIdentityExists si el email ya está registrado.
	CreateUser(ctx context.Context, email, password string) (*entity.Identity, error)
	// GetUserByEmail devuelve nil, nil si no existe.
	GetUserByEmail(ctx context.Context, email string) (*entity.Identity, error)
	// DeleteUser borra la identidad; borrar una identidad inexistente no es error.
	DeleteUser(ctx context.Context, id string) error
}

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a esa tx.
type TxRunner interface {
	RunUsers(ctx context.Context, fn func(
		profiles repository.ProfileRepository,
		roles repository.RoleAssignmentRepository,
	) error) error
}

// Tipos de evento publicados tras cada operación exitosa.
const (
	EventUserCreated    = "user.created"
	EventUserRegistered = "user.registered"
	EventUserDeleted    = "user.deleted"
)

// UserEvent mensaje de ciclo de vida de un usuario.
type UserEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email,omitempty"`
	RoleID     int       `json:"role_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher publica eventos de usuario. Un fallo al publicar nunca hace fallar la operación.
type EventPublisher interface {
	Publish(ctx context.Context, ev UserEvent) error
}

// NopPublisher descarta los eventos (AMQP deshabilitado).
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, UserEvent) error { return nil }
