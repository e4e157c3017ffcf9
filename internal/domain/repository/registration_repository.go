package repository

import (
	"context"

	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
)

// RegistrationRepository persistencia de inscripciones a eventos.
type RegistrationRepository interface {
	Create(ctx context.Context, r *entity.Registration) error
	GetByID(ctx context.Context, id string) (*entity.Registration, error)
	// List filtra por evento si event != "".
	List(ctx context.Context, event string) ([]*entity.Registration, error)
	Delete(ctx context.Context, id string) error
}
