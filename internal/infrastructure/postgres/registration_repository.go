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

var _ repository.RegistrationRepository = (*RegistrationRepo)(nil)

// RegistrationRepo inscripciones sobre PostgreSQL. cuota es NUMERIC (codec shopspring registrado en el pool).
type RegistrationRepo struct {
	q Querier
}

// NewRegistrationRepository construye el adaptador de inscripciones.
func NewRegistrationRepository(q Querier) *RegistrationRepo {
	return &RegistrationRepo{q: q}
}

const registrationColumns = `
	i.id, i.evento, i.equipo, i.categoria, i.responsable_id, COALESCE(p.full_name, ''),
	i.cuota, i.estado, i.created_at`

func scanRegistration(row pgx.Row) (*entity.Registration, error) {
	var r entity.Registration
	err := row.Scan(&r.ID, &r.Event, &r.Team, &r.Category, &r.LeaderID, &r.LeaderName, &r.Fee, &r.Status, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create persiste una inscripción. Equipo repetido en el mismo evento → domain.ErrDuplicate.
func (r *RegistrationRepo) Create(ctx context.Context, reg *entity.Registration) error {
	query := `
		INSERT INTO inscripciones (id, evento, equipo, categoria, responsable_id, cuota, estado, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		reg.ID, reg.Event, reg.Team, reg.Category, reg.LeaderID, reg.Fee, reg.Status, reg.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert inscripcion: responsable: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert inscripcion: %w", err)
	}
	return nil
}

// GetByID obtiene una inscripción; nil, nil si no existe.
func (r *RegistrationRepo) GetByID(ctx context.Context, id string) (*entity.Registration, error) {
	query := `SELECT ` + registrationColumns + `
		FROM inscripciones i LEFT JOIN profiles p ON p.id = i.responsable_id
		WHERE i.id = $1`
	reg, err := scanRegistration(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inscripcion: %w", err)
	}
	return reg, nil
}

// List lista inscripciones, filtradas por evento si event != "".
func (r *RegistrationRepo) List(ctx context.Context, event string) ([]*entity.Registration, error) {
	query := `SELECT ` + registrationColumns + `
		FROM inscripciones i LEFT JOIN profiles p ON p.id = i.responsable_id
		WHERE ($1 = '' OR i.evento = $1)
		ORDER BY i.evento, i.categoria, i.equipo`
	rows, err := r.q.Query(ctx, query, event)
	if err != nil {
		return nil, fmt.Errorf("list inscripciones: %w", err)
	}
	defer rows.Close()
	var out []*entity.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inscripcion: %w", err)
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

// Delete elimina una inscripción. domain.ErrNotFound si no existía.
func (r *RegistrationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inscripciones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inscripcion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
