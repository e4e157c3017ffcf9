package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/torneos-admin-api/internal/domain"
	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
)

// failingExec Querier cuyo Exec siempre devuelve err.
type failingExec struct{ err error }

func (q failingExec) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, q.err
}

func (q failingExec) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, q.err
}

func (q failingExec) QueryRow(context.Context, string, ...any) pgx.Row {
	return rowFunc(func(...any) error { return q.err })
}

func TestRolInexistente_FKSeTraduce(t *testing.T) {
	ctx := context.Background()
	fk := failingExec{err: &pgconn.PgError{Code: "23503"}}

	err := NewProfileRepository(fk).Upsert(ctx, &entity.Profile{ID: "u1", FullName: "Ana", Email: "a@x.com", RoleID: 99})
	assert.ErrorIs(t, err, domain.ErrUnknownRole)

	assignments := NewRoleAssignmentRepository(fk)
	assert.ErrorIs(t, assignments.Replace(ctx, entity.RoleAssignment{UserID: "u1", RoleID: 99}), domain.ErrUnknownRole)
	assert.ErrorIs(t, assignments.Insert(ctx, entity.RoleAssignment{UserID: "u1", RoleID: 99}), domain.ErrUnknownRole)
}

func TestRolInexistente_OtrosErroresNoSeConfunden(t *testing.T) {
	q := failingExec{err: errors.New("conn reset")}

	err := NewProfileRepository(q).Upsert(context.Background(), &entity.Profile{ID: "u1", RoleID: 2})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrUnknownRole))
}
