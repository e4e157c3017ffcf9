package provisioning_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/torneos-admin-api/internal/application/dto"
	"github.com/jhoicas/torneos-admin-api/internal/application/provisioning"
	"github.com/jhoicas/torneos-admin-api/internal/domain"
)

func anaRequest() dto.CreateUserRequest {
	return dto.CreateUserRequest{FullName: "Ana", Email: "a@x.com", Password: "secret1", RoleID: 2}
}

func TestCreateUser_EstadoVacio(t *testing.T) {
	f := newFixture(1)

	out, err := f.svc.CreateUser(context.Background(), anaRequest())
	require.NoError(t, err)
	require.True(t, out.Success)
	require.NotEmpty(t, out.UserID)

	require.Len(t, f.profiles.rows, 1)
	p := f.profiles.rows[out.UserID]
	assert.Equal(t, 2, p.RoleID, "el perfil debe quedar con id_rol=2")
	assert.Equal(t, "Ana", p.FullName)
	assert.Equal(t, "a@x.com", p.Email)

	rows := f.roles.of(out.UserID)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].RoleID)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, provisioning.EventUserCreated, f.events.events[0].Type)
}

func TestCreateUser_Idempotente(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	first, err := f.svc.CreateUser(ctx, anaRequest())
	require.NoError(t, err)
	second, err := f.svc.CreateUser(ctx, anaRequest())
	require.NoError(t, err)

	assert.Equal(t, first.UserID, second.UserID, "la segunda llamada reutiliza la identidad existente")
	assert.Len(t, f.identity.byID, 1)
	assert.Len(t, f.profiles.rows, 1)
	assert.Len(t, f.roles.rows, 1, "la asignación de rol se reemplaza, no se duplica")
}

func TestCreateUser_NormalizaEmail(t *testing.T) {
	f := newFixture(1)
	in := anaRequest()
	in.Email = "  A@X.com "

	out, err := f.svc.CreateUser(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", f.profiles.rows[out.UserID].Email)
}

func TestCreateUser_CamposRequeridos(t *testing.T) {
	cases := map[string]func(*dto.CreateUserRequest){
		"sin nombre":   func(r *dto.CreateUserRequest) { r.FullName = "  " },
		"sin email":    func(r *dto.CreateUserRequest) { r.Email = "" },
		"sin password": func(r *dto.CreateUserRequest) { r.Password = "" },
		"sin rol":      func(r *dto.CreateUserRequest) { r.RoleID = 0 },
		"rol negativo": func(r *dto.CreateUserRequest) { r.RoleID = -3 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(1)
			in := anaRequest()
			mutate(&in)

			_, err := f.svc.CreateUser(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, f.remoteCalls(), "la validación no debe tocar servicios remotos")
		})
	}
}

func TestCreateUser_FalloDePerfilCompensaIdentidadNueva(t *testing.T) {
	f := newFixture(1)
	f.profiles.failUpsert = errRemote

	_, err := f.svc.CreateUser(context.Background(), anaRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProvisioning)
	assert.Equal(t, provisioning.StepUpsertProfile, domain.FailedStep(err))
	assert.Empty(t, f.identity.byID, "la identidad creada en esta llamada debe borrarse")
	assert.Empty(t, f.events.events)
}

func TestCreateUser_RolInexistente(t *testing.T) {
	f := newFixture(1)
	f.profiles.failUpsert = fmt.Errorf("upsert profile: rol 99: %w", domain.ErrUnknownRole)
	in := anaRequest()
	in.RoleID = 99

	_, err := f.svc.CreateUser(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
	assert.Empty(t, f.identity.byID, "la identidad creada se compensa")
	assert.Empty(t, f.profiles.rows)
}

func TestCreateUser_FalloDeRolCompensaPerfilEIdentidad(t *testing.T) {
	f := newFixture(1)
	f.roles.failReplace = errRemote

	_, err := f.svc.CreateUser(context.Background(), anaRequest())
	assert.ErrorIs(t, err, domain.ErrProvisioning)
	assert.Equal(t, provisioning.StepAssignRole, domain.FailedStep(err))
	assert.Empty(t, f.identity.byID)
	assert.Empty(t, f.profiles.rows)
}

func TestCreateUser_IdentidadReutilizadaNoSeBorra(t *testing.T) {
	f := newFixture(1)
	f.identity.add("existente", "a@x.com")
	f.roles.failReplace = errRemote

	_, err := f.svc.CreateUser(context.Background(), anaRequest())
	assert.ErrorIs(t, err, domain.ErrProvisioning)
	assert.True(t, f.identity.has("existente"), "una identidad previa nunca se compensa")
	assert.Empty(t, f.identity.deletions)
}

func TestCreateUser_FalloDelProveedor(t *testing.T) {
	f := newFixture(1)
	f.identity.failOn["create"] = errRemote

	_, err := f.svc.CreateUser(context.Background(), anaRequest())
	assert.ErrorIs(t, err, domain.ErrProvisioning)
	assert.Equal(t, provisioning.StepCreateIdentity, domain.FailedStep(err))
	assert.Zero(t, f.profiles.calls)
	assert.Zero(t, f.roles.calls)
}

func TestCreateUser_EventoFallidoNoRompeLaOperacion(t *testing.T) {
	f := newFixture(1)
	f.events.err = errRemote

	out, err := f.svc.CreateUser(context.Background(), anaRequest())
	require.NoError(t, err)
	assert.True(t, out.Success)
}
