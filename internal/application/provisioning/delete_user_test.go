package provisioning_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/torneos-admin-api/internal/application/provisioning"
	"github.com/jhoicas/torneos-admin-api/internal/domain"
)

func TestDeleteUser_Exito(t *testing.T) {
	f := newFixture(1)
	f.seedUser("u1", 3)

	require.NoError(t, f.svc.DeleteUser(context.Background(), "u1"))
	assert.False(t, f.identity.has("u1"))
	assert.Empty(t, f.profiles.rows)
	assert.Empty(t, f.roles.rows)
	require.Len(t, f.events.events, 1)
	assert.Equal(t, provisioning.EventUserDeleted, f.events.events[0].Type)
}

func TestDeleteUser_Inexistente(t *testing.T) {
	f := newFixture(1)

	err := f.svc.DeleteUser(context.Background(), "no-existe")
	require.NoError(t, err, "borrar nada no es un error")
	assert.Equal(t, 1, f.roles.deletes)
	assert.Equal(t, []string{"no-existe"}, f.profiles.deletes)
	assert.Equal(t, []string{"no-existe"}, f.identity.deletions)
}

func TestDeleteUser_FallosRelacionalesSeToleran(t *testing.T) {
	f := newFixture(1)
	f.seedUser("u1", 3)
	f.roles.failDelete = errRemote
	f.profiles.failDelete = errRemote

	require.NoError(t, f.svc.DeleteUser(context.Background(), "u1"))
	assert.False(t, f.identity.has("u1"), "la identidad se borra aunque fallen los pasos previos")
}

func TestDeleteUser_FalloIdentidadSeReporta(t *testing.T) {
	f := newFixture(1)
	f.seedUser("u1", 3)
	f.identity.failOn["delete:u1"] = errRemote

	err := f.svc.DeleteUser(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrProvisioning)
	assert.Equal(t, provisioning.StepDeleteIdentity, domain.FailedStep(err))
	assert.Empty(t, f.events.events)
}

func TestDeleteUser_SinID(t *testing.T) {
	f := newFixture(1)

	err := f.svc.DeleteUser(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, f.remoteCalls())
}

func TestDeletePlan_Politicas(t *testing.T) {
	f := newFixture(1)
	plan := f.svc.DeletePlan("u1")

	require.Len(t, plan, 3)
	assert.Equal(t, provisioning.StepDeleteRoles, plan[0].Name)
	assert.Equal(t, provisioning.LogAndContinue, plan[0].Policy)
	assert.Equal(t, provisioning.StepDeleteProfile, plan[1].Name)
	assert.Equal(t, provisioning.LogAndContinue, plan[1].Policy)
	assert.Equal(t, provisioning.StepDeleteIdentity, plan[2].Name)
	assert.Equal(t, provisioning.FailFast, plan[2].Policy)
	for _, st := range plan {
		assert.Nil(t, st.Compensate, "un borrado no tiene compensación")
	}
}
