package registration_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/torneos-admin-api/internal/application/dto"
	"github.com/jhoicas/torneos-admin-api/internal/application/registration"
	"github.com/jhoicas/torneos-admin-api/internal/domain"
	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
)

// ─── Fakes ──────────────────────────────────────────────────────────────────

type fakeRepo struct {
	items []*entity.Registration
}

func (f *fakeRepo) Create(_ context.Context, r *entity.Registration) error {
	for _, it := range f.items {
		if it.Event == r.Event && it.Team == r.Team {
			return domain.ErrDuplicate
		}
	}
	f.items = append(f.items, r)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*entity.Registration, error) {
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) List(_ context.Context, event string) ([]*entity.Registration, error) {
	var out []*entity.Registration
	for _, it := range f.items {
		if event == "" || it.Event == event {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakePDF struct {
	event string
	count int
}

func (f *fakePDF) GenerateRosterPDF(_ context.Context, event string, regs []*entity.Registration) ([]byte, error) {
	f.event, f.count = event, len(regs)
	return []byte("%PDF-fake"), nil
}

func req(event, team, fee string) dto.CreateRegistrationRequest {
	return dto.CreateRegistrationRequest{Event: event, Team: team, Category: "libre", Fee: decimal.RequireFromString(fee)}
}

// ─── Create ─────────────────────────────────────────────────────────────────

func TestCreate_LiderQuedaComoResponsable(t *testing.T) {
	uc := registration.NewUseCase(&fakeRepo{}, &fakePDF{})

	in := req(" Copa 2024 ", "Tigres", "150000.456")
	in.ResponsableID = "otro"
	out, err := uc.Create(context.Background(), "lider-1", entity.RoleLiderEquipo, in)
	require.NoError(t, err)

	assert.Equal(t, "Copa 2024", out.Event)
	assert.Equal(t, "lider-1", out.ResponsableID)
	assert.Equal(t, entity.RegistrationPending, out.Status)
	assert.Equal(t, "150000.46", out.Fee.StringFixed(2))
}

func TestCreate_AdminPuedeAsignarResponsable(t *testing.T) {
	uc := registration.NewUseCase(&fakeRepo{}, &fakePDF{})

	in := req("Copa", "Tigres", "0")
	in.ResponsableID = "lider-9"
	out, err := uc.Create(context.Background(), "admin-1", entity.RoleAdministrador, in)
	require.NoError(t, err)
	assert.Equal(t, "lider-9", out.ResponsableID)
}

func TestCreate_Validaciones(t *testing.T) {
	uc := registration.NewUseCase(&fakeRepo{}, &fakePDF{})
	ctx := context.Background()

	_, err := uc.Create(ctx, "l", entity.RoleLiderEquipo, req("", "Tigres", "10"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(ctx, "l", entity.RoleLiderEquipo, req("Copa", "Tigres", "-1"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_EquipoDuplicado(t *testing.T) {
	uc := registration.NewUseCase(&fakeRepo{}, &fakePDF{})
	ctx := context.Background()

	_, err := uc.Create(ctx, "l", entity.RoleLiderEquipo, req("Copa", "Tigres", "10"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, "l", entity.RoleLiderEquipo, req("Copa", "Tigres", "10"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ─── List / Delete / Export ─────────────────────────────────────────────────

func TestList_SumaCuotasSinCanceladas(t *testing.T) {
	repo := &fakeRepo{}
	uc := registration.NewUseCase(repo, &fakePDF{})
	ctx := context.Background()

	_, _ = uc.Create(ctx, "l", entity.RoleLiderEquipo, req("Copa", "A", "100.50"))
	_, _ = uc.Create(ctx, "l", entity.RoleLiderEquipo, req("Copa", "B", "200"))
	_, _ = uc.Create(ctx, "l", entity.RoleLiderEquipo, req("Liga", "C", "999"))
	repo.items[1].Status = entity.RegistrationCancelled

	out, err := uc.List(ctx, "Copa")
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, "100.5", out.TotalFee.String())
}

func TestDelete_Inexistente(t *testing.T) {
	uc := registration.NewUseCase(&fakeRepo{}, &fakePDF{})
	assert.ErrorIs(t, uc.Delete(context.Background(), "x"), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(context.Background(), " "), domain.ErrValidation)
}

func TestExportPDF(t *testing.T) {
	gen := &fakePDF{}
	uc := registration.NewUseCase(&fakeRepo{}, gen)
	ctx := context.Background()

	_, _, err := uc.ExportPDF(ctx, "Copa Ñ")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _ = uc.Create(ctx, "l", entity.RoleLiderEquipo, req("Copa Ñ", "A", "1"))
	b, name, err := uc.ExportPDF(ctx, "Copa Ñ")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), b)
	assert.Equal(t, "inscripciones_copa__.pdf", name)
	assert.Equal(t, 1, gen.count)
}
