// Package registration casos de uso de inscripciones de equipos a eventos.
package registration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/torneos-admin-api/internal/application/dto"
	"github.com/jhoicas/torneos-admin-api/internal/domain"
	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
	"github.com/jhoicas/torneos-admin-api/internal/domain/repository"
)

// UseCase inscripciones: alta por líderes o administradores, baja solo administradores (lo
// controla el router) y exportación de la planilla en PDF.
type UseCase struct {
	repo      repository.RegistrationRepository
	generator RosterPDFGenerator
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.RegistrationRepository, generator RosterPDFGenerator) *UseCase {
	return &UseCase{repo: repo, generator: generator, now: func() time.Time { return time.Now().UTC() }}
}

// Create inscribe un equipo. callerRole decide quién queda como responsable.
func (uc *UseCase) Create(ctx context.Context, callerID string, callerRole int, in dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error) {
	event := strings.TrimSpace(in.Event)
	team := strings.TrimSpace(in.Team)
	if event == "" || team == "" {
		return nil, fmt.Errorf("%w: evento y equipo son obligatorios", domain.ErrValidation)
	}
	if in.Fee.IsNegative() {
		return nil, fmt.Errorf("%w: la cuota no puede ser negativa", domain.ErrValidation)
	}

	leaderID := callerID
	if callerRole == entity.RoleAdministrador && strings.TrimSpace(in.ResponsableID) != "" {
		leaderID = strings.TrimSpace(in.ResponsableID)
	}

	reg := &entity.Registration{
		ID:        uuid.New().String(),
		Event:     event,
		Team:      team,
		Category:  strings.TrimSpace(in.Category),
		LeaderID:  leaderID,
		Fee:       in.Fee.Round(2),
		Status:    entity.RegistrationPending,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, reg); err != nil {
		return nil, err
	}
	out := toResponse(reg)
	return &out, nil
}

// List devuelve las inscripciones (filtradas por evento si se indica) y la suma de cuotas.
func (uc *UseCase) List(ctx context.Context, event string) (*dto.RegistrationListResponse, error) {
	regs, err := uc.repo.List(ctx, strings.TrimSpace(event))
	if err != nil {
		return nil, err
	}
	out := &dto.RegistrationListResponse{Items: make([]dto.RegistrationResponse, 0, len(regs)), TotalFee: decimal.Zero}
	for _, r := range regs {
		out.Items = append(out.Items, toResponse(r))
		if r.Status != entity.RegistrationCancelled {
			out.TotalFee = out.TotalFee.Add(r.Fee)
		}
	}
	return out, nil
}

// Delete elimina una inscripción. domain.ErrNotFound si no existe.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrValidation
	}
	return uc.repo.Delete(ctx, id)
}

// ExportPDF genera la planilla del evento. Devuelve los bytes y el nombre de archivo.
func (uc *UseCase) ExportPDF(ctx context.Context, event string) ([]byte, string, error) {
	event = strings.TrimSpace(event)
	if event == "" {
		return nil, "", fmt.Errorf("%w: evento es obligatorio", domain.ErrValidation)
	}
	regs, err := uc.repo.List(ctx, event)
	if err != nil {
		return nil, "", err
	}
	if len(regs) == 0 {
		return nil, "", domain.ErrNotFound
	}
	pdfBytes, err := uc.generator.GenerateRosterPDF(ctx, event, regs)
	if err != nil {
		return nil, "", fmt.Errorf("planilla: generación fallida: %w", err)
	}
	return pdfBytes, "inscripciones_" + slug(event) + ".pdf", nil
}

func toResponse(r *entity.Registration) dto.RegistrationResponse {
	return dto.RegistrationResponse{
		ID:              r.ID,
		Event:           r.Event,
		Team:            r.Team,
		Category:        r.Category,
		ResponsableID:   r.LeaderID,
		ResponsableName: r.LeaderName,
		Fee:             r.Fee,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
	}
}

// slug deja solo letras, dígitos y guiones bajos para el nombre de archivo.
func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
