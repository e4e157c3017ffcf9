package registration

import (
	"context"

	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
)

// RosterPDFGenerator genera la planilla de equipos inscritos a un evento.
type RosterPDFGenerator interface {
	GenerateRosterPDF(ctx context.Context, event string, regs []*entity.Registration) ([]byte, error)
}
