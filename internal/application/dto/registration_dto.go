package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRegistrationRequest body para POST /api/registrations.
// ResponsableID solo lo puede fijar un administrador; un líder siempre inscribe a su nombre.
type CreateRegistrationRequest struct {
	Event         string          `json:"evento"`
	Team          string          `json:"equipo"`
	Category      string          `json:"categoria"`
	ResponsableID string          `json:"responsable_id,omitempty"`
	Fee           decimal.Decimal `json:"cuota"`
}

// RegistrationResponse inscripción en respuestas.
type RegistrationResponse struct {
	ID              string          `json:"id"`
	Event           string          `json:"evento"`
	Team            string          `json:"equipo"`
	Category        string          `json:"categoria"`
	ResponsableID   string          `json:"responsable_id"`
	ResponsableName string          `json:"responsable,omitempty"`
	Fee             decimal.Decimal `json:"cuota"`
	Status          string          `json:"estado"`
	CreatedAt       time.Time       `json:"created_at"`
}

// RegistrationListResponse listado de inscripciones con el total de cuotas.
type RegistrationListResponse struct {
	Items    []RegistrationResponse `json:"items"`
	TotalFee decimal.Decimal        `json:"total_cuotas"`
}
