package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una inscripción.
const (
	RegistrationPending   = "pendiente"
	RegistrationConfirmed = "confirmada"
	RegistrationCancelled = "cancelada"
)

// Registration inscripción de un equipo a un evento deportivo (tabla inscripciones).
type Registration struct {
	ID         string
	Event      string
	Team       string
	Category   string
	LeaderID   string          // perfil responsable del equipo
	LeaderName string          // solo lectura
	Fee        decimal.Decimal // cuota de inscripción, NUMERIC(12,2)
	Status     string
	CreatedAt  time.Time
}
