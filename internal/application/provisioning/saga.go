package provisioning

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/torneos-admin-api/internal/domain"
)

// Policy tolerancia a fallos declarada en cada paso.
type Policy int

const (
	// FailFast detiene la saga y deshace los pasos previos.
	FailFast Policy = iota
	// LogAndContinue registra el fallo y sigue con el siguiente paso.
	LogAndContinue
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail_fast"
	case LogAndContinue:
		return "log_and_continue"
	default:
		return "unknown"
	}
}

// Nombres de paso; aparecen en logs, métricas y mensajes de error.
const (
	StepCreateIdentity     = "create_identity"
	StepUpsertProfile      = "upsert_profile"
	StepAssignRole         = "assign_role"
	StepClearRoles         = "clear_roles"
	StepInsertRole         = "insert_role"
	StepDeleteRoles        = "delete_roles"
	StepDeleteProfile      = "delete_profile"
	StepDeleteIdentity     = "delete_identity"
	StepSelectAssignments  = "select_assignments"
	StepDeleteRelationalTx = "delete_relational"
)

// compensationTimeout tiempo máximo para cada acción compensatoria.
const compensationTimeout = 10 * time.Second

// Step paso de una saga. Compensate puede ser nil si no hay nada que deshacer.
type Step struct {
	Name       string
	Policy     Policy
	Do         func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga ejecuta pasos en orden y apila sus compensaciones; ante un fallo FailFast
// las desapila en orden inverso.
type Saga struct {
	op   string
	log  zerolog.Logger
	undo []Step
}

func newSaga(op string, log zerolog.Logger) *Saga {
	return &Saga{op: op, log: log}
}

// Run ejecuta steps. Devuelve *domain.StepError del primer paso FailFast que falle.
func (s *Saga) Run(ctx context.Context, steps ...Step) error {
	for _, st := range steps {
		if err := st.Do(ctx); err != nil {
			if st.Policy == LogAndContinue {
				s.log.Warn().Err(err).Str("step", st.Name).Msg("paso fallido, se continúa")
				continue
			}
			s.log.Error().Err(err).Str("step", st.Name).Msg("paso fallido, deshaciendo")
			s.rollback(ctx)
			return &domain.StepError{Step: st.Name, Err: err}
		}
		if st.Compensate != nil {
			s.undo = append(s.undo, st)
		}
	}
	return nil
}

// rollback corre las compensaciones aunque el contexto de la petición esté cancelado.
func (s *Saga) rollback(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for i := len(s.undo) - 1; i >= 0; i-- {
		st := s.undo[i]
		cctx, cancel := context.WithTimeout(base, compensationTimeout)
		err := st.Compensate(cctx)
		cancel()
		if err != nil {
			compensationsTotal.WithLabelValues(s.op, st.Name, resultError).Inc()
			s.log.Error().Err(err).Str("step", st.Name).Msg("compensación fallida")
			continue
		}
		compensationsTotal.WithLabelValues(s.op, st.Name, resultOK).Inc()
		s.log.Info().Str("step", st.Name).Msg("paso compensado")
	}
	s.undo = nil
}
