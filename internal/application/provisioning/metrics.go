package provisioning

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK         = "ok"
	resultError      = "error"
	resultPartial    = "partial"
	resultValidation = "validation"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provisioning_operations_total",
			Help: "Operaciones de alta/baja de usuarios por resultado.",
		},
		[]string{"operation", "result"},
	)

	compensationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provisioning_compensations_total",
			Help: "Acciones compensatorias ejecutadas por paso.",
		},
		[]string{"operation", "step", "result"},
	)
)

func observe(op, result string) {
	operationsTotal.WithLabelValues(op, result).Inc()
}
