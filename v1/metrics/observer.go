package metrics

import (
	"github.com/streamkit-io/schemaregistry/v1/observability"
)

// ObserveOperation implements observability.Observer. Each observation
// increments the operation counter with a success or error status, records
// the duration, and, when the operation carried a payload, its size.
func (m *Metrics) ObserveOperation(op observability.OperationContext) {
	status := "success"
	if op.Error != nil {
		status = "error"
	}

	m.operationsTotal.WithLabelValues(op.Component, op.Operation, status).Inc()
	m.operationDuration.WithLabelValues(op.Component, op.Operation).Observe(op.Duration.Seconds())
	if op.Size > 0 {
		m.payloadBytes.WithLabelValues(op.Component, op.Operation).Observe(float64(op.Size))
	}
}
