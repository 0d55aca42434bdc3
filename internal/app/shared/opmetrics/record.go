package opmetrics

import (
	"errors"

	"xianverse/internal/app/ports"
)

// Record classifies an operation result for the metrics port: nil is a
// success, any listed rejection error counts as an expected game-rule
// rejection, anything else is a failure.
func Record(m ports.OperationMetrics, operation string, err error, rejections ...error) {
	if m == nil {
		return
	}
	if err == nil {
		m.RecordSuccess(operation)
		return
	}
	for _, known := range rejections {
		if errors.Is(err, known) {
			m.RecordRejected(operation)
			return
		}
	}
	m.RecordFailure(operation)
}
