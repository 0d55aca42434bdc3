package metrics

import (
	"xianverse/internal/app/ports"
)

// Fanout forwards every record to all underlying sinks. Used to feed the
// in-memory KPI snapshot and the Prometheus registry from one port.
type Fanout []ports.OperationMetrics

func (f Fanout) RecordSuccess(operation string) {
	for _, m := range f {
		m.RecordSuccess(operation)
	}
}

func (f Fanout) RecordRejected(operation string) {
	for _, m := range f {
		m.RecordRejected(operation)
	}
}

func (f Fanout) RecordFailure(operation string) {
	for _, m := range f {
		m.RecordFailure(operation)
	}
}
