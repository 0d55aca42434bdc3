package inmemory

import (
	"sync"
)

type opCounts struct {
	Success  uint64 `json:"success"`
	Rejected uint64 `json:"rejected"`
	Failure  uint64 `json:"failure"`
}

type Snapshot struct {
	Total       uint64              `json:"total"`
	Success     uint64              `json:"success"`
	Rejected    uint64              `json:"rejected"`
	Failure     uint64              `json:"failure"`
	ByOperation map[string]opCounts `json:"by_operation"`
}

// Recorder keeps per-operation outcome counters in process memory. It backs
// the /ops/kpi endpoint and doubles as the metrics sink when no Prometheus
// registry is wired.
type Recorder struct {
	mu    sync.Mutex
	byOp  map[string]*opCounts
	total opCounts
}

func NewRecorder() *Recorder {
	return &Recorder{
		byOp: map[string]*opCounts{},
	}
}

func (r *Recorder) countsFor(operation string) *opCounts {
	c, ok := r.byOp[operation]
	if !ok {
		c = &opCounts{}
		r.byOp[operation] = c
	}
	return c
}

func (r *Recorder) RecordSuccess(operation string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total.Success++
	r.countsFor(operation).Success++
}

func (r *Recorder) RecordRejected(operation string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total.Rejected++
	r.countsFor(operation).Rejected++
}

func (r *Recorder) RecordFailure(operation string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total.Failure++
	r.countsFor(operation).Failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		Success:     r.total.Success,
		Rejected:    r.total.Rejected,
		Failure:     r.total.Failure,
		Total:       r.total.Success + r.total.Rejected + r.total.Failure,
		ByOperation: make(map[string]opCounts, len(r.byOp)),
	}
	for op, c := range r.byOp {
		out.ByOperation[op] = *c
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
