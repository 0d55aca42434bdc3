package inmemory

import (
	"testing"

	"xianverse/internal/app/ports"
)

var _ ports.OperationMetrics = (*Recorder)(nil)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("activity.begin")
	r.RecordSuccess("duel")
	r.RecordRejected("duel")
	r.RecordFailure("activity.collect")

	s := r.Snapshot()
	if s.Total != 4 {
		t.Fatalf("expected total 4, got %d", s.Total)
	}
	if s.Success != 2 {
		t.Fatalf("expected success 2, got %d", s.Success)
	}
	if s.Rejected != 1 {
		t.Fatalf("expected rejected 1, got %d", s.Rejected)
	}
	if s.Failure != 1 {
		t.Fatalf("expected failure 1, got %d", s.Failure)
	}
	if s.ByOperation["duel"].Success != 1 || s.ByOperation["duel"].Rejected != 1 {
		t.Fatalf("unexpected duel counts: %+v", s.ByOperation["duel"])
	}
	if s.ByOperation["activity.collect"].Failure != 1 {
		t.Fatalf("unexpected collect counts: %+v", s.ByOperation["activity.collect"])
	}
}
