package breakthrough

import (
	"context"
	"errors"
	"testing"
	"time"

	"xianverse/internal/app/ports"
	"xianverse/internal/domain/cultivation"
)

type fakeUsers struct {
	records map[string]*cultivation.UserRecord
}

func (f *fakeUsers) GetByUserID(_ context.Context, userID string) (*cultivation.UserRecord, error) {
	rec, ok := f.records[userID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return rec.Clone(), nil
}

func (f *fakeUsers) SaveWithVersion(_ context.Context, record *cultivation.UserRecord, expectedVersion int64) error {
	stored, ok := f.records[record.UserID]
	if ok && stored.Version != expectedVersion {
		return ports.ErrConflict
	}
	if !ok && expectedVersion != 0 {
		return ports.ErrConflict
	}
	f.records[record.UserID] = record.Clone()
	return nil
}

func (f *fakeUsers) ListTop(_ context.Context, _ int) ([]*cultivation.UserRecord, error) {
	return nil, nil
}

func (f *fakeUsers) ListActive(_ context.Context) ([]*cultivation.UserRecord, error) {
	return nil, nil
}

type fakeEvents struct {
	appended []cultivation.DomainEvent
}

func (f *fakeEvents) Append(_ context.Context, _ string, events []cultivation.DomainEvent) error {
	f.appended = append(f.appended, events...)
	return nil
}

func (f *fakeEvents) ListByUserID(_ context.Context, _ string, _ int) ([]cultivation.DomainEvent, error) {
	return f.appended, nil
}

type fakeLock struct{}

func (fakeLock) RunLocked(ctx context.Context, _ []string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int   { return 0 }

var (
	_ ports.UserRepository  = (*fakeUsers)(nil)
	_ ports.EventRepository = (*fakeEvents)(nil)
	_ ports.UserLockManager = fakeLock{}
)

func TestExecute_SuccessPersistsAdvance(t *testing.T) {
	rec := cultivation.NewUserRecord("u1", cultivation.DefaultConfig())
	rec.Experience = 1500
	users := &fakeUsers{records: map[string]*cultivation.UserRecord{"u1": rec}}
	events := &fakeEvents{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	uc := UseCase{
		Lock:   fakeLock{},
		Users:  users,
		Events: events,
		Config: cultivation.DefaultConfig(),
		Rand:   fixedRand{f: 0.01},
		Now:    func() time.Time { return now },
	}
	resp, err := uc.Execute(context.Background(), Request{UserID: "u1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !resp.Outcome.Advanced {
		t.Fatalf("outcome = %+v, want advance", resp.Outcome)
	}
	if users.records["u1"].Tier != "后天境" {
		t.Fatalf("advance not persisted: %s", users.records["u1"].Tier)
	}
	if len(events.appended) != 1 || events.appended[0].Type != "breakthrough" {
		t.Fatalf("events = %+v", events.appended)
	}
}

func TestExecute_InsufficientExperienceLeavesStateUntouched(t *testing.T) {
	rec := cultivation.NewUserRecord("u1", cultivation.DefaultConfig())
	rec.Experience = 950
	rec.Version = 7
	users := &fakeUsers{records: map[string]*cultivation.UserRecord{"u1": rec}}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	uc := UseCase{
		Lock:   fakeLock{},
		Users:  users,
		Events: &fakeEvents{},
		Config: cultivation.DefaultConfig(),
		Rand:   fixedRand{},
		Now:    func() time.Time { return now },
	}
	_, err := uc.Execute(context.Background(), Request{UserID: "u1"})
	if !errors.Is(err, cultivation.ErrInsufficientExperience) {
		t.Fatalf("err = %v, want ErrInsufficientExperience", err)
	}
	if users.records["u1"].Version != 7 {
		t.Fatalf("record mutated on rejection")
	}
}
