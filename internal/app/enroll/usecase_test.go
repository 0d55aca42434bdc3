package enroll

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

func (f *fakeUsers) SaveWithVersion(_ context.Context, record *cultivation.UserRecord, _ int64) error {
	f.records[record.UserID] = record.Clone()
	return nil
}

func (f *fakeUsers) ListTop(_ context.Context, _ int) ([]*cultivation.UserRecord, error) {
	return nil, nil
}

func (f *fakeUsers) ListActive(_ context.Context) ([]*cultivation.UserRecord, error) {
	return nil, nil
}

type fakeLock struct{}

func (fakeLock) RunLocked(ctx context.Context, _ []string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ ports.UserRepository = (*fakeUsers)(nil)

func TestExecute_StartsJourneyOnce(t *testing.T) {
	users := &fakeUsers{records: map[string]*cultivation.UserRecord{}}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc := UseCase{
		Lock:   fakeLock{},
		Users:  users,
		Config: cultivation.DefaultConfig(),
		Now:    func() time.Time { return now },
	}

	resp, err := uc.Execute(context.Background(), Request{UserID: "u1", Username: "张三"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !resp.Record.Started || resp.Record.Username != "张三" {
		t.Fatalf("record = %+v", resp.Record)
	}
	if resp.Record.SpiritStones != 100 || resp.Record.Tier != "江湖好手" {
		t.Fatalf("template not applied: %+v", resp.Record)
	}

	if _, err := uc.Execute(context.Background(), Request{UserID: "u1", Username: "张三"}); !errors.Is(err, cultivation.ErrAlreadyStarted) {
		t.Fatalf("second enroll err = %v, want ErrAlreadyStarted", err)
	}
}

func TestExecute_RejectsEmptyUserID(t *testing.T) {
	uc := UseCase{Lock: fakeLock{}, Users: &fakeUsers{records: map[string]*cultivation.UserRecord{}}, Config: cultivation.DefaultConfig()}
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest", err)
	}
}
