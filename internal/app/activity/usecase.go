package activity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"xianverse/internal/app/ports"
	"xianverse/internal/app/shared/eventlog"
	"xianverse/internal/app/shared/opmetrics"
	"xianverse/internal/app/shared/userstore"
	"xianverse/internal/domain/cultivation"
)

var ErrInvalidRequest = errors.New("invalid activity request")

type UseCase struct {
	Lock      ports.UserLockManager
	Users     ports.UserRepository
	Events    ports.EventRepository
	Scheduler ports.CompletionScheduler
	Metrics   ports.OperationMetrics
	Config    cultivation.Config
	Rand      cultivation.Rand
	Now       func() time.Time
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

// Begin starts a timed activity and arms its completion timer.
func (u UseCase) Begin(ctx context.Context, req BeginRequest) (BeginResponse, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" || req.Hours < 0 {
		return BeginResponse{}, ErrInvalidRequest
	}
	target := req.Target
	if target == "" {
		target = req.UserID
	}

	var out BeginResponse
	err := u.Lock.RunLocked(ctx, []string{req.UserID}, func(ctx context.Context) error {
		rec, err := userstore.LoadOrCreate(ctx, u.Users, req.UserID, u.Config)
		if err != nil {
			return err
		}
		next, state, err := cultivation.Begin(rec, req.Kind, req.Hours, u.Config, u.now())
		if err != nil {
			return err
		}
		if err := userstore.Save(ctx, u.Users, next); err != nil {
			return err
		}
		u.Scheduler.Arm(req.UserID, state.EndAt, target)
		out = BeginResponse{
			Kind:       state.Kind,
			EndAt:      state.EndAt,
			Multiplier: state.RewardMultiplier,
			Message:    fmt.Sprintf("你已进入%s状态，将持续到 %s", cultivation.KindLabel(state.Kind), state.EndAt.Format("15:04:05")),
		}
		return nil
	})
	u.record("activity.begin", err)
	return out, err
}

// Status reads the activity state without taking the user lock.
func (u UseCase) Status(ctx context.Context, req StatusRequest) (StatusResponse, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		return StatusResponse{}, ErrInvalidRequest
	}
	rec, err := userstore.LoadOrCreate(ctx, u.Users, req.UserID, u.Config)
	if err != nil {
		return StatusResponse{}, err
	}
	return StatusResponse{Status: cultivation.StatusOf(rec, u.now())}, nil
}

// Collect settles the pending activity and pays out. The completion timer is
// cancelled so a later firing cannot race a manual collection.
func (u UseCase) Collect(ctx context.Context, req CollectRequest) (CollectResponse, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		return CollectResponse{}, ErrInvalidRequest
	}

	var out CollectResponse
	err := u.Lock.RunLocked(ctx, []string{req.UserID}, func(ctx context.Context) error {
		rec, err := u.Users.GetByUserID(ctx, req.UserID)
		if errors.Is(err, ports.ErrNotFound) {
			return cultivation.ErrNoActivity
		}
		if err != nil {
			return err
		}
		now := u.now()
		next, outcome, err := cultivation.Collect(rec, u.Config, u.Rand, now)
		if err != nil {
			return err
		}
		if err := userstore.Save(ctx, u.Users, next); err != nil {
			return err
		}
		u.Scheduler.Cancel(req.UserID)
		message := cultivation.OutcomeMessage(outcome)
		if err := u.Events.Append(ctx, req.UserID, []cultivation.DomainEvent{
			eventlog.New(eventlog.TypeActivityCollected, now, map[string]any{
				"outcome": outcome,
				"message": message,
			}),
		}); err != nil {
			return err
		}
		out = CollectResponse{Outcome: outcome, Message: message}
		return nil
	})
	u.record("activity.collect", err)
	return out, err
}

func (u UseCase) record(operation string, err error) {
	opmetrics.Record(u.Metrics, operation, err,
		cultivation.ErrAlreadyActive,
		cultivation.ErrNoActivity,
		cultivation.ErrNotYetDue,
		cultivation.ErrTooShort,
		ErrInvalidRequest,
	)
}
