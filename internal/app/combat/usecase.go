package combat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"xianverse/internal/app/ports"
	"xianverse/internal/app/shared/eventlog"
	"xianverse/internal/app/shared/opmetrics"
	"xianverse/internal/domain/cultivation"
)

var ErrInvalidRequest = errors.New("invalid combat request")

type UseCase struct {
	Lock    ports.UserLockManager
	Users   ports.UserRepository
	Events  ports.EventRepository
	Metrics ports.OperationMetrics
	Config  cultivation.Config
	Rand    cultivation.Rand
	Now     func() time.Time
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

// loadPair fetches both records. Unknown targets are an expected game-rule
// rejection, not a repository error.
func (u UseCase) loadPair(ctx context.Context, actorID, targetID string) (*cultivation.UserRecord, *cultivation.UserRecord, error) {
	actor, err := u.Users.GetByUserID(ctx, actorID)
	if errors.Is(err, ports.ErrNotFound) {
		actor = cultivation.NewUserRecord(actorID, u.Config)
	} else if err != nil {
		return nil, nil, err
	}
	target, err := u.Users.GetByUserID(ctx, targetID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil, fmt.Errorf("%w: %s", cultivation.ErrInvalidTarget, targetID)
	}
	if err != nil {
		return nil, nil, err
	}
	return actor, target, nil
}

func (u UseCase) Duel(ctx context.Context, req DuelRequest) (DuelResponse, error) {
	req.ActorID = strings.TrimSpace(req.ActorID)
	req.TargetID = strings.TrimSpace(req.TargetID)
	if req.ActorID == "" || req.TargetID == "" {
		return DuelResponse{}, ErrInvalidRequest
	}
	if req.ActorID == req.TargetID {
		return DuelResponse{}, fmt.Errorf("%w: cannot duel yourself", cultivation.ErrInvalidTarget)
	}

	var out DuelResponse
	err := u.Lock.RunLocked(ctx, []string{req.ActorID, req.TargetID}, func(ctx context.Context) error {
		actor, target, err := u.loadPair(ctx, req.ActorID, req.TargetID)
		if err != nil {
			return err
		}
		now := u.now()
		nextActor, nextTarget, outcome, err := cultivation.ResolveDuel(actor, target, u.Config, u.Rand, now)
		if err != nil {
			return err
		}
		if err := u.savePair(ctx, nextActor, nextTarget, true); err != nil {
			return err
		}
		message := duelMessage(target, outcome)
		if err := u.Events.Append(ctx, req.ActorID, []cultivation.DomainEvent{
			eventlog.New(eventlog.TypeDuel, now, map[string]any{
				"target":  req.TargetID,
				"outcome": outcome,
				"message": message,
			}),
		}); err != nil {
			return err
		}
		out = DuelResponse{Outcome: outcome, Message: message}
		return nil
	})
	opmetrics.Record(u.Metrics, "duel", err,
		cultivation.ErrAlreadyActive,
		cultivation.ErrInvalidTarget,
		cultivation.ErrOnCooldown,
		ErrInvalidRequest,
	)
	return out, err
}

func (u UseCase) Steal(ctx context.Context, req StealRequest) (StealResponse, error) {
	req.ActorID = strings.TrimSpace(req.ActorID)
	req.TargetID = strings.TrimSpace(req.TargetID)
	if req.ActorID == "" || req.TargetID == "" {
		return StealResponse{}, ErrInvalidRequest
	}
	if req.ActorID == req.TargetID {
		return StealResponse{}, fmt.Errorf("%w: cannot steal from yourself", cultivation.ErrInvalidTarget)
	}

	var out StealResponse
	err := u.Lock.RunLocked(ctx, []string{req.ActorID, req.TargetID}, func(ctx context.Context) error {
		actor, target, err := u.loadPair(ctx, req.ActorID, req.TargetID)
		if err != nil {
			return err
		}
		now := u.now()
		nextActor, nextTarget, outcome, err := cultivation.ResolveSteal(actor, target, u.Config, u.Rand, now)
		if err != nil {
			return err
		}
		if err := u.savePair(ctx, nextActor, nextTarget, outcome.Succeeded); err != nil {
			return err
		}
		message := stealMessage(target, outcome)
		if err := u.Events.Append(ctx, req.ActorID, []cultivation.DomainEvent{
			eventlog.New(eventlog.TypeSteal, now, map[string]any{
				"target":  req.TargetID,
				"outcome": outcome,
				"message": message,
			}),
		}); err != nil {
			return err
		}
		out = StealResponse{Outcome: outcome, Message: message}
		return nil
	})
	opmetrics.Record(u.Metrics, "steal", err,
		cultivation.ErrAlreadyActive,
		cultivation.ErrInvalidTarget,
		cultivation.ErrOnCooldown,
		ErrInvalidRequest,
	)
	return out, err
}

// savePair persists both records, skipping the target when the resolver did
// not change it (a failed steal leaves the target untouched).
func (u UseCase) savePair(ctx context.Context, actor, target *cultivation.UserRecord, targetChanged bool) error {
	if err := u.Users.SaveWithVersion(ctx, actor, actor.Version-1); err != nil {
		return err
	}
	if !targetChanged {
		return nil
	}
	return u.Users.SaveWithVersion(ctx, target, target.Version-1)
}

func duelMessage(target *cultivation.UserRecord, out cultivation.DuelOutcome) string {
	name := target.Username
	if name == "" {
		name = target.UserID
	}
	if out.ActorWon {
		return fmt.Sprintf("你与%s切磋获胜，夺得 %d 点修为！", name, out.ExpDelta)
	}
	return fmt.Sprintf("你不敌%s，损失了 %d 点修为...", name, out.LoserLoss)
}

func stealMessage(target *cultivation.UserRecord, out cultivation.StealOutcome) string {
	name := target.Username
	if name == "" {
		name = target.UserID
	}
	if out.Succeeded {
		return fmt.Sprintf("你神不知鬼不觉地从%s那里偷走了 %d 灵石！", name, out.Amount)
	}
	return fmt.Sprintf("偷窃失手被%s抓个正着，赔偿了 %d 灵石...", name, out.Penalty)
}
