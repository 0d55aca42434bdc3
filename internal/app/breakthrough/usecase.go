package breakthrough

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

var ErrInvalidRequest = errors.New("invalid breakthrough request")

type UseCase struct {
	Lock    ports.UserLockManager
	Users   ports.UserRepository
	Events  ports.EventRepository
	Metrics ports.OperationMetrics
	Config  cultivation.Config
	Rand    cultivation.Rand
	Now     func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		return Response{}, ErrInvalidRequest
	}

	var out Response
	err := u.Lock.RunLocked(ctx, []string{req.UserID}, func(ctx context.Context) error {
		rec, err := userstore.LoadOrCreate(ctx, u.Users, req.UserID, u.Config)
		if err != nil {
			return err
		}
		now := u.now()
		next, outcome, err := cultivation.ResolveBreakthrough(rec, u.Config, req.AssistItem, u.Rand, now)
		if err != nil {
			return err
		}
		if err := userstore.Save(ctx, u.Users, next); err != nil {
			return err
		}
		message := breakthroughMessage(outcome)
		if err := u.Events.Append(ctx, req.UserID, []cultivation.DomainEvent{
			eventlog.New(eventlog.TypeBreakthrough, now, map[string]any{
				"outcome": outcome,
				"message": message,
			}),
		}); err != nil {
			return err
		}
		out = Response{Outcome: outcome, Message: message}
		return nil
	})
	opmetrics.Record(u.Metrics, "breakthrough", err,
		cultivation.ErrAlreadyActive,
		cultivation.ErrAtMaxTier,
		cultivation.ErrInsufficientExperience,
		cultivation.ErrOnCooldown,
		cultivation.ErrUnknownCatalogEntry,
		cultivation.ErrItemNotOwned,
		ErrInvalidRequest,
	)
	return out, err
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func breakthroughMessage(out cultivation.BreakthroughOutcome) string {
	if out.Advanced {
		return fmt.Sprintf("突破成功！境界提升：%s → %s", out.OldTier, out.NewTier)
	}
	if out.AssistUsed {
		return "突破失败，丹药护体，修为未损。再接再厉！"
	}
	return fmt.Sprintf("突破失败，走火入魔损失了 %d 点修为...", out.ExpLost)
}
