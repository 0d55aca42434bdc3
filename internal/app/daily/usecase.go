package daily

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

var ErrInvalidRequest = errors.New("invalid daily claim request")

type UseCase struct {
	Lock    ports.UserLockManager
	Users   ports.UserRepository
	Events  ports.EventRepository
	Metrics ports.OperationMetrics
	Config  cultivation.Config
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
		next, outcome, err := cultivation.ResolveDailyClaim(rec, u.Config, now)
		if err != nil {
			return err
		}
		if err := userstore.Save(ctx, u.Users, next); err != nil {
			return err
		}
		message := fmt.Sprintf("签到成功！连续签到 %d 天，获得 %d 灵石和 %d 点修为！", outcome.Streak, outcome.StonesGain, outcome.ExpGain)
		if err := u.Events.Append(ctx, req.UserID, []cultivation.DomainEvent{
			eventlog.New(eventlog.TypeDailyClaim, now, map[string]any{
				"outcome": outcome,
				"message": message,
			}),
		}); err != nil {
			return err
		}
		out = Response{Outcome: outcome, Message: message}
		return nil
	})
	opmetrics.Record(u.Metrics, "daily.claim", err,
		cultivation.ErrOnCooldown,
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
