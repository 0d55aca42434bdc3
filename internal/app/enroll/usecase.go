package enroll

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"xianverse/internal/app/ports"
	"xianverse/internal/app/shared/opmetrics"
	"xianverse/internal/app/shared/userstore"
	"xianverse/internal/domain/cultivation"
)

var ErrInvalidRequest = errors.New("invalid enroll request")

type UseCase struct {
	Lock    ports.UserLockManager
	Users   ports.UserRepository
	Metrics ports.OperationMetrics
	Config  cultivation.Config
	Now     func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.Username = strings.TrimSpace(req.Username)
	if req.UserID == "" {
		return Response{}, ErrInvalidRequest
	}

	var out Response
	err := u.Lock.RunLocked(ctx, []string{req.UserID}, func(ctx context.Context) error {
		rec, err := userstore.LoadOrCreate(ctx, u.Users, req.UserID, u.Config)
		if err != nil {
			return err
		}
		next, err := cultivation.Enroll(rec, req.Username, u.now())
		if err != nil {
			return err
		}
		if err := userstore.Save(ctx, u.Users, next); err != nil {
			return err
		}
		out = Response{
			Record:  next,
			Message: fmt.Sprintf("踏入修仙之路！当前境界：%s，灵石 %d 枚。", next.Tier, next.SpiritStones),
		}
		return nil
	})
	opmetrics.Record(u.Metrics, "enroll", err,
		cultivation.ErrAlreadyStarted,
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
