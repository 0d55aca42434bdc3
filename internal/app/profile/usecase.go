package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"xianverse/internal/app/ports"
	"xianverse/internal/app/shared/userstore"
	"xianverse/internal/domain/cultivation"
)

var ErrInvalidRequest = errors.New("invalid profile request")

type UseCase struct {
	Users  ports.UserRepository
	Config cultivation.Config
	Now    func() time.Time
}

// Execute returns a read-only snapshot: the record, the activity status and
// the next-tier outlook.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		return Response{}, ErrInvalidRequest
	}
	rec, err := userstore.LoadOrCreate(ctx, u.Users, req.UserID, u.Config)
	if err != nil {
		return Response{}, err
	}
	now := time.Now()
	if u.Now != nil {
		now = u.Now()
	}
	return Response{
		Record:  rec,
		Status:  cultivation.StatusOf(rec, now),
		Outlook: cultivation.Outlook(rec, u.Config, now),
	}, nil
}
