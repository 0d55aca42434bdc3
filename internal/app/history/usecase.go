package history

import (
	"context"
	"errors"
	"strings"

	"xianverse/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid history request")

const defaultLimit = 20

type UseCase struct {
	Events ports.EventRepository
}

// Execute lists the newest domain events for a user, most recent first.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	events, err := u.Events.ListByUserID(ctx, req.UserID, limit)
	if err != nil {
		return Response{}, err
	}
	return Response{Events: events}, nil
}
