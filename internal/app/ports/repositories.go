package ports

import (
	"context"

	"xianverse/internal/domain/cultivation"
)

type UserRepository interface {
	GetByUserID(ctx context.Context, userID string) (*cultivation.UserRecord, error)
	SaveWithVersion(ctx context.Context, record *cultivation.UserRecord, expectedVersion int64) error
	// ListTop returns records ordered by (level, experience) descending.
	ListTop(ctx context.Context, limit int) ([]*cultivation.UserRecord, error)
	// ListActive returns every record with a pending activity, used to
	// re-arm completion timers after a restart.
	ListActive(ctx context.Context) ([]*cultivation.UserRecord, error)
}

type EventRepository interface {
	Append(ctx context.Context, userID string, events []cultivation.DomainEvent) error
	ListByUserID(ctx context.Context, userID string, limit int) ([]cultivation.DomainEvent, error)
}
