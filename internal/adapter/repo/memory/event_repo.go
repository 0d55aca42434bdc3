package memory

import (
	"context"

	"xianverse/internal/domain/cultivation"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, userID string, events []cultivation.DomainEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events[userID] = append(r.store.events[userID], events...)
	return nil
}

// ListByUserID returns the newest events first.
func (r EventRepo) ListByUserID(_ context.Context, userID string, limit int) ([]cultivation.DomainEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	stored := r.store.events[userID]
	out := make([]cultivation.DomainEvent, 0, min(limit, len(stored)))
	for i := len(stored) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, stored[i])
	}
	return out, nil
}
