package ports

import "context"

// UserLockManager serializes mutations per user. Implementations must
// acquire the ids in a deterministic order so two-user operations cannot
// deadlock against each other.
type UserLockManager interface {
	RunLocked(ctx context.Context, userIDs []string, fn func(ctx context.Context) error) error
}
