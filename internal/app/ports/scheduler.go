package ports

import "time"

// CompletionScheduler arms one pending completion timer per user. Arming a
// user who already has a timer replaces it.
type CompletionScheduler interface {
	Arm(userID string, endAt time.Time, target string)
	Cancel(userID string)
}
