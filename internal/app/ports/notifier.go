package ports

import "context"

// Notifier pushes a completion message to a delivery target. Failures are
// logged by the caller and never roll back an applied payout.
type Notifier interface {
	Notify(ctx context.Context, target string, message string) error
}
