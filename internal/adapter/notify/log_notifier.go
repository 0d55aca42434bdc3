package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes completion announcements to the application log. It
// stands in for a chat-platform push adapter in deployments without one.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return LogNotifier{log: log}
}

func (n LogNotifier) Notify(_ context.Context, target, message string) error {
	n.log.Info("notify",
		zap.String("target", target),
		zap.String("message", message),
	)
	return nil
}
