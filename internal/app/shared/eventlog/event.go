package eventlog

import (
	"time"

	"github.com/google/uuid"

	"xianverse/internal/domain/cultivation"
)

// Event types appended to the per-user history log.
const (
	TypeActivityCollected = "activity_collected"
	TypeBreakthrough      = "breakthrough"
	TypeDuel              = "duel"
	TypeSteal             = "steal"
	TypeDailyClaim        = "daily_claim"
)

func New(eventType string, at time.Time, payload map[string]any) cultivation.DomainEvent {
	return cultivation.DomainEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: at,
		Payload:    payload,
	}
}
