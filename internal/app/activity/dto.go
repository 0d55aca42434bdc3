package activity

import (
	"time"

	"xianverse/internal/domain/cultivation"
)

type BeginRequest struct {
	UserID string
	Kind   cultivation.ActivityKind
	Hours  float64
	// Target is the notification destination armed on the completion
	// timer; empty falls back to the user id.
	Target string
}

type BeginResponse struct {
	Kind       cultivation.ActivityKind `json:"kind"`
	EndAt      time.Time                `json:"end_at"`
	Multiplier float64                  `json:"multiplier"`
	Message    string                   `json:"message"`
}

type StatusRequest struct {
	UserID string
}

type StatusResponse struct {
	Status cultivation.ActivityStatus `json:"status"`
}

type CollectRequest struct {
	UserID string
}

type CollectResponse struct {
	Outcome cultivation.ActivityOutcome `json:"outcome"`
	Message string                      `json:"message"`
}
