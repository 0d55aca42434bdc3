package combat

import "xianverse/internal/domain/cultivation"

type DuelRequest struct {
	ActorID  string
	TargetID string
}

type DuelResponse struct {
	Outcome cultivation.DuelOutcome `json:"outcome"`
	Message string                  `json:"message"`
}

type StealRequest struct {
	ActorID  string
	TargetID string
}

type StealResponse struct {
	Outcome cultivation.StealOutcome `json:"outcome"`
	Message string                   `json:"message"`
}
