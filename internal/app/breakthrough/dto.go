package breakthrough

import "xianverse/internal/domain/cultivation"

type Request struct {
	UserID string
	// AssistItem optionally names a consumable that shields the failure
	// experience loss. Empty means an unassisted attempt.
	AssistItem string
}

type Response struct {
	Outcome cultivation.BreakthroughOutcome `json:"outcome"`
	Message string                          `json:"message"`
}
