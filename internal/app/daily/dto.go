package daily

import "xianverse/internal/domain/cultivation"

type Request struct {
	UserID string
}

type Response struct {
	Outcome cultivation.DailyOutcome `json:"outcome"`
	Message string                   `json:"message"`
}
