package profile

import "xianverse/internal/domain/cultivation"

type Request struct {
	UserID string
}

type Response struct {
	Record  *cultivation.UserRecord    `json:"record"`
	Status  cultivation.ActivityStatus `json:"status"`
	Outlook cultivation.TierOutlook    `json:"outlook"`
}
