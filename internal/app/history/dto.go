package history

import "xianverse/internal/domain/cultivation"

type Request struct {
	UserID string
	Limit  int
}

type Response struct {
	Events []cultivation.DomainEvent `json:"events"`
}
