package enroll

import "xianverse/internal/domain/cultivation"

type Request struct {
	UserID   string
	Username string
}

type Response struct {
	Record  *cultivation.UserRecord `json:"record"`
	Message string                  `json:"message"`
}
