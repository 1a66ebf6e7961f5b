package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserRole  CtxKey = "Role"
	KeyUserLogin CtxKey = "Login"
	KeyRequestID CtxKey = "RequestID"
)
