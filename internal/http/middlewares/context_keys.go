package middlewares

const (
	CtxRequestID = "request_id"
	CtxMode      = "session.mode"
)
