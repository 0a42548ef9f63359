package response

// 业务错误码，直接沿用 HTTP 语义；HTTP 状态码恒为 200
const (
	CodeOK            = 0
	CodeBadRequest    = 400
	CodeUnauthorized  = 401
	CodeForbidden     = 403
	CodeNotFound      = 404
	CodeConflict      = 409
	CodeTooLarge      = 413
	CodeUnprocessable = 422
	CodeTooMany       = 429
	CodeServerError   = 500
	CodeUnavailable   = 503
	CodeTimeout       = 504
)

// CodeMsgMap 默认 msg，调用方可覆盖
var CodeMsgMap = map[int]string{
	CodeOK:            "OK",
	CodeBadRequest:    "Bad Request",
	CodeUnauthorized:  "Unauthorized",
	CodeForbidden:     "Forbidden",
	CodeNotFound:      "Not Found",
	CodeConflict:      "Conflict",
	CodeTooLarge:      "Payload Too Large",
	CodeUnprocessable: "Unprocessable Entity",
	CodeTooMany:       "Too Many Requests",
	CodeServerError:   "Internal Server Error",
	CodeUnavailable:   "Service Unavailable",
	CodeTimeout:       "Gateway Timeout",
}
