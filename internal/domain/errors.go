package domain

import (
	"errors"

	"user-profile-service/internal/core/validate"
)

// 对外错误码即错误文本
var (
	ErrUserNotFound       = errors.New("USER_DOES_NOT_EXIST")
	ErrEmailTaken         = errors.New("EMAIL_ALREADY_EXISTS")
	ErrWrongPassword      = errors.New("WRONG_PASSWORD")
	ErrUserBlocked        = errors.New("BLOCKED_USER")
	ErrNotFoundOrVerified = errors.New("NOT_FOUND_OR_ALREADY_VERIFIED")
	ErrForbidden          = errors.New("FORBIDDEN")
)

// ValidationError 模型层字段约束失败
type ValidationError struct {
	Fields validate.Errors
}

func (e *ValidationError) Error() string { return "user validation failed: " + e.Fields.String() }
