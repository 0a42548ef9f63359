package handler

import (
	"errors"

	"user-profile-service/internal/domain"
	httpez "user-profile-service/internal/transport/http/ez"
)

// mapErr 领域错误 -> 统一 Action 错误
func mapErr(err error) error {
	var ve *domain.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ve):
		return httpez.Invalid(ve.Fields)
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNotFoundOrVerified):
		return httpez.NotFound(err.Error())
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrWrongPassword),
		errors.Is(err, domain.ErrUserBlocked):
		return httpez.Conflict(err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return httpez.Forbidden(err.Error())
	default:
		return httpez.Internal("internal error", err)
	}
}
