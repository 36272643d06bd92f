package account

import (
	"errors"
	"net/http"

	"github.com/giftshop/memberauth/handler"
	"github.com/giftshop/memberauth/pkg/auth"
	"github.com/giftshop/memberauth/pkg/jwt"
	"github.com/giftshop/memberauth/pkg/validator"
)

var errTokenExpired = &handler.HTTPError{
	Status:  http.StatusUnauthorized,
	Code:    "token_expired",
	Key:     "auth.token_expired",
	Message: "token expired",
}

// MapError translates auth and jwt errors into HTTP errors.
func MapError(err error) (*handler.HTTPError, bool) {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		httpErr := &handler.HTTPError{
			Status:  statusFor(authErr),
			Code:    authErr.Kind.String(),
			Key:     authErr.Key,
			Message: authErr.Message,
			Err:     err,
		}
		if verrs, ok := validator.Extract(err); ok {
			httpErr.Details = verrs.Map()
		}
		return httpErr, true
	}

	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return errTokenExpired.Wrap(err), true
	case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrMissingToken):
		return handler.ErrUnauthorized.Wrap(err), true
	}
	return nil, false
}

func statusFor(e *auth.Error) int {
	switch e.Kind {
	case auth.KindInvalid:
		return http.StatusUnprocessableEntity
	case auth.KindAlreadyExists:
		return http.StatusConflict
	case auth.KindAccountNotFound:
		return http.StatusNotFound
	case auth.KindWrongPassword:
		return http.StatusUnauthorized
	case auth.KindExternalAuthFailed:
		if auth.ProviderRejected(e) {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
