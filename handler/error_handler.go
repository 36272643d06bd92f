package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/giftshop/memberauth/pkg/binder"
	"github.com/giftshop/memberauth/pkg/i18n"
	"github.com/giftshop/memberauth/pkg/logger"
	"github.com/giftshop/memberauth/pkg/validator"
)

// ErrorMapper turns a domain error into an HTTPError. It returns false for
// errors it does not recognize.
type ErrorMapper func(err error) (*HTTPError, bool)

type ErrorHandlerConfig struct {
	Translator *i18n.Translator
	Logger     *slog.Logger
	Mappers    []ErrorMapper
}

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code      string              `json:"code"`
	Message   string              `json:"message"`
	Details   map[string][]string `json:"details,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

// NewErrorHandler answers errors with {"error":{"code","message"}} where the
// message is translated into the request locale. Mappers run first, then
// HTTPError, validation and binding errors are recognized. Anything else is
// logged and answered 500.
func NewErrorHandler(cfg ErrorHandlerConfig) ErrorHandler {
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx Context, err error) {
		httpErr := resolve(err, cfg.Mappers)

		if httpErr.Status >= http.StatusInternalServerError {
			log.ErrorContext(ctx, "request failed",
				logger.StatusCode(httpErr.Status),
				logger.Error(err),
			)
		} else {
			log.DebugContext(ctx, "request rejected",
				logger.StatusCode(httpErr.Status),
				slog.String("code", httpErr.Code),
				logger.Error(err),
			)
		}

		writeJSONError(ctx, ctx.ResponseWriter(), httpErr, cfg.Translator)
	}
}

// HTTPErrorFunc adapts h to the func(w, r, err) shape used by middlewares.
func HTTPErrorFunc(h ErrorHandler) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		h(NewContext(w, r), err)
	}
}

func resolve(err error, mappers []ErrorMapper) *HTTPError {
	for _, m := range mappers {
		if httpErr, ok := m(err); ok {
			return httpErr
		}
	}
	if httpErr, ok := AsHTTPError(err); ok {
		return httpErr
	}
	if verrs, ok := validator.Extract(err); ok {
		httpErr := ErrValidation.Wrap(err)
		httpErr.Details = verrs.Map()
		return httpErr
	}
	if binder.IsBindingError(err) {
		if errors.Is(err, binder.ErrUnsupportedMediaType) || errors.Is(err, binder.ErrMissingContentType) {
			return &HTTPError{Status: http.StatusUnsupportedMediaType, Code: "unsupported_media_type", Key: ErrBadRequest.Key, Message: ErrBadRequest.Message, Err: err}
		}
		return ErrBadRequest.Wrap(err)
	}
	return ErrInternal.Wrap(err)
}

func writeJSONError(ctx context.Context, w http.ResponseWriter, e *HTTPError, tr *i18n.Translator) {
	payload := errorPayload{
		Code:      e.Code,
		Message:   e.Message,
		RequestID: middleware.GetReqID(ctx),
	}
	if tr != nil {
		payload.Message = tr.Td(i18n.GetLocale(ctx), e.Key, e.Message)
	}
	if len(e.Details) > 0 {
		payload.Details = make(map[string][]string, len(e.Details))
		for field, keys := range e.Details {
			msgs := make([]string, 0, len(keys))
			for _, key := range keys {
				if tr != nil {
					key = tr.Tc(ctx, key)
				}
				msgs = append(msgs, key)
			}
			payload.Details[field] = msgs
		}
	}

	_ = jsonResponse{status: e.Status, body: errorBody{Error: payload}}.Render(w, nil)
}
