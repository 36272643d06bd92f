package handler

import (
	"errors"
	"net/http"
)

var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError is an error with the status, machine code and message catalog
// key used to answer the client. Message is the untranslated fallback.
type HTTPError struct {
	Status  int
	Code    string
	Key     string
	Message string
	Details map[string][]string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error { return e.Err }

// AsHTTPError finds an *HTTPError in err's chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// Common errors answered by the error handler.
var (
	ErrBadRequest       = &HTTPError{Status: http.StatusBadRequest, Code: "bad_request", Key: "http.bad_request", Message: "bad request"}
	ErrUnauthorized     = &HTTPError{Status: http.StatusUnauthorized, Code: "unauthorized", Key: "auth.unauthorized", Message: "authentication required"}
	ErrValidation       = &HTTPError{Status: http.StatusUnprocessableEntity, Code: "invalid", Key: "http.invalid_input", Message: "invalid input"}
	ErrNotFound         = &HTTPError{Status: http.StatusNotFound, Code: "not_found", Key: "http.not_found", Message: "not found"}
	ErrMethodNotAllowed = &HTTPError{Status: http.StatusMethodNotAllowed, Code: "method_not_allowed", Key: "http.method_not_allowed", Message: "method not allowed"}
	ErrInternal         = &HTTPError{Status: http.StatusInternalServerError, Code: "internal", Key: "http.internal", Message: "internal server error"}
)

// Wrap returns a copy of e carrying err as its cause.
func (e *HTTPError) Wrap(err error) *HTTPError {
	c := *e
	c.Err = err
	return &c
}
