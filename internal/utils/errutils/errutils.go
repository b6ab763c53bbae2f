package errutils

import (
	"errors"
	"net/http"
	"strings"
)

// HTTPError is an error that carries an HTTP status code and the reasons for the failure.
//
// Its methods never modify the receiver, so the package level constructors can be safely
// used to create shared error values.
type HTTPError struct {
	// Status is the HTTP status code.
	Status int `json:"-"`
	// Code is the textual representation of the status, for example "BAD_REQUEST".
	Code string `json:"code"`
	// Reasons hold the details of the error.
	Reasons []string `json:"reasons,omitempty"`
}

// Error returns the code followed by all the reasons.
func (h *HTTPError) Error() string {
	if len(h.Reasons) == 0 {
		return h.Code
	}
	return h.Code + ": " + strings.Join(h.Reasons, "; ")
}

// WithReasonStr returns a copy of the error with the given reason added.
func (h *HTTPError) WithReasonStr(reason string) *HTTPError {
	clone := &HTTPError{Status: h.Status, Code: h.Code}
	clone.Reasons = append(append(clone.Reasons, h.Reasons...), reason)
	return clone
}

// WithReasonErr returns a copy of the error with the message of the given error added as a reason.
func (h *HTTPError) WithReasonErr(err error) *HTTPError {
	return h.WithReasonStr(err.Error())
}

// ToHTTPError converts any error to an *HTTPError. Errors that do not wrap an *HTTPError become a 500.
func ToHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return InternalServerError()
}

// BadRequest is for invalid input.
func BadRequest() *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Code: "BAD_REQUEST"}
}

// Unauthorized is for requests without valid credentials.
func Unauthorized() *HTTPError {
	return &HTTPError{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED"}
}

// Forbidden is for requests whose credentials are valid but not acceptable.
func Forbidden() *HTTPError {
	return &HTTPError{Status: http.StatusForbidden, Code: "FORBIDDEN"}
}

// NotFound is for unknown resources.
func NotFound() *HTTPError {
	return &HTTPError{Status: http.StatusNotFound, Code: "NOT_FOUND"}
}

// RequestTimeout is for flows that took too long.
func RequestTimeout() *HTTPError {
	return &HTTPError{Status: http.StatusRequestTimeout, Code: "REQUEST_TIMEOUT"}
}

// BadGateway is for failures of upstream services.
func BadGateway() *HTTPError {
	return &HTTPError{Status: http.StatusBadGateway, Code: "BAD_GATEWAY"}
}

// InternalServerError is for everything unexpected.
func InternalServerError() *HTTPError {
	return &HTTPError{Status: http.StatusInternalServerError, Code: "INTERNAL_SERVER_ERROR"}
}
