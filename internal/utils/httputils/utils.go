package httputils

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shivanshkc/pinterestauth/internal/utils/errutils"
)

// RoundTripFunc is used to override the client transport if needed.
// This func implements http.RoundTripper interface.
type RoundTripFunc func(req *http.Request) *http.Response

// RoundTrip will execute the round tripper func.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

// Is2xx reports whether the given status code is a success code.
func Is2xx(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

// Write writes the given status, headers and JSON body to the response writer.
// A nil body writes no body at all.
func Write(w http.ResponseWriter, status int, headers map[string]string, body any) {
	for key, value := range headers {
		w.Header().Set(key, value)
	}

	if body == nil {
		w.WriteHeader(status)
		return
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		slog.Error("error in json.Marshal call", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(bodyBytes); err != nil {
		slog.Error("error in ResponseWriter.Write call", "error", err)
	}
}

// WriteErr writes the given error to the response writer.
// Errors that are not *errutils.HTTPError are written as 500 without exposing their message.
func WriteErr(w http.ResponseWriter, err error) {
	httpErr := errutils.ToHTTPError(err)
	Write(w, httpErr.Status, nil, httpErr)
}
