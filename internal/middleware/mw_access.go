package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// requestIDHeader carries the ID that correlates all logs of a request.
const requestIDHeader = "X-Request-ID"

// AccessLogger logs every request along with its outcome and latency.
func (m Middleware) AccessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Reuse the request ID if the reverse proxy already attached one.
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		// Wrap the writer to record the status code.
		cw := &responseWriterWithCode{ResponseWriter: w, statusCode: http.StatusOK}

		slog.InfoContext(r.Context(), "request received", "id", requestID,
			"method", r.Method, "url", r.URL.Path)

		next.ServeHTTP(cw, r)

		slog.InfoContext(r.Context(), "request completed", "id", requestID,
			"status", cw.statusCode, "latency", time.Since(start))
	})
}

// responseWriterWithCode is a wrapper for http.ResponseWriter for recording the response code.
type responseWriterWithCode struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseWriterWithCode) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
