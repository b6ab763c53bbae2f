package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/shivanshkc/pinterestauth/internal/utils/httputils"
)

// defaultAllowedOrigin assumes that the service sits behind a reverse proxy running on the same machine.
const defaultAllowedOrigin = "http://localhost"

// Middleware implements all the REST middleware methods.
type Middleware struct {
	// AllowedOrigin is sent as the Access-Control-Allow-Origin header. Empty means defaultAllowedOrigin.
	AllowedOrigin string
}

// Recovery converts panics into 500 responses.
func (m Middleware) Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			// Recover the panic.
			errAny := recover()
			if errAny == nil {
				return
			}

			// Stack for debugging.
			stack := string(debug.Stack())
			// Log.
			slog.ErrorContext(r.Context(), "panic occurred during request execution",
				"err", errAny, "stack", stack)

			// Convert to error for handling.
			err, ok := errAny.(error)
			if !ok {
				err = fmt.Errorf("recover returned a non-error type value: %v", errAny)
			}

			// Response.
			httputils.WriteErr(w, err)
		}()

		// Next middleware or handler.
		next.ServeHTTP(w, r)
	})
}

// CORS middleware attaches the necessary CORS headers.
func (m Middleware) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := m.AllowedOrigin
		if origin == "" {
			origin = defaultAllowedOrigin
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		// Allow credentials (cookies, HTTP authentication).
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		// Cache preflight requests for 1 hour
		w.Header().Set("Access-Control-Max-Age", "3600")

		// The API only serves reads.
		w.Header().Set("Access-Control-Allow-Methods", fmt.Sprintf("%s, %s, %s", http.MethodGet,
			http.MethodHead, http.MethodOptions))

		// Allow common headers.
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, "+
			"Accept-Encoding, X-Requested-With, "+requestIDHeader)

		// Handle preflight requests.
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Next middleware or handler.
		next.ServeHTTP(w, r)
	})
}
