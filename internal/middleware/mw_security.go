package middleware

import (
	"net/http"
)

// securityHeaders are attached to every response, redirects and errors included.
var securityHeaders = map[string]string{
	// Browsers must not guess the Content-Type of the JSON responses.
	"X-Content-Type-Options": "nosniff",
	// Session details and user records must not be cached, nor reachable through the back button.
	"Cache-Control": "no-store, max-age=0",
	// The auth redirect must not be rendered in a frame, which would allow clickjacking of the consent page.
	// X-Frame-Options is for older browsers, frame-ancestors for the rest.
	"X-Frame-Options":         "DENY",
	"Content-Security-Policy": "frame-ancestors 'none'",
	// The callback URL carries the authorization code and state, so it must not leak to the next page.
	"Referrer-Policy": "no-referrer",
}

// Security adds the headers that protect the OAuth flow and the session-bearing responses.
//
// Strict-Transport-Security is left to the reverse proxy that terminates TLS.
func (m Middleware) Security(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for key, value := range securityHeaders {
			w.Header().Set(key, value)
		}

		next.ServeHTTP(w, r)
	})
}
