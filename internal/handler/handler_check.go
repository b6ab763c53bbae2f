package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/shivanshkc/pinterestauth/internal/session"
	"github.com/shivanshkc/pinterestauth/internal/utils/errutils"
	"github.com/shivanshkc/pinterestauth/internal/utils/httputils"
)

// Check performs an authentication check on the given request.
// Upon success, the user's details are returned as headers so that a reverse proxy can forward them.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	claims, err := h.sessionClaims(r)
	if err != nil {
		httputils.WriteErr(w, err)
		return
	}

	headers := map[string]string{
		"X-Auth-User-ID":  claims.UserID,
		"X-Auth-Provider": claims.Provider,
		"X-Auth-Name":     claims.DisplayName,
		"X-Auth-Picture":  claims.PictureURL,
	}

	httputils.Write(w, http.StatusOK, headers, nil)
}

// sessionClaims verifies the session cookie of the request and returns its claims.
// The returned error is always an *errutils.HTTPError.
func (h *Handler) sessionClaims(r *http.Request) (session.Claims, error) {
	ctx := r.Context()

	// Get cookie for authentication.
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		// Known error.
		if errors.Is(err, http.ErrNoCookie) {
			slog.ErrorContext(ctx, "no cookie in the request")
			return session.Claims{}, errutils.Unauthorized()
		}
		// Unexpected error.
		slog.ErrorContext(ctx, "failed to get cookie from request", "error", err)
		return session.Claims{}, errutils.InternalServerError()
	}

	// Verify the token and obtain its claims.
	claims, err := h.sessions.Verify(cookie.Value)
	if err != nil {
		slog.ErrorContext(ctx, "failed to verify session token", "error", err)
		return session.Claims{}, errutils.Unauthorized()
	}

	return claims, nil
}
