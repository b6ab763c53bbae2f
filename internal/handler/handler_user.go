package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shivanshkc/pinterestauth/internal/utils/errutils"
	"github.com/shivanshkc/pinterestauth/internal/utils/httputils"
)

// GetSelf returns the stored record of the logged-in user.
func (h *Handler) GetSelf(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, err := h.sessionClaims(r)
	if err != nil {
		httputils.WriteErr(w, err)
		return
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		slog.ErrorContext(ctx, "session has non-numeric user ID", "value", claims.UserID)
		httputils.WriteErr(w, errutils.Unauthorized())
		return
	}

	user, err := h.repo.GetUser(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "error in GetUser call", "error", err)
		httputils.WriteErr(w, err)
		return
	}

	httputils.Write(w, http.StatusOK, nil, user)
}
