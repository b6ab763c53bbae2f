package handler

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/shivanshkc/pinterestauth/internal/utils/errutils"
	"github.com/shivanshkc/pinterestauth/internal/utils/httputils"
)

// stateIDExpiry is the max allowed time for a provider to invoke the callback API.
// If the provider is too late, the state ID will be expired and the flow will fail.
//
// This is a var and not a const so it can be modified for testing purposes.
var stateIDExpiry = time.Minute

var (
	errUnknownRedirectURL  = errutils.BadRequest().WithReasonStr("redirect_url is not allowed")
	errUnsupportedProvider = errutils.BadRequest().WithReasonStr("provider is not supported")
)

// stateValue is stored against every state ID for the duration of an OAuth flow.
type stateValue struct {
	// ClientCallbackURL is where the flow ends, successful or not.
	ClientCallbackURL string
}

// Auth starts the OAuth flow by redirecting the caller to the specified provider's authentication page.
func (h *Handler) Auth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Provider is a path parameter and so it will always be present.
	providerName := mux.Vars(r)["provider"]
	// Once authentication is done, the flow will end on this URL.
	clientCallbackURL := r.URL.Query().Get("redirect_url")

	// Provider name validation.
	if err := validateProvider(providerName); err != nil {
		slog.ErrorContext(ctx, "invalid provider", "value", providerName, "error", err)
		httputils.WriteErr(w, errutils.BadRequest().WithReasonErr(err))
		return
	}

	// Client callback URL validation.
	if err := validateClientCallbackURL(clientCallbackURL); err != nil {
		slog.ErrorContext(ctx, "invalid client callback URL", "value", clientCallbackURL, "error", err)
		httputils.WriteErr(w, errutils.BadRequest().WithReasonErr(err))
		return
	}

	// Client callback URL must be one of the allowed ones.
	if !slices.Contains(h.config.AllowedRedirectURLs, clientCallbackURL) {
		slog.ErrorContext(ctx, "request contains unknown redirect_url")
		httputils.WriteErr(w, errUnknownRedirectURL)
		return
	}

	// Select strategy as per the given name.
	strategy := h.strategyByName(providerName)
	if strategy == nil {
		slog.ErrorContext(ctx, "provider is not implemented", "provider", providerName)
		httputils.WriteErr(w, errUnsupportedProvider)
		return
	}

	// Create and persist the state ID for CSRF protection.
	// The key is namespaced with the strategy's session key so a state can only be used with its own provider.
	stateID := uuid.NewString()
	stateKey := stateMapKey(strategy.SessionKey(), stateID)
	h.stateMap.Store(stateKey, stateValue{ClientCallbackURL: clientCallbackURL})

	// Expire the state ID after some time.
	go func() {
		// Don't use the HTTP request's context here.
		ctx := context.Background()
		// Allow the provider some time to invoke the callback API before timing out the flow.
		time.Sleep(stateIDExpiry)

		if _, present := h.stateMap.LoadAndDelete(stateKey); !present {
			slog.DebugContext(ctx, "state ID utilized before expiry", "stateID", stateID)
			return
		}
		slog.WarnContext(ctx, "state ID expired", "stateID", stateID)
	}()

	// Get the Auth URL of the provider.
	authURL := strategy.AuthCodeURL(stateID)

	headers := map[string]string{"Location": authURL}

	// Redirect.
	httputils.Write(w, http.StatusFound, headers, nil)
}

// stateMapKey is the key of a state ID in the state map.
func stateMapKey(sessionKey, stateID string) string {
	return sessionKey + ":" + stateID
}
