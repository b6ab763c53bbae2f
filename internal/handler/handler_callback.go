package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/shivanshkc/pinterestauth/internal/session"
	"github.com/shivanshkc/pinterestauth/internal/utils/errutils"
	"github.com/shivanshkc/pinterestauth/internal/utils/httputils"
	"github.com/shivanshkc/pinterestauth/pkg/oauth"
)

// sessionCookieName is the name of the cookie that holds the session token.
const sessionCookieName = "session"

// Callback handles the provider's OAuth callback.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Obtain params from the request.
	providerName := mux.Vars(r)["provider"]
	stateID, errAuth, code := r.URL.Query().Get("state"),
		r.URL.Query().Get("error"),
		r.URL.Query().Get("code")

	// State validation.
	if err := validateState(stateID); err != nil {
		slog.ErrorContext(ctx, "invalid state from provider", "value", stateID, "error", err)
		// Since the state is invalid, the state map can not be accessed, and so the redirect URL is unknown.
		// Therefore, we have to fall back to the first allowed redirect URL.
		errorRedirect(w, errutils.BadRequest().WithReasonErr(err), h.fallbackRedirectURL())
		return
	}

	// Provider name validation. The state map is namespaced by provider, so this must come first.
	if err := validateProvider(providerName); err != nil {
		slog.ErrorContext(ctx, "invalid provider in callback", "value", providerName, "error", err)
		errorRedirect(w, errutils.BadRequest().WithReasonErr(err), h.fallbackRedirectURL())
		return
	}

	// Get the required strategy.
	strategy := h.strategyByName(providerName)
	if strategy == nil {
		slog.ErrorContext(ctx, "callback from unknown provider", "provider", providerName)
		errorRedirect(w, errUnsupportedProvider, h.fallbackRedirectURL())
		return
	}

	// If the state is found in the state map, it guarantees that it is not a CSRF attack.
	// Otherwise, it could be that the provider took too long to callback and the state got expired and cleaned up
	// from the map, or it could be that it is a malicious request and someone is trying to impersonate the provider.
	sValueAny, present := h.stateMap.LoadAndDelete(stateMapKey(strategy.SessionKey(), stateID))
	if !present {
		slog.ErrorContext(ctx, "state not found in the map, failing request", "stateID", stateID)
		errorRedirect(w, errutils.RequestTimeout(), h.fallbackRedirectURL())
		return
	}

	// Assert to the stateValue type to access fields.
	sValue, ok := sValueAny.(stateValue)
	if !ok {
		slog.ErrorContext(ctx, "failed to assert to stateValue type", "stateValue", sValueAny)
		errorRedirect(w, errutils.InternalServerError(), h.fallbackRedirectURL())
		return
	}

	// If this error is not empty, then the OAuth flow has failed from the provider's side.
	if errAuth != "" {
		slog.ErrorContext(ctx, "provider called back with error", "error", errAuth)
		errorRedirect(w, errors.New(errAuth), sValue.ClientCallbackURL)
		return
	}

	// Authorization code validation.
	if err := validateAuthCode(code); err != nil {
		slog.ErrorContext(ctx, "invalid code in callback", "value", code, "error", err)
		errorRedirect(w, errutils.BadRequest().WithReasonErr(err), sValue.ClientCallbackURL)
		return
	}

	// Exchange the code, fetch the profile and store the user.
	user, err := strategy.Authenticate(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "error in Authenticate call", "provider", providerName, "error", err)
		errorRedirect(w, authenticateHTTPError(err), sValue.ClientCallbackURL)
		return
	}

	// Issue the session token.
	token, expiresAt, err := h.sessions.Issue(session.Claims{
		UserID:         strconv.FormatInt(user.ID, 10),
		Provider:       user.Provider,
		ProviderUserID: user.ProviderUserID,
		DisplayName:    user.DisplayName,
		PictureURL:     user.PictureURL,
	})
	if err != nil {
		slog.ErrorContext(ctx, "error in sessions.Issue call", "error", err)
		errorRedirect(w, errutils.InternalServerError(), sValue.ClientCallbackURL)
		return
	}

	// Set the cookie.
	http.SetCookie(w, &http.Cookie{
		Name:  sessionCookieName,
		Value: token,
		Path:  "/",
		// This will be required if the service needs to be used with multiple subdomains.
		Domain: "",
		// The cookie expires at the same time as the token.
		MaxAge: int(time.Until(expiresAt).Seconds()),
		// Use secure mode when the application is running over HTTPS.
		Secure:   strings.HasPrefix(h.config.Application.BaseURL, "https://"),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	// Success redirect URL.
	headers := map[string]string{"Location": withQueryParam(sValue.ClientCallbackURL, "provider", providerName)}
	httputils.Write(w, http.StatusFound, headers, nil)
}

// authenticateHTTPError maps the errors of a strategy's Authenticate call to the error shown to the client.
func authenticateHTTPError(err error) *errutils.HTTPError {
	var (
		exchangeErr *oauth.TokenExchangeError
		fetchErr    *oauth.UpstreamFetchError
		parseErr    *oauth.ProfileParseError
	)

	switch {
	case errors.Is(err, oauth.ErrUserRejected):
		return errutils.Forbidden()
	case errors.As(err, &exchangeErr):
		return errutils.Unauthorized().WithReasonStr("authorization code was not accepted")
	case errors.As(err, &fetchErr), errors.As(err, &parseErr):
		return errutils.BadGateway().WithReasonStr("failed to obtain user profile from provider")
	default:
		return errutils.InternalServerError()
	}
}

// errorRedirect redirects the caller (by writing 302 and the Location header to the response) and attaches
// the given error information as a query parameter.
func errorRedirect(w http.ResponseWriter, err error, targetURL string) {
	headers := map[string]string{"Location": withQueryParam(targetURL, "error", err.Error())}
	httputils.Write(w, http.StatusFound, headers, nil)
}

// withQueryParam sets the given query parameter on the target URL, keeping any query it already has.
func withQueryParam(targetURL, key, value string) string {
	parsed, err := url.Parse(targetURL)
	if err != nil {
		// Redirect URLs come from the config and are validated upon use, so this is a misconfiguration.
		slog.Error("failed to parse redirect URL", "value", targetURL, "error", err)
		return targetURL
	}

	query := parsed.Query()
	query.Set(key, value)
	parsed.RawQuery = query.Encode()

	return parsed.String()
}
