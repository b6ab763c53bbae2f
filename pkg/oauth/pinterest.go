package oauth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

// ProviderPinterest is the name of the Pinterest strategy.
const ProviderPinterest = "pinterest"

// Pinterest implements the Strategy interface for Pinterest.
//
// Read documentation here: https://developers.pinterest.com/docs/api/authentication/
type Pinterest[U any] struct {
	// opts are validated and fully defaulted. They are never modified after construction.
	opts   Options
	verify VerifyFunc[U]

	config *oauth2.Config
	// httpClient, if set, is used for both the token exchange and the profile fetch.
	httpClient *http.Client
}

// StrategyOption customizes a strategy at construction time.
type StrategyOption func(*strategySettings)

type strategySettings struct {
	httpClient *http.Client
}

// WithHTTPClient makes the strategy use the given client for all outbound requests.
func WithHTTPClient(client *http.Client) StrategyOption {
	return func(s *strategySettings) {
		s.httpClient = client
	}
}

// NewPinterest validates the options and returns a new Pinterest strategy.
//
// The verify callback is invoked once per successful authentication with the tokens and the normalized profile.
// Invalid options result in a *ConfigError and no strategy.
func NewPinterest[U any](opts *Options, verify VerifyFunc[U], options ...StrategyOption) (*Pinterest[U], error) {
	if opts == nil {
		return nil, &ConfigError{Reason: "options required"}
	}
	if verify == nil {
		return nil, &ConfigError{Reason: "verify callback required"}
	}

	resolved, err := ValidateOptions(opts)
	if err != nil {
		return nil, err
	}

	settings := &strategySettings{}
	for _, option := range options {
		option(settings)
	}

	return &Pinterest[U]{
		opts:   resolved,
		verify: verify,
		config: &oauth2.Config{
			ClientID:     resolved.ClientID,
			ClientSecret: resolved.ClientSecret,
			RedirectURL:  resolved.CallbackURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  *resolved.AuthorizationURL,
				TokenURL: *resolved.TokenURL,
			},
			// Scopes are left empty here because oauth2 always joins them with a space.
			// AuthCodeURL adds them with the configured separator instead.
		},
		httpClient: settings.httpClient,
	}, nil
}

func (p *Pinterest[U]) Name() string {
	return ProviderPinterest
}

func (p *Pinterest[U]) SessionKey() string {
	return *p.opts.SessionKey
}

// Options returns a copy of the validated options, with all defaults applied.
func (p *Pinterest[U]) Options() Options {
	opts := p.opts
	opts.Scope = append([]string(nil), p.opts.Scope...)
	return opts
}

func (p *Pinterest[U]) AuthCodeURL(state string) string {
	var params []oauth2.AuthCodeOption
	if len(p.opts.Scope) > 0 {
		params = append(params, oauth2.SetAuthURLParam("scope", strings.Join(p.opts.Scope, *p.opts.ScopeSeparator)))
	}

	for key, values := range p.AuthorizationParams() {
		for _, value := range values {
			params = append(params, oauth2.SetAuthURLParam(key, value))
		}
	}

	return p.config.AuthCodeURL(state, params...)
}

// AuthorizationParams returns no parameters. Pinterest does not need any beyond the standard ones.
func (p *Pinterest[U]) AuthorizationParams() url.Values {
	return url.Values{}
}

func (p *Pinterest[U]) Authenticate(ctx context.Context, code string) (U, error) {
	var zero U
	ctx = p.clientContext(ctx)

	// Convert the code to an access token.
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "error in config.Exchange call", "provider", p.Name(), "error", err)
		return zero, &TokenExchangeError{Err: err}
	}

	profile, err := p.UserProfile(ctx, token.AccessToken)
	if err != nil {
		return zero, err
	}

	user, err := p.verify(ctx, token.AccessToken, token.RefreshToken, profile)
	if err != nil {
		return zero, fmt.Errorf("error in verify call: %w", err)
	}

	return user, nil
}

func (p *Pinterest[U]) UserProfile(ctx context.Context, accessToken string) (*Profile, error) {
	body, err := p.fetchProfile(ctx, accessToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch user profile", "provider", p.Name(), "error", err)
	}

	profile, err := NormalizeProfile(body, err, *p.opts.ImageSize)
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// fetchProfile makes a single GET request to the profile URL. The access token goes in the Authorization header,
// never in the query.
func (p *Pinterest[U]) fetchProfile(ctx context.Context, accessToken string) ([]byte, error) {
	ctx = p.clientContext(ctx)
	client := p.config.Client(ctx, &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})

	// Form the HTTP request.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, *p.opts.ProfileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error in http.NewRequestWithContext call: %w", err)
	}

	// Execute request.
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error in client.Do call: %w", err)
	}
	// Close response body upon return.
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error in io.ReadAll call: %w", err)
	}

	// Check if the request failed.
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		slog.ErrorContext(ctx, "request failed", "code", res.StatusCode, "body", string(body))
		return nil, fmt.Errorf("request failed with status code: %d", res.StatusCode)
	}

	return body, nil
}

// clientContext attaches the configured HTTP client, if any, to the context in the way the oauth2 package expects.
func (p *Pinterest[U]) clientContext(ctx context.Context) context.Context {
	if p.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

// Compile-time interface assertion.
var _ Strategy[struct{}] = (*Pinterest[struct{}])(nil)
