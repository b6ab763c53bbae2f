package oauth

import (
	"context"
	"net/url"
)

// Strategy represents an OAuth 2.0 authentication strategy that a host registers under its name.
//
// U is the host's user type, as returned by the VerifyFunc that the strategy was constructed with.
type Strategy[U any] interface {
	// Name provides the name of the strategy, which is also the Provider of every Profile it produces.
	Name() string

	// SessionKey is the key under which the host may keep per-flow data for this strategy.
	SessionKey() string

	// AuthCodeURL returns the URL to the auth page of the provider.
	//
	// The "state" parameter is returned as is in the provider's callback
	// and can be used to correlate it with the original redirect.
	AuthCodeURL(state string) string

	// AuthorizationParams returns provider-specific parameters to be added to the authorization request.
	AuthorizationParams() url.Values

	// Authenticate exchanges the authorization code for tokens, fetches the user's profile
	// and returns the user produced by the verify callback.
	Authenticate(ctx context.Context, code string) (U, error)

	// UserProfile fetches and normalizes the profile of the user that the access token belongs to.
	UserProfile(ctx context.Context, accessToken string) (*Profile, error)
}

// VerifyFunc receives the tokens and the normalized profile of a successfully authenticated user and maps them to
// the host's user type.
//
// It should return ErrUserRejected if the user is not acceptable, and any other error if the check itself failed.
type VerifyFunc[U any] func(ctx context.Context, accessToken, refreshToken string, profile *Profile) (U, error)
