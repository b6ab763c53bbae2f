package oauth

import (
	"errors"
	"fmt"
)

// ErrUserRejected is returned by a VerifyFunc to signal that the provider authenticated the user but the
// application does not accept them.
var ErrUserRejected = errors.New("user rejected by verify callback")

// ConfigError is returned when a strategy cannot be constructed due to invalid options.
//
// It is always the caller's fault and retrying with the same options will fail again.
type ConfigError struct {
	// Option is the name of the offending option, if the error concerns a single option.
	Option string
	// Reason is a human-readable description of the problem.
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Option == "" {
		return "invalid oauth config: " + e.Reason
	}
	return fmt.Sprintf("invalid oauth config: options.%s %s", e.Option, e.Reason)
}

// UpstreamFetchError is returned when the profile endpoint could not be fetched.
type UpstreamFetchError struct {
	Err error
}

func (e *UpstreamFetchError) Error() string {
	return "failed to fetch user profile: " + e.Err.Error()
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}

// ProfileParseError is returned when the profile endpoint responded with a body that is not a valid profile.
type ProfileParseError struct {
	Err error
}

func (e *ProfileParseError) Error() string {
	return "failed to parse user profile: " + e.Err.Error()
}

func (e *ProfileParseError) Unwrap() error {
	return e.Err
}

// TokenExchangeError is returned when the authorization code could not be exchanged for an access token.
type TokenExchangeError struct {
	Err error
}

func (e *TokenExchangeError) Error() string {
	return "failed to exchange authorization code: " + e.Err.Error()
}

func (e *TokenExchangeError) Unwrap() error {
	return e.Err
}
