package oauth

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Names of the recognized options, as they appear in option maps and in ConfigError.Option.
const (
	OptionClientID         = "clientID"
	OptionClientSecret     = "clientSecret"
	OptionAuthorizationURL = "authorizationURL"
	OptionTokenURL         = "tokenURL"
	OptionScopeSeparator   = "scopeSeparator"
	OptionSessionKey       = "sessionKey"
	OptionProfileURL       = "profileURL"
	OptionImageSize        = "imageSize"
	OptionScope            = "scope"
	OptionCallbackURL      = "callbackURL"
)

const (
	// Source: https://developers.pinterest.com/docs/api/authentication/
	pinterestAuthURL  = "https://api.pinterest.com/oauth/"
	pinterestTokenURL = "https://api.pinterest.com/v1/oauth/token"
	// pinterestProfileURL selects every field the normalizer knows how to read.
	pinterestProfileURL = "https://api.pinterest.com/v1/me/?fields=id,username,first_name,last_name,bio,created_at,url," +
		"image[30x30,60x60,110x110,165x165,280x280]"

	defaultScopeSeparator = ","
	defaultSessionKey     = "oauth2:" + ProviderPinterest
	defaultImageSize      = "60x60"
)

// Options configure the Pinterest strategy.
//
// Optional string options are pointers so that an absent option (nil) can be told apart from an option that
// was explicitly set to an empty string, which is an error.
type Options struct {
	// ClientID is your Pinterest application's app ID. Required.
	ClientID string `mapstructure:"clientID"`
	// ClientSecret is your Pinterest application's app secret.
	ClientSecret string `mapstructure:"clientSecret"`

	AuthorizationURL *string `mapstructure:"authorizationURL"`
	TokenURL         *string `mapstructure:"tokenURL"`
	// ScopeSeparator joins Scope entries in the authorization request.
	ScopeSeparator *string `mapstructure:"scopeSeparator"`
	// SessionKey is the key under which a host may keep per-flow data for this strategy.
	SessionKey *string `mapstructure:"sessionKey"`
	ProfileURL *string `mapstructure:"profileURL"`
	// ImageSize picks which of the profile image renditions becomes Profile.ImageURL, e.g. "60x60".
	ImageSize *string `mapstructure:"imageSize"`

	// Scope lists the requested permissions, e.g. read_public, read_relationships.
	Scope []string `mapstructure:"scope"`
	// CallbackURL is where Pinterest redirects the user after granting authorization.
	CallbackURL string `mapstructure:"callbackURL"`
}

// optionalStringOptions are validated the same way: absent is fine, present must be a non-empty string.
var optionalStringOptions = []string{
	OptionAuthorizationURL,
	OptionTokenURL,
	OptionScopeSeparator,
	OptionSessionKey,
	OptionProfileURL,
	OptionImageSize,
}

// ValidateOptions checks the given options and returns a copy with every unset optional option defaulted.
//
// It performs no I/O.
func ValidateOptions(opts *Options) (Options, error) {
	if opts == nil {
		return Options{}, &ConfigError{Reason: "options required"}
	}

	if opts.ClientID == "" {
		return Options{}, &ConfigError{Option: OptionClientID, Reason: "is required"}
	}

	resolved := *opts
	resolved.Scope = slices.Clone(opts.Scope)

	for _, field := range []struct {
		name     string
		value    **string
		fallback string
	}{
		{OptionAuthorizationURL, &resolved.AuthorizationURL, pinterestAuthURL},
		{OptionTokenURL, &resolved.TokenURL, pinterestTokenURL},
		{OptionScopeSeparator, &resolved.ScopeSeparator, defaultScopeSeparator},
		{OptionSessionKey, &resolved.SessionKey, defaultSessionKey},
		{OptionProfileURL, &resolved.ProfileURL, pinterestProfileURL},
		{OptionImageSize, &resolved.ImageSize, defaultImageSize},
	} {
		if *field.value == nil {
			fallback := field.fallback
			*field.value = &fallback
			continue
		}
		if **field.value == "" {
			return Options{}, errNotAString(field.name)
		}
		// Copy so that the resolved options never alias the caller's.
		value := **field.value
		*field.value = &value
	}

	return resolved, nil
}

// DecodeOptions builds Options from a loosely typed option map, such as one read from a YAML config file.
//
// Every recognized option is type-checked before decoding, so an option like `authorizationURL: false` fails
// with a ConfigError naming it instead of being coerced. Keys are matched case-insensitively and unknown keys
// are ignored. The returned options are not yet validated; NewPinterest does that.
func DecodeOptions(raw map[string]any) (*Options, error) {
	if raw == nil {
		return nil, &ConfigError{Reason: "options required"}
	}

	stringOptions := append([]string{OptionClientID, OptionClientSecret, OptionCallbackURL}, optionalStringOptions...)
	for _, name := range stringOptions {
		value, present, err := lookupOption(raw, name)
		if err != nil {
			return nil, err
		}
		if !present {
			continue
		}
		if s, ok := value.(string); !ok || (s == "" && slices.Contains(optionalStringOptions, name)) {
			return nil, errNotAString(name)
		}
	}

	value, present, err := lookupOption(raw, OptionScope)
	if err != nil {
		return nil, err
	}
	if present && !isScopeValue(value) {
		return nil, &ConfigError{Option: OptionScope, Reason: "must be a string or a list of strings"}
	}

	opts := &Options{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(stringToSliceHook),
		Result:     opts,
	})
	if err != nil {
		return nil, fmt.Errorf("error in mapstructure.NewDecoder call: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, &ConfigError{Reason: err.Error()}
	}

	return opts, nil
}

// errNotAString is the error for a string option that is present but is not a non-empty string.
func errNotAString(name string) *ConfigError {
	return &ConfigError{Option: name, Reason: "must be a non-empty string"}
}

// lookupOption finds the named option in the map, ignoring case. Viper, for example, lowercases all keys.
//
// An option set under more than one spelling is an error, since only one of the values would be decoded.
func lookupOption(raw map[string]any, name string) (any, bool, error) {
	var (
		value any
		found bool
	)
	for key, v := range raw {
		if !strings.EqualFold(key, name) {
			continue
		}
		if found {
			return nil, false, &ConfigError{Option: name, Reason: "is set more than once with different letter cases"}
		}
		value, found = v, true
	}
	return value, found, nil
}

// isScopeValue reports whether the value can be decoded as a scope: a string or a list of strings.
func isScopeValue(value any) bool {
	switch v := value.(type) {
	case string, []string:
		return true
	case []any:
		for _, elem := range v {
			if _, ok := elem.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// stringToSliceHook lets a single string decode into a []string, so `scope: read_public` works.
func stringToSliceHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]string{}) {
		return data, nil
	}
	return []string{data.(string)}, nil
}
