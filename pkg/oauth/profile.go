package oauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	errMissingData = errors.New("response has no data object")
	errMissingID   = errors.New("response data has no id")
	errInvalidID   = errors.New("response data id is not a string")
)

// Profile is the normalized user profile produced by a strategy.
type Profile struct {
	// Provider is always the name of the strategy that produced the profile.
	Provider string `json:"provider"`
	// ID is the provider-assigned user ID.
	ID string `json:"id"`
	// URL of the user's profile page.
	URL string `json:"url"`
	// DisplayName is the user's full name. It is empty, never absent, if the provider has no name for the user.
	DisplayName string `json:"display_name"`

	Username string `json:"username,omitempty"`
	Bio      string `json:"bio,omitempty"`
	ImageURL string `json:"image_url,omitempty"`

	// Raw is the unparsed response body, kept for debugging.
	Raw []byte `json:"-"`
	// JSON is the parsed response body, kept for debugging.
	JSON map[string]any `json:"-"`
}

// NormalizeProfile converts the result of a profile fetch into a Profile.
//
// If fetchErr is not nil, the body is ignored and an *UpstreamFetchError is returned. If the body is not a JSON
// object with a "data" object carrying a string "id", a *ProfileParseError is returned and no profile at all.
//
// Which other fields are present depends on the "fields" query parameter of the profile URL, so all of them are
// optional: a field that is absent or of an unexpected type is left empty. imageSize selects the image rendition
// that becomes Profile.ImageURL.
func NormalizeProfile(body []byte, fetchErr error, imageSize string) (*Profile, error) {
	if fetchErr != nil {
		return nil, &UpstreamFetchError{Err: fetchErr}
	}

	// This also rejects bodies that are not JSON objects.
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &ProfileParseError{Err: err}
	}

	data, ok := parsed["data"].(map[string]any)
	if !ok {
		return nil, &ProfileParseError{Err: errMissingData}
	}

	id, present := data["id"]
	if !present || id == nil {
		return nil, &ProfileParseError{Err: errMissingID}
	}
	idStr, ok := id.(string)
	if !ok {
		return nil, &ProfileParseError{Err: fmt.Errorf("%w, got: %T", errInvalidID, id)}
	}
	if idStr == "" {
		return nil, &ProfileParseError{Err: errMissingID}
	}

	return &Profile{
		Provider:    ProviderPinterest,
		ID:          idStr,
		URL:         stringField(data, "url"),
		DisplayName: displayName(stringField(data, "first_name"), stringField(data, "last_name")),
		Username:    stringField(data, "username"),
		Bio:         stringField(data, "bio"),
		ImageURL:    imageURL(data, imageSize),
		Raw:         body,
		JSON:        parsed,
	}, nil
}

// stringField returns the named field if it is a string, and "" otherwise.
func stringField(object map[string]any, name string) string {
	value, _ := object[name].(string)
	return value
}

// imageURL returns data.image[size].url, or "" if any part of that path is missing or not of the expected type.
func imageURL(data map[string]any, size string) string {
	images, _ := data["image"].(map[string]any)
	rendition, _ := images[size].(map[string]any)
	return stringField(rendition, "url")
}

// displayName joins the non-empty name parts with a single space.
func displayName(parts ...string) string {
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			names = append(names, part)
		}
	}
	return strings.Join(names, " ")
}
