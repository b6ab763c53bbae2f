package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// issuer is the "iss" claim of every session token.
const issuer = "pinterestauth"

// ErrInvalidToken is returned for tokens that are malformed, expired, or not signed by this service.
var ErrInvalidToken = errors.New("invalid session token")

// Claims are the user details carried by a session token.
type Claims struct {
	// UserID is the ID of the user in the database.
	UserID string
	// Provider that authenticated the user.
	Provider string
	// ProviderUserID is the ID of the user at the provider.
	ProviderUserID string
	// DisplayName and PictureURL are copied from the provider profile.
	DisplayName string
	PictureURL  string

	ExpiresAt time.Time
}

// Manager issues and verifies HMAC-signed session tokens.
type Manager struct {
	key []byte
	ttl time.Duration
	// now is replaceable for testing.
	now func() time.Time
}

// NewManager returns a new Manager. The key must not be empty.
func NewManager(key string, ttl time.Duration) (*Manager, error) {
	if key == "" {
		return nil, errors.New("session signing key is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got: %s", ttl)
	}
	return &Manager{key: []byte(key), ttl: ttl, now: time.Now}, nil
}

// Issue creates a signed token for the given claims. The ExpiresAt field of the claims is ignored and computed
// from the manager's TTL instead; the actual expiry is returned.
func (m *Manager) Issue(claims Claims) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	token, err := jwt.NewBuilder().
		Issuer(issuer).
		Subject(claims.UserID).
		IssuedAt(now).
		Expiration(expiresAt).
		Claim("provider", claims.Provider).
		Claim("provider_user_id", claims.ProviderUserID).
		Claim("name", claims.DisplayName).
		Claim("picture", claims.PictureURL).
		Build()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error in jwt.Builder.Build call: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error in jwt.Sign call: %w", err)
	}

	return string(signed), expiresAt, nil
}

// Verify validates the token's signature, issuer and expiry, and returns its claims.
func (m *Manager) Verify(token string) (Claims, error) {
	parsed, err := jwt.Parse([]byte(token),
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(issuer),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	)
	if err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}

	var claims Claims
	claims.UserID, _ = parsed.Subject()
	claims.ExpiresAt, _ = parsed.Expiration()

	// Optional claims. An absent claim leaves the field empty.
	_ = parsed.Get("provider", &claims.Provider)
	_ = parsed.Get("provider_user_id", &claims.ProviderUserID)
	_ = parsed.Get("name", &claims.DisplayName)
	_ = parsed.Get("picture", &claims.PictureURL)

	if claims.UserID == "" {
		return Claims{}, fmt.Errorf("%w: sub claim is empty", ErrInvalidToken)
	}

	return claims, nil
}
