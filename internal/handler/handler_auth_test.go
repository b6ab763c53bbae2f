package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shivanshkc/pinterestauth/internal/repository"
	"github.com/shivanshkc/pinterestauth/pkg/config"
	"github.com/shivanshkc/pinterestauth/pkg/oauth"
)

func TestHandler_Auth_Validations(t *testing.T) {
	mStrategy := &mockStrategy{}
	mStrategy.On("Name").Return("pinterest")

	mHandler := NewHandler(config.Config{AllowedRedirectURLs: []string{"https://allowed.com"}}, nil, nil,
		mStrategy)

	for _, tc := range []struct {
		name             string
		inputProvider    string
		inputRedirectURL string
		errSubstring     string
	}{
		{
			name:          "Too long provider length",
			inputProvider: strings.Repeat("a", 21),
			errSubstring:  errInvalidProvider.Error(),
		},
		{
			name:          "Invalid provider character",
			inputProvider: "pinterest$$",
			errSubstring:  errInvalidProvider.Error(),
		},
		{
			name:             "Absent redirect_url",
			inputProvider:    "pinterest",
			inputRedirectURL: "",
			errSubstring:     errInvalidCCU.Error(),
		},
		{
			name:             "Too long redirect_url",
			inputProvider:    "pinterest",
			inputRedirectURL: strings.Repeat("a", 201),
			errSubstring:     errInvalidCCU.Error(),
		},
		{
			name:             "redirect_url not present in allow list",
			inputProvider:    "pinterest",
			inputRedirectURL: "https://allowed.com-random",
			errSubstring:     errUnknownRedirectURL.Reasons[0],
		},
		{
			name:             "Unknown provider",
			inputProvider:    "google",
			inputRedirectURL: "https://allowed.com",
			errSubstring:     errUnsupportedProvider.Reasons[0],
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rr, req := createMockAuthWR(t, tc.inputProvider, tc.inputRedirectURL)

			// Invoke the method to test.
			mHandler.Auth(rr, req)

			// Verifications.
			require.Equal(t, http.StatusBadRequest, rr.Code, "Expected 400 status code")
			require.Contains(t, rr.Body.String(), tc.errSubstring)
			require.Empty(t, rr.Header().Get("Location"), "Expected no redirect")
		})
	}
}

func TestHandler_Auth(t *testing.T) {
	// Keep the expiry short to verify the state cleanup.
	originalExpiry := stateIDExpiry
	stateIDExpiry = time.Millisecond * 50
	defer func() { stateIDExpiry = originalExpiry }()

	mCCU, mAuthURL, mSessionKey := "https://allowed.com", "https://pinterest.example.com/oauth/", "oauth2:pinterest"

	var capturedState string
	mStrategy := &mockStrategy{}
	mStrategy.On("Name").Return("pinterest")
	mStrategy.On("SessionKey").Return(mSessionKey).Once()
	mStrategy.On("AuthCodeURL", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { capturedState = args.String(0) }).
		Return(mAuthURL).Once()

	mHandler := NewHandler(config.Config{AllowedRedirectURLs: []string{mCCU}}, nil, nil, mStrategy)

	rr, req := createMockAuthWR(t, "pinterest", mCCU)
	mHandler.Auth(rr, req)

	// Verify the redirect.
	require.Equal(t, http.StatusFound, rr.Code)
	require.Equal(t, mAuthURL, rr.Header().Get("Location"))
	mStrategy.AssertExpectations(t)

	// The state must be persisted against the strategy's session key.
	require.NoError(t, validateState(capturedState), "Expected state to be a uuid")
	value, found := mHandler.stateMap.Load(stateMapKey(mSessionKey, capturedState))
	require.True(t, found, "Expected state to be present in the state map")
	require.Equal(t, stateValue{ClientCallbackURL: mCCU}, value)

	// The state must expire.
	require.Eventually(t, func() bool {
		_, found := mHandler.stateMap.Load(stateMapKey(mSessionKey, capturedState))
		return !found
	}, time.Second, time.Millisecond*10, "Expected state to expire")
}

func TestNewHandler_StrategyRegistration(t *testing.T) {
	mStrategy := &mockStrategy{}
	mStrategy.On("Name").Return("pinterest").Once()

	mHandler := NewHandler(config.Config{}, nil, nil, mStrategy)
	require.Equal(t, oauth.Strategy[repository.User](mStrategy), mHandler.strategyByName("pinterest"))
	require.Nil(t, mHandler.strategyByName("google"))
	require.IsType(t, &sync.Map{}, mHandler.stateMap)
}

// createMockAuthWR creates a mock ResponseWriter and Request to test the Auth handler.
func createMockAuthWR(t *testing.T, provider, redirectURL string) (*httptest.ResponseRecorder, *http.Request) {
	req, err := http.NewRequest(http.MethodGet, "/mock", nil)
	require.NoError(t, err, "Failed to create HTTP request")

	// Set path params.
	req = mux.SetURLVars(req, map[string]string{"provider": provider})
	// Set query params.
	q := req.URL.Query()
	q.Set("redirect_url", redirectURL)
	req.URL.RawQuery = q.Encode()

	return httptest.NewRecorder(), req
}
