package handler

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"github.com/shivanshkc/pinterestauth/internal/repository"
	"github.com/shivanshkc/pinterestauth/pkg/oauth"
)

// mockStrategy is a mock implementation of the oauth.Strategy interface.
type mockStrategy struct {
	mock.Mock
}

func (m *mockStrategy) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *mockStrategy) SessionKey() string {
	args := m.Called()
	return args.String(0)
}

func (m *mockStrategy) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *mockStrategy) AuthorizationParams() url.Values {
	args := m.Called()
	return args.Get(0).(url.Values)
}

func (m *mockStrategy) Authenticate(ctx context.Context, code string) (repository.User, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(repository.User), args.Error(1)
}

func (m *mockStrategy) UserProfile(ctx context.Context, accessToken string) (*oauth.Profile, error) {
	args := m.Called(ctx, accessToken)
	profile, _ := args.Get(0).(*oauth.Profile)
	return profile, args.Error(1)
}
