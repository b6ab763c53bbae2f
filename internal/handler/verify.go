package handler

import (
	"context"
	"fmt"

	"github.com/shivanshkc/pinterestauth/internal/repository"
	"github.com/shivanshkc/pinterestauth/pkg/oauth"
)

// NewVerifier returns the verify callback for OAuth strategies. It stores the user's profile in the repository
// and returns the stored user.
func NewVerifier(repo repository.Repository) oauth.VerifyFunc[repository.User] {
	return func(ctx context.Context, accessToken, refreshToken string, profile *oauth.Profile) (repository.User, error) {
		// The provider tokens are not persisted. The service issues its own session instead.
		user := repository.User{
			Provider:       profile.Provider,
			ProviderUserID: profile.ID,
			Username:       profile.Username,
			DisplayName:    profile.DisplayName,
			ProfileURL:     profile.URL,
			PictureURL:     profile.ImageURL,
		}

		stored, err := repo.UpsertUser(ctx, user)
		if err != nil {
			return repository.User{}, fmt.Errorf("error in UpsertUser call: %w", err)
		}

		return stored, nil
	}
}
