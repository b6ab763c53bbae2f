package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shivanshkc/pinterestauth/internal/utils/errutils"
)

// User represents a single user in the database.
//
// A user is identified by the provider that authenticated them and their ID at that provider.
type User struct {
	ID             int64     `json:"id"`
	Provider       string    `json:"provider"`
	ProviderUserID string    `json:"provider_user_id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name"`
	ProfileURL     string    `json:"profile_url"`
	PictureURL     string    `json:"picture_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Repository encapsulates all operations available on the database.
type Repository interface {
	// UpsertUser inserts the user, or updates their profile fields if they already exist.
	// The returned user has the database-generated fields populated.
	UpsertUser(ctx context.Context, user User) (User, error)

	// GetUser fetches a user by ID. It returns a NotFound error if there's no such user.
	GetUser(ctx context.Context, id int64) (User, error)
}

// repository implements Repository.
type repository struct {
	database *sql.DB
}

// NewRepository returns a new implementation of Repository.
func NewRepository(database *sql.DB) Repository {
	return &repository{database: database}
}

func (r *repository) UpsertUser(ctx context.Context, user User) (User, error) {
	// Form and execute query.
	query, args := upsertUserQuery(user)
	row := r.database.QueryRowContext(ctx, query, args...)

	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return User{}, fmt.Errorf("error in query execution: %w", err)
	}

	slog.InfoContext(ctx, "user upserted successfully", "id", user.ID, "provider", user.Provider)
	return user, nil
}

func (r *repository) GetUser(ctx context.Context, id int64) (User, error) {
	query, args := getUserQuery(id)
	row := r.database.QueryRowContext(ctx, query, args...)

	var user User
	err := row.Scan(&user.ID, &user.Provider, &user.ProviderUserID, &user.Username, &user.DisplayName,
		&user.ProfileURL, &user.PictureURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		// Handle 404.
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, errutils.NotFound()
		}
		return User{}, fmt.Errorf("error in query execution: %w", err)
	}

	return user, nil
}
