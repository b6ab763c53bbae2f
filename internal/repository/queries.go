package repository

func upsertUserQuery(u User) (string, []any) {
	return `INSERT INTO users (provider, provider_user_id, username, display_name, profile_url, picture_url)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (provider, provider_user_id) DO UPDATE SET
	username = EXCLUDED.username,
	display_name = EXCLUDED.display_name,
	profile_url = EXCLUDED.profile_url,
	picture_url = EXCLUDED.picture_url,
	updated_at = NOW()
RETURNING id, created_at, updated_at`,
		[]any{u.Provider, u.ProviderUserID, u.Username, u.DisplayName, u.ProfileURL, u.PictureURL}
}

func getUserQuery(id int64) (string, []any) {
	return `SELECT id, provider, provider_user_id, username, display_name, profile_url, picture_url, created_at, updated_at
FROM users WHERE id = $1`, []any{id}
}
