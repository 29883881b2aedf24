package postgres

import (
	"context"
	"database/sql"
	"errors"

	"invitepush/internal/domain"
)

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{DB: db}
}

// GetPushToken returns the device token registered for the user. A missing
// profile row or an empty token column both map to ErrTokenNotFound.
func (r *profileRepository) GetPushToken(ctx context.Context, userID string) (string, error) {
	query := `
		SELECT fcm_token
		FROM user_profiles
		WHERE id = $1
	`
	var token sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	if !token.Valid || token.String == "" {
		return "", domain.ErrTokenNotFound
	}
	return token.String, nil
}
