package postgres

import (
	"context"
	"database/sql"

	"invitepush/internal/domain"
)

type rateLimitRepository struct {
	DB *sql.DB
}

func NewRateLimitRepository(db *sql.DB) domain.RateLimiter {
	return &rateLimitRepository{DB: db}
}

// Allow calls the check_rate_limit database function. The function owns the
// counters and the window bookkeeping; this side only relays its verdict.
func (r *rateLimitRepository) Allow(ctx context.Context, ipAddress, endpoint string, maxRequests, windowMinutes int) (bool, error) {
	query := `SELECT check_rate_limit($1, $2, $3, $4)`
	var allowed bool
	err := r.DB.QueryRowContext(ctx, query, ipAddress, endpoint, maxRequests, windowMinutes).Scan(&allowed)
	if err != nil {
		return false, err
	}
	return allowed, nil
}
