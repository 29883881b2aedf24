package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRateLimitRepository_Allow(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		mock        func(mock sqlmock.Sqlmock)
		wantAllowed bool
		wantErr     bool
	}{
		{
			name: "allowed",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"check_rate_limit"}).AddRow(true)
				mock.ExpectQuery(`SELECT check_rate_limit`).
					WithArgs("10.0.0.1", "get-event-invite", 60, 1).
					WillReturnRows(rows)
			},
			wantAllowed: true,
		},
		{
			name: "denied",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"check_rate_limit"}).AddRow(false)
				mock.ExpectQuery(`SELECT check_rate_limit`).
					WithArgs("10.0.0.1", "get-event-invite", 60, 1).
					WillReturnRows(rows)
			},
			wantAllowed: false,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT check_rate_limit`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRateLimitRepository(db)
			allowed, err := repo.Allow(ctx, "10.0.0.1", "get-event-invite", 60, 1)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantAllowed, allowed)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
