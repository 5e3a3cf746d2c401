package settings

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studylegend/backend/internal/scoring"
)

func TestDBSettingsRepository_Get(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		setupMock func(mock sqlmock.Sqlmock)
		want      scoring.Settings
		wantErr   bool
	}{
		{
			name:   "returns saved settings",
			userID: "user-1",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT decay_factor, forgetting_decay_factor FROM score_settings WHERE user_id = \\?").
					WithArgs("user-1").
					WillReturnRows(sqlmock.NewRows([]string{"decay_factor", "forgetting_decay_factor"}).
						AddRow(0.2, 0.01))
			},
			want: scoring.Settings{DecayFactor: 0.2, ForgettingDecayFactor: 0.01},
		},
		{
			name:   "falls back to defaults when never saved",
			userID: "user-2",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT decay_factor, forgetting_decay_factor FROM score_settings WHERE user_id = \\?").
					WithArgs("user-2").
					WillReturnRows(sqlmock.NewRows([]string{"decay_factor", "forgetting_decay_factor"}))
			},
			want: scoring.DefaultSettings(),
		},
		{
			name:   "db error",
			userID: "user-1",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT decay_factor, forgetting_decay_factor FROM score_settings WHERE user_id = \\?").
					WithArgs("user-1").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			sqlxDB := sqlx.NewDb(db, "mysql")
			repo := NewDBSettingsRepository(sqlxDB)
			tt.setupMock(mock)

			got, err := repo.Get(context.Background(), tt.userID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBSettingsRepository_Save(t *testing.T) {
	tests := []struct {
		name      string
		settings  scoring.Settings
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name:     "upserts settings",
			settings: scoring.Settings{DecayFactor: 0.2, ForgettingDecayFactor: 0.01},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO score_settings").
					WithArgs("user-1", 0.2, 0.01).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name:      "negative factors are rejected",
			settings:  scoring.Settings{DecayFactor: -0.1, ForgettingDecayFactor: 0.05},
			setupMock: func(mock sqlmock.Sqlmock) {},
			wantErr:   true,
		},
		{
			name:     "db error",
			settings: scoring.Settings{DecayFactor: 0.2, ForgettingDecayFactor: 0.01},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO score_settings").
					WithArgs("user-1", 0.2, 0.01).
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			sqlxDB := sqlx.NewDb(db, "mysql")
			repo := NewDBSettingsRepository(sqlxDB)
			tt.setupMock(mock)

			err = repo.Save(context.Background(), "user-1", tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
