// Package settings stores per-user scoring settings.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/studylegend/backend/internal/scoring"
)

// Repository defines the per-user settings lookup the scoring callers use.
// Get falls back to the defaults when the user has never saved settings.
type Repository interface {
	Get(ctx context.Context, userID string) (scoring.Settings, error)
	Save(ctx context.Context, userID string, settings scoring.Settings) error
}

// DBSettingsRepository implements Repository using MySQL.
type DBSettingsRepository struct {
	db *sqlx.DB
}

// NewDBSettingsRepository creates a new DBSettingsRepository.
func NewDBSettingsRepository(db *sqlx.DB) *DBSettingsRepository {
	return &DBSettingsRepository{db: db}
}

// Get returns the user's saved settings, or the defaults when none exist.
func (r *DBSettingsRepository) Get(ctx context.Context, userID string) (scoring.Settings, error) {
	var settings scoring.Settings
	err := r.db.GetContext(ctx, &settings,
		"SELECT decay_factor, forgetting_decay_factor FROM score_settings WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return scoring.DefaultSettings(), nil
	}
	if err != nil {
		return scoring.Settings{}, fmt.Errorf("db.GetContext(score_settings) > %w", err)
	}
	return settings, nil
}

// Save validates and upserts the user's settings.
func (r *DBSettingsRepository) Save(ctx context.Context, userID string, settings scoring.Settings) error {
	if settings.DecayFactor < 0 || settings.ForgettingDecayFactor < 0 {
		return fmt.Errorf("decay factors must be non-negative: got %v / %v",
			settings.DecayFactor, settings.ForgettingDecayFactor)
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO score_settings (user_id, decay_factor, forgetting_decay_factor)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE decay_factor = VALUES(decay_factor), forgetting_decay_factor = VALUES(forgetting_decay_factor)`,
		userID, settings.DecayFactor, settings.ForgettingDecayFactor); err != nil {
		return fmt.Errorf("db.ExecContext(upsert score_settings) > %w", err)
	}
	return nil
}
