package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studylegend/backend/internal/config"
	"github.com/studylegend/backend/internal/database"
	"github.com/studylegend/backend/internal/question"
	"github.com/studylegend/backend/internal/scoring"
	"github.com/studylegend/backend/internal/settings"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// storage bundles the configured question store with its optional
// database-backed collaborators. db and settings are nil for the YAML
// backend.
type storage struct {
	questions question.Repository
	settings  settings.Repository
	db        *sqlx.DB
}

func newStorage(cfg *config.Config) (*storage, error) {
	s := &storage{}

	switch cfg.Storage.Backend {
	case "mysql":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database.Open() > %w", err)
		}
		s.db = db
		s.questions = question.NewDBQuestionRepository(db)
		s.settings = settings.NewDBSettingsRepository(db)
	default:
		s.questions = question.NewFileQuestionRepository(cfg.Storage.QuestionsDirectory)
	}

	if cfg.Cache.TTLSeconds > 0 {
		s.questions = question.NewCachedQuestionRepository(
			s.questions,
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		)
	}
	return s, nil
}

func (s *storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ScoreSettings loads the user's score settings, falling back to the
// defaults when no database backs the configured storage.
func (s *storage) ScoreSettings(ctx context.Context, user string) (scoring.Settings, error) {
	if s.settings == nil {
		return scoring.DefaultSettings(), nil
	}
	return s.settings.Get(ctx, user)
}
