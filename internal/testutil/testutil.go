// Package testutil provides shared test helpers for creating config files and question fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studylegend/backend/internal/question"
)

// SetupTestConfig creates a minimal config file and all required directories for testing.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"questions", "reports"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`storage:
  backend: yaml
  questions_directory: %s
  reports_directory: %s
practice:
  user: default
  mode: sequential
  max_score_threshold: 5
`,
		filepath.Join(tmpDir, "questions"),
		filepath.Join(tmpDir, "reports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithAPIKey creates a config file with a fake OpenAI API key for tests
// that require API key validation to pass.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("openai:\n  api_key: fake-key-for-testing\n  model: gpt-4o-mini\n")...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// SubjectOption configures optional fields when creating a subject file fixture.
type SubjectOption func(*subjectConfig)

type subjectConfig struct {
	week     int
	attempts []question.Attempt
}

// WithWeek places the fixture questions in the given week instead of week 1.
func WithWeek(week int) SubjectOption {
	return func(cfg *subjectConfig) {
		cfg.week = week
	}
}

// WithAttempts attaches an attempt history to every fixture question.
func WithAttempts(attempts ...question.Attempt) SubjectOption {
	return func(cfg *subjectConfig) {
		cfg.attempts = attempts
	}
}

// CreateSubjectFile writes a subject file with the given question texts under questionsDir.
func CreateSubjectFile(t *testing.T, questionsDir, subject string, questionTexts []string, opts ...SubjectOption) {
	t.Helper()

	cfg := subjectConfig{week: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	require.NoError(t, os.MkdirAll(questionsDir, 0755))

	questions := make([]question.Question, 0, len(questionTexts))
	for _, text := range questionTexts {
		q := question.Question{
			Week:     cfg.week,
			Question: text,
			Answer:   "answer to " + text,
			Attempts: cfg.attempts,
		}
		if len(cfg.attempts) > 0 {
			timestamp := cfg.attempts[len(cfg.attempts)-1].Timestamp
			q.LastPracticed = &timestamp
		}
		questions = append(questions, q)
	}

	repository := question.NewFileQuestionRepository(questionsDir)
	require.NoError(t, repository.SaveSubject(context.Background(), subject, questions))
}
