// Package question provides study question domain models and repositories.
package question

import (
	"errors"
	"fmt"
	"strings"

	"github.com/studylegend/backend/internal/scoring"
)

// ErrInvalidScore is returned when an attempt carries a score outside 1-5.
var ErrInvalidScore = errors.New("attempt score must be between 1 and 5")

// Attempt is a single graded practice of a question. Attempts are
// append-only; a stored attempt is never edited.
type Attempt struct {
	Score      int    `yaml:"score" db:"score"`
	Timestamp  int64  `yaml:"timestamp" db:"created_at"`
	UserAnswer string `yaml:"user_answer,omitempty" db:"user_answer"`
}

// Validate checks the attempt before it is appended to a history.
func (a Attempt) Validate() error {
	if a.Score < 1 || a.Score > scoring.MaxScore {
		return fmt.Errorf("%w: got %d", ErrInvalidScore, a.Score)
	}
	return nil
}

// Question is a prompt/answer pair with its practice history.
// Attempts are ordered oldest first. LastPracticed is nil for a question
// that has never been practiced and otherwise equals the newest attempt's
// timestamp; AppendAttempt maintains that invariant.
type Question struct {
	ID            int64     `yaml:"-" db:"id"`
	Subject       string    `yaml:"-" db:"subject"`
	Week          int       `yaml:"-" db:"week"`
	Position      int       `yaml:"-" db:"position"`
	Question      string    `yaml:"question" db:"question"`
	Answer        string    `yaml:"answer" db:"answer"`
	Attempts      []Attempt `yaml:"attempts,omitempty" db:"-"`
	LastPracticed *int64    `yaml:"last_practiced,omitempty" db:"last_practiced"`
}

// AppendAttempt validates and records a new attempt, updating LastPracticed.
func (q *Question) AppendAttempt(attempt Attempt) error {
	if err := attempt.Validate(); err != nil {
		return err
	}
	q.Attempts = append(q.Attempts, attempt)
	timestamp := attempt.Timestamp
	q.LastPracticed = &timestamp
	return nil
}

// ScoringAttempts converts the history into the scoring engine's view.
func (q Question) ScoringAttempts() []scoring.Attempt {
	if len(q.Attempts) == 0 {
		return nil
	}
	attempts := make([]scoring.Attempt, len(q.Attempts))
	for i, attempt := range q.Attempts {
		attempts[i] = scoring.Attempt{Score: attempt.Score, Timestamp: attempt.Timestamp}
	}
	return attempts
}

// WeightedScore computes the question's current mastery score.
func (q Question) WeightedScore(settings scoring.Settings, now int64) *scoring.Result {
	return scoring.ComputeWeightedScore(q.ScoringAttempts(), q.LastPracticed, settings, now)
}

// Validate reports problems with the question's content and history.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return errors.New("question text is empty")
	}
	for i, attempt := range q.Attempts {
		if err := attempt.Validate(); err != nil {
			return fmt.Errorf("attempt[%d] > %w", i, err)
		}
	}
	return nil
}
