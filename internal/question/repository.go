package question

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/studylegend/backend/internal/database"
)

// DBQuestionRepository implements Repository using MySQL.
type DBQuestionRepository struct {
	db *sqlx.DB
}

// NewDBQuestionRepository creates a new DBQuestionRepository.
func NewDBQuestionRepository(db *sqlx.DB) *DBQuestionRepository {
	return &DBQuestionRepository{db: db}
}

type attemptRow struct {
	QuestionID int64  `db:"question_id"`
	Score      int    `db:"score"`
	CreatedAt  int64  `db:"created_at"`
	UserAnswer string `db:"user_answer"`
}

// FindAll returns all questions with their attempt histories, ordered by
// subject, week, then position.
func (r *DBQuestionRepository) FindAll(ctx context.Context) ([]Question, error) {
	var questions []Question
	if err := r.db.SelectContext(ctx, &questions,
		"SELECT id, subject, week, position, question, answer, last_practiced FROM questions ORDER BY subject, week, position"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(questions) > %w", err)
	}
	if err := r.attachAttempts(ctx, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// FindBySubject returns the questions of one subject with their attempt
// histories, ordered by week then position.
func (r *DBQuestionRepository) FindBySubject(ctx context.Context, subject string) ([]Question, error) {
	var questions []Question
	if err := r.db.SelectContext(ctx, &questions,
		"SELECT id, subject, week, position, question, answer, last_practiced FROM questions WHERE subject = ? ORDER BY week, position",
		subject); err != nil {
		return nil, fmt.Errorf("db.SelectContext(questions by subject) > %w", err)
	}
	if err := r.attachAttempts(ctx, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// FindByID returns a single question with its attempt history, or nil if
// it does not exist.
func (r *DBQuestionRepository) FindByID(ctx context.Context, id int64) (*Question, error) {
	var q Question
	err := r.db.GetContext(ctx, &q,
		"SELECT id, subject, week, position, question, answer, last_practiced FROM questions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(question) > %w", err)
	}

	questions := []Question{q}
	if err := r.attachAttempts(ctx, questions); err != nil {
		return nil, err
	}
	return &questions[0], nil
}

// Subjects lists the distinct subjects that have questions.
func (r *DBQuestionRepository) Subjects(ctx context.Context) ([]string, error) {
	var subjects []string
	if err := r.db.SelectContext(ctx, &subjects,
		"SELECT DISTINCT subject FROM questions ORDER BY subject"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(subjects) > %w", err)
	}
	return subjects, nil
}

// AppendAttempt records an attempt for q. The question row is locked for
// the duration of the transaction so concurrent appends to the same
// question serialize and last_practiced never goes backwards.
func (r *DBQuestionRepository) AppendAttempt(ctx context.Context, q *Question, attempt Attempt) error {
	if err := attempt.Validate(); err != nil {
		return err
	}

	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var lockedID int64
		if err := tx.GetContext(ctx, &lockedID,
			"SELECT id FROM questions WHERE id = ? FOR UPDATE", q.ID); err != nil {
			return fmt.Errorf("tx.GetContext(lock question) > %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO attempts (question_id, score, created_at, user_answer) VALUES (?, ?, ?, ?)",
			q.ID, attempt.Score, attempt.Timestamp, attempt.UserAnswer); err != nil {
			return fmt.Errorf("tx.ExecContext(insert attempt) > %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE questions SET last_practiced = ? WHERE id = ?",
			attempt.Timestamp, q.ID); err != nil {
			return fmt.Errorf("tx.ExecContext(update last_practiced) > %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	q.Attempts = append(q.Attempts, attempt)
	timestamp := attempt.Timestamp
	q.LastPracticed = &timestamp
	return nil
}

// Create inserts a question and its existing attempts, used by the YAML
// import migration.
func (r *DBQuestionRepository) Create(ctx context.Context, q *Question) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO questions (subject, week, position, question, answer, last_practiced) VALUES (?, ?, ?, ?, ?, ?)",
		q.Subject, q.Week, q.Position, q.Question, q.Answer, q.LastPracticed)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert question) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	q.ID = id

	for _, attempt := range q.Attempts {
		if _, err := r.db.ExecContext(ctx,
			"INSERT INTO attempts (question_id, score, created_at, user_answer) VALUES (?, ?, ?, ?)",
			q.ID, attempt.Score, attempt.Timestamp, attempt.UserAnswer); err != nil {
			return fmt.Errorf("db.ExecContext(insert attempt) > %w", err)
		}
	}
	return nil
}

func (r *DBQuestionRepository) attachAttempts(ctx context.Context, questions []Question) error {
	if len(questions) == 0 {
		return nil
	}

	ids := make([]int64, len(questions))
	index := make(map[int64]int, len(questions))
	for i := range questions {
		ids[i] = questions[i].ID
		index[questions[i].ID] = i
	}

	query, args, err := sqlx.In(
		"SELECT question_id, score, created_at, user_answer FROM attempts WHERE question_id IN (?) ORDER BY created_at, id", ids)
	if err != nil {
		return fmt.Errorf("sqlx.In(attempts) > %w", err)
	}

	var rows []attemptRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("db.SelectContext(attempts) > %w", err)
	}

	for _, row := range rows {
		i, ok := index[row.QuestionID]
		if !ok {
			continue
		}
		questions[i].Attempts = append(questions[i].Attempts, Attempt{
			Score:      row.Score,
			Timestamp:  row.CreatedAt,
			UserAnswer: row.UserAnswer,
		})
	}
	return nil
}
