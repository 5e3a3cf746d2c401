package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/studylegend/backend/internal/question"
)

// RunImportDB copies every question from the YAML subject files into
// the database, attempt history included. Existing database rows are
// left alone, so running the import twice duplicates questions.
func RunImportDB(
	ctx context.Context,
	source *question.FileQuestionRepository,
	destination *question.DBQuestionRepository,
	writer io.Writer,
) error {
	questions, err := source.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load questions: %w", err)
	}

	imported := 0
	attempts := 0
	for i := range questions {
		q := &questions[i]
		if err := q.Validate(); err != nil {
			return fmt.Errorf("invalid question %q in subject %s week %d: %w", q.Question, q.Subject, q.Week, err)
		}
		if err := destination.Create(ctx, q); err != nil {
			return fmt.Errorf("failed to import question %q: %w", q.Question, err)
		}
		imported++
		attempts += len(q.Attempts)
	}

	fmt.Fprintf(writer, "Imported %d question(s) with %d attempt(s).\n", imported, attempts)
	return nil
}
