// Package feedback grades free-text practice answers.
package feedback

import "context"

//go:generate mockgen -source=feedback.go -destination=../mocks/feedback/mock_client.go -package=mock_feedback

// Request carries one answer to grade. ExpectedAnswer may be empty, in
// which case the grader judges the answer on general correctness.
type Request struct {
	Question       string
	ExpectedAnswer string
	UserAnswer     string
}

// Evaluation is the grader's verdict: a 1-5 score, short feedback, and a
// hint when the score is below 4.
type Evaluation struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
	Hint     string `json:"hint,omitempty"`
}

// Client grades answers. Implementations call an external model.
type Client interface {
	EvaluateAnswer(ctx context.Context, request Request) (Evaluation, error)
}
