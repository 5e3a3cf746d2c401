package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studylegend/backend/internal/scoring"
)

func TestQuestion_AppendAttempt(t *testing.T) {
	tests := []struct {
		name        string
		question    Question
		attempt     Attempt
		wantErr     error
		wantLen     int
	}{
		{
			name:     "first attempt sets last practiced",
			question: Question{Question: "What is a goroutine?"},
			attempt:  Attempt{Score: 4, Timestamp: 1_750_000_000},
			wantLen:  1,
		},
		{
			name: "later attempt advances last practiced",
			question: Question{
				Question:      "What is a goroutine?",
				Attempts:      []Attempt{{Score: 2, Timestamp: 1_700_000_000}},
				LastPracticed: int64Ptr(1_700_000_000),
			},
			attempt: Attempt{Score: 5, Timestamp: 1_750_000_000},
			wantLen: 2,
		},
		{
			name:     "score below range is rejected",
			question: Question{Question: "What is a goroutine?"},
			attempt:  Attempt{Score: 0, Timestamp: 1_750_000_000},
			wantErr:  ErrInvalidScore,
		},
		{
			name:     "score above range is rejected",
			question: Question{Question: "What is a goroutine?"},
			attempt:  Attempt{Score: 6, Timestamp: 1_750_000_000},
			wantErr:  ErrInvalidScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.question
			before := len(q.Attempts)

			err := q.AppendAttempt(tt.attempt)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, q.Attempts, before)
				return
			}
			require.NoError(t, err)
			require.Len(t, q.Attempts, tt.wantLen)
			assert.Equal(t, tt.attempt, q.Attempts[len(q.Attempts)-1])
			require.NotNil(t, q.LastPracticed)
			assert.Equal(t, tt.attempt.Timestamp, *q.LastPracticed)
		})
	}
}

func TestQuestion_WeightedScore(t *testing.T) {
	now := int64(1_750_000_000)

	q := Question{
		Question:      "What is a channel?",
		Attempts:      []Attempt{{Score: 4, Timestamp: now}},
		LastPracticed: int64Ptr(now),
	}
	got := q.WeightedScore(scoring.DefaultSettings(), now)
	require.NotNil(t, got)
	assert.InDelta(t, 4.0, got.Value, 1e-9)
	assert.True(t, got.ForgettingApplied)

	unpracticed := Question{Question: "What is a channel?"}
	assert.Nil(t, unpracticed.WeightedScore(scoring.DefaultSettings(), now))
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		wantErr  bool
	}{
		{
			name:     "valid",
			question: Question{Question: "Q", Answer: "A", Attempts: []Attempt{{Score: 3, Timestamp: 1}}},
		},
		{
			name:     "empty question text",
			question: Question{Question: "  "},
			wantErr:  true,
		},
		{
			name:     "history with invalid score",
			question: Question{Question: "Q", Attempts: []Attempt{{Score: 9, Timestamp: 1}}},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.question.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}
