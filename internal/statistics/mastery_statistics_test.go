package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studylegend/backend/internal/question"
	"github.com/studylegend/backend/internal/scoring"
)

func TestCalculateStatistics(t *testing.T) {
	now := int64(1_750_000_000)

	// Attempts at age 0 with no last_practiced keep the weighted score
	// equal to the raw attempt score.
	questions := []question.Question{
		{
			Subject:  "biology",
			Week:     1,
			Question: "good",
			Attempts: []question.Attempt{{Score: 5, Timestamp: now}},
		},
		{
			Subject:  "biology",
			Week:     1,
			Question: "weak",
			Attempts: []question.Attempt{{Score: 1, Timestamp: now}},
		},
		{
			Subject:  "biology",
			Week:     2,
			Question: "medium",
			Attempts: []question.Attempt{{Score: 3, Timestamp: now}},
		},
		{
			Subject:  "chemistry",
			Week:     1,
			Question: "never attempted",
		},
	}

	got := CalculateStatistics(questions, scoring.DefaultSettings(), now)

	require.Len(t, got.Groups, 3)

	// Groups are ordered by subject then week.
	assert.Equal(t, "biology", got.Groups[0].Subject)
	assert.Equal(t, 1, got.Groups[0].Week)
	assert.Equal(t, "biology", got.Groups[1].Subject)
	assert.Equal(t, 2, got.Groups[1].Week)
	assert.Equal(t, "chemistry", got.Groups[2].Subject)

	week1 := got.Groups[0].Metrics
	assert.Equal(t, 2, week1.TotalQuestions)
	assert.Equal(t, 2, week1.AttemptedQuestions)
	assert.Equal(t, 1, week1.GoodCount)
	assert.Equal(t, 1, week1.WeakCount)
	assert.Equal(t, 0, week1.UnratedCount)
	require.NotNil(t, week1.AverageScore)
	assert.InDelta(t, 3.0, *week1.AverageScore, 1e-9)
	assert.InDelta(t, 50.0, week1.MasteryPercent, 1e-9)

	chemistry := got.Groups[2].Metrics
	assert.Equal(t, 1, chemistry.TotalQuestions)
	assert.Equal(t, 0, chemistry.AttemptedQuestions)
	assert.Equal(t, 1, chemistry.UnratedCount)
	assert.Nil(t, chemistry.AverageScore)
	assert.InDelta(t, 0.0, chemistry.MasteryPercent, 1e-9)

	aggregate := got.Aggregate
	assert.Equal(t, 4, aggregate.TotalQuestions)
	assert.Equal(t, 3, aggregate.AttemptedQuestions)
	assert.Equal(t, 3, aggregate.TotalAttempts)
	assert.Equal(t, 1, aggregate.GoodCount)
	assert.Equal(t, 1, aggregate.MediumCount)
	assert.Equal(t, 1, aggregate.WeakCount)
	assert.Equal(t, 1, aggregate.UnratedCount)
	require.NotNil(t, aggregate.AverageScore)
	assert.InDelta(t, 3.0, *aggregate.AverageScore, 1e-9)
	assert.InDelta(t, 25.0, aggregate.MasteryPercent, 1e-9)
}

func TestCalculateStatistics_Empty(t *testing.T) {
	got := CalculateStatistics(nil, scoring.DefaultSettings(), 1_750_000_000)

	assert.Empty(t, got.Groups)
	assert.Equal(t, 0, got.Aggregate.TotalQuestions)
	assert.Nil(t, got.Aggregate.AverageScore)
	assert.InDelta(t, 0.0, got.Aggregate.MasteryPercent, 1e-9)
}
