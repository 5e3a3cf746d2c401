// Package practice selects and orders questions for a study session.
package practice

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"time"

	"github.com/studylegend/backend/internal/question"
	"github.com/studylegend/backend/internal/scoring"
)

// Mode controls how the practice queue is ordered.
type Mode string

const (
	// ModeSequential keeps the questions in their stored order.
	ModeSequential Mode = "sequential"
	// ModeRandom shuffles with a seed derived from the calendar date,
	// so the order is stable within a day but changes across days.
	ModeRandom Mode = "random"
	// ModeNeedsPractice puts the weakest and longest-unpracticed
	// questions first.
	ModeNeedsPractice Mode = "needs_practice"
)

// BuildQueue filters questions whose mastery score is at or below
// maxScoreThreshold (unscored questions always qualify) and orders them
// by mode. The input slice is not modified.
func BuildQueue(
	questions []question.Question,
	mode Mode,
	maxScoreThreshold float64,
	settings scoring.Settings,
	now int64,
) ([]question.Question, error) {
	if maxScoreThreshold < 0 || maxScoreThreshold > scoring.MaxScore {
		return nil, fmt.Errorf("max score threshold must be between 0 and %d: got %v", scoring.MaxScore, maxScoreThreshold)
	}

	type scored struct {
		question question.Question
		result   *scoring.Result
	}

	var queue []scored
	for _, q := range questions {
		result := q.WeightedScore(settings, now)
		if result != nil && result.Value > maxScoreThreshold {
			continue
		}
		queue = append(queue, scored{question: q, result: result})
	}

	switch mode {
	case ModeSequential:
		// stored order

	case ModeRandom:
		rng := rand.New(rand.NewSource(dateSeed(now)))
		rng.Shuffle(len(queue), func(i, j int) {
			queue[i], queue[j] = queue[j], queue[i]
		})

	case ModeNeedsPractice:
		sort.SliceStable(queue, func(i, j int) bool {
			a, b := sortScore(queue[i].result), sortScore(queue[j].result)
			if a != b {
				return a < b
			}
			return lessLastPracticed(queue[i].question.LastPracticed, queue[j].question.LastPracticed)
		})

	default:
		return nil, fmt.Errorf("unknown practice mode: %q", mode)
	}

	result := make([]question.Question, len(queue))
	for i, entry := range queue {
		result[i] = entry.question
	}
	return result, nil
}

// sortScore ranks never-attempted questions as worse than any real
// score, so they surface before even the weakest scored question.
func sortScore(result *scoring.Result) float64 {
	if result == nil {
		return -1
	}
	return result.Value
}

// lessLastPracticed orders never-practiced questions first, then older
// practice timestamps before newer ones.
func lessLastPracticed(a, b *int64) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return *a < *b
}

// dateSeed derives a shuffle seed from now's UTC calendar date.
func dateSeed(now int64) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(time.Unix(now, 0).UTC().Format("2006-01-02")))
	return int64(h.Sum64())
}
