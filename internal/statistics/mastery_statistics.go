package statistics

import (
	"sort"

	"github.com/studylegend/backend/internal/question"
	"github.com/studylegend/backend/internal/scoring"
)

// Metrics summarizes the mastery of a set of questions.
type Metrics struct {
	TotalQuestions     int
	AttemptedQuestions int
	TotalAttempts      int
	AverageScore       *float64 // nil when no question has a score
	GoodCount          int      // weighted score >= 4
	MediumCount        int      // weighted score in [2, 4)
	WeakCount          int      // weighted score < 2
	UnratedCount       int      // never attempted
	MasteryPercent     float64  // good questions / total questions * 100
}

// GroupStatistics holds the metrics for one subject and week.
type GroupStatistics struct {
	Subject string
	Week    int
	Metrics
}

// StatisticsResult holds per-group and aggregate mastery metrics.
type StatisticsResult struct {
	Groups    []GroupStatistics
	Aggregate Metrics
}

// groupKey identifies a subject/week bucket.
type groupKey struct {
	subject string
	week    int
}

// CalculateStatistics computes mastery metrics for questions, grouped by
// subject and week, plus an aggregate over all of them. Scores are
// evaluated with the supplied settings at the injected now.
func CalculateStatistics(questions []question.Question, settings scoring.Settings, now int64) StatisticsResult {
	groups := make(map[groupKey]*Metrics)
	var order []groupKey
	aggregate := &Metrics{}

	for _, q := range questions {
		key := groupKey{subject: q.Subject, week: q.Week}
		group, ok := groups[key]
		if !ok {
			group = &Metrics{}
			groups[key] = group
			order = append(order, key)
		}

		result := q.WeightedScore(settings, now)
		addQuestion(group, q, result)
		addQuestion(aggregate, q, result)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].subject != order[j].subject {
			return order[i].subject < order[j].subject
		}
		return order[i].week < order[j].week
	})

	result := StatisticsResult{Aggregate: finalize(aggregate)}
	for _, key := range order {
		result.Groups = append(result.Groups, GroupStatistics{
			Subject: key.subject,
			Week:    key.week,
			Metrics: finalize(groups[key]),
		})
	}
	return result
}

// scoreSum carries the running average through the pass; AverageScore
// holds the sum until finalize divides it by the scored-question count.
func addQuestion(m *Metrics, q question.Question, result *scoring.Result) {
	m.TotalQuestions++
	m.TotalAttempts += len(q.Attempts)
	if len(q.Attempts) > 0 {
		m.AttemptedQuestions++
	}

	switch scoring.Classify(result) {
	case scoring.BandGood:
		m.GoodCount++
	case scoring.BandMedium:
		m.MediumCount++
	case scoring.BandWeak:
		m.WeakCount++
	default:
		m.UnratedCount++
	}

	if result != nil {
		if m.AverageScore == nil {
			m.AverageScore = new(float64)
		}
		*m.AverageScore += result.Value
	}
}

func finalize(m *Metrics) Metrics {
	out := *m
	scored := out.TotalQuestions - out.UnratedCount
	if out.AverageScore != nil && scored > 0 {
		average := *out.AverageScore / float64(scored)
		out.AverageScore = &average
	}
	if out.TotalQuestions > 0 {
		out.MasteryPercent = float64(out.GoodCount) / float64(out.TotalQuestions) * 100
	}
	return out
}
