// Package scoring computes time-weighted mastery scores for study questions.
package scoring

import "math"

const (
	DefaultDecayFactor           = 0.1
	DefaultForgettingDecayFactor = 0.05

	secondsPerDay = 86400
)

// MaxScore is the highest self-rated grade for an attempt.
const MaxScore = 5

// Settings holds the per-user tunable decay rates.
type Settings struct {
	DecayFactor           float64 `db:"decay_factor" yaml:"decay_factor"`
	ForgettingDecayFactor float64 `db:"forgetting_decay_factor" yaml:"forgetting_decay_factor"`
}

// DefaultSettings returns the settings applied when a user has never saved any.
func DefaultSettings() Settings {
	return Settings{
		DecayFactor:           DefaultDecayFactor,
		ForgettingDecayFactor: DefaultForgettingDecayFactor,
	}
}

// Attempt is the minimal view of a graded practice attempt the engine needs.
type Attempt struct {
	Score     int
	Timestamp int64
}

// Result is a computed weighted score.
// ForgettingApplied reports whether the time-since-last-practice decay ran;
// it is false when no last-practiced timestamp was available and the value
// is the plain recency-weighted average.
type Result struct {
	Value             float64
	ForgettingApplied bool
}

// ComputeWeightedScore converts an attempt history into a single mastery value.
//
// Each attempt is weighted by exp(-decayFactor * ageDays) so that recent
// attempts dominate the average. The result is then multiplied by
// exp(-forgettingDecayFactor * elapsedDays) where elapsedDays is the time
// since lastPracticed, so a question decays toward 0 when left alone even if
// its history is strong.
//
// Returns nil when attempts is empty or the weight sum degenerates to zero:
// "never practiced" is a distinct state from "practiced and weak".
func ComputeWeightedScore(attempts []Attempt, lastPracticed *int64, settings Settings, now int64) *Result {
	if len(attempts) == 0 {
		return nil
	}

	var totalWeight, totalWeightedScore float64
	for _, attempt := range attempts {
		// Negative ages (future-dated timestamps) are not clamped: the
		// exponential yields a weight above 1 and the attempt dominates
		// the average. Elapsed time below is clamped; this asymmetry
		// matches the historical behavior of the score data.
		ageDays := float64(now-attempt.Timestamp) / secondsPerDay
		weight := math.Exp(-settings.DecayFactor * ageDays)

		totalWeightedScore += float64(attempt.Score) * weight
		totalWeight += weight
	}

	// Only reachable when every weight underflows to zero.
	if totalWeight <= 0 {
		return nil
	}
	weightedScore := totalWeightedScore / totalWeight

	if lastPracticed == nil {
		return &Result{Value: weightedScore}
	}

	elapsedDays := float64(now-*lastPracticed) / secondsPerDay
	if elapsedDays < 0 {
		// Clock skew or bad data: treat as "no time has passed" rather
		// than letting a negative elapsed time inflate the score.
		elapsedDays = 0
	}
	forgettingFactor := settings.ForgettingDecayFactor
	if forgettingFactor < 0 {
		forgettingFactor = 0
	}

	return &Result{
		Value:             weightedScore * math.Exp(-forgettingFactor*elapsedDays),
		ForgettingApplied: true,
	}
}

// Band classifies a weighted score for display.
type Band string

const (
	BandUnrated Band = "unrated"
	BandWeak    Band = "weak"
	BandMedium  Band = "medium"
	BandGood    Band = "good"
)

// Classify maps a weighted score to its traffic-light band.
// A nil result means the question has never been practiced.
func Classify(result *Result) Band {
	if result == nil {
		return BandUnrated
	}
	switch {
	case result.Value >= 4:
		return BandGood
	case result.Value >= 2:
		return BandMedium
	default:
		return BandWeak
	}
}
