package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestComputeWeightedScore(t *testing.T) {
	now := int64(1_750_000_000)
	day := int64(86400)

	tests := []struct {
		name              string
		attempts          []Attempt
		lastPracticed     *int64
		settings          Settings
		wantNil           bool
		wantValue         float64
		wantForgetting    bool
		valueDelta        float64
	}{
		{
			name:     "empty attempts returns nil",
			attempts: nil,
			settings: DefaultSettings(),
			wantNil:  true,
		},
		{
			name: "single attempt at now without last practiced",
			attempts: []Attempt{
				{Score: 4, Timestamp: now},
			},
			settings:   DefaultSettings(),
			wantValue:  4.0,
			valueDelta: 0,
		},
		{
			name: "zero decay factors produce plain mean",
			attempts: []Attempt{
				{Score: 2, Timestamp: now - 300*day},
				{Score: 4, Timestamp: now - 3*day},
			},
			settings:   Settings{DecayFactor: 0, ForgettingDecayFactor: 0},
			wantValue:  3.0,
			valueDelta: 0,
		},
		{
			name: "recency weighting pulls toward the newer attempt",
			attempts: []Attempt{
				{Score: 5, Timestamp: now - 30*day},
				{Score: 1, Timestamp: now},
			},
			settings: DefaultSettings(),
			// weight(30d)=exp(-3)≈0.0498, so the average sits near 1,
			// well below the unweighted mean of 3.
			wantValue:  (5*math.Exp(-3) + 1) / (math.Exp(-3) + 1),
			valueDelta: 1e-9,
		},
		{
			name: "forgetting decay applies when last practiced is set",
			attempts: []Attempt{
				{Score: 5, Timestamp: now},
			},
			lastPracticed:  int64Ptr(now - 30*day),
			settings:       DefaultSettings(),
			wantValue:      5 * math.Exp(-0.05*30),
			wantForgetting: true,
			valueDelta:     1e-9,
		},
		{
			name: "zero forgetting factor leaves the weighted score unchanged",
			attempts: []Attempt{
				{Score: 5, Timestamp: now},
			},
			lastPracticed:  int64Ptr(now - 365*day),
			settings:       Settings{DecayFactor: 0.1, ForgettingDecayFactor: 0},
			wantValue:      5.0,
			wantForgetting: true,
			valueDelta:     0,
		},
		{
			name: "negative elapsed time is clamped to zero",
			attempts: []Attempt{
				{Score: 4, Timestamp: now},
			},
			lastPracticed:  int64Ptr(now + 10*day),
			settings:       DefaultSettings(),
			wantValue:      4.0,
			wantForgetting: true,
			valueDelta:     0,
		},
		{
			name: "negative forgetting factor is clamped to zero",
			attempts: []Attempt{
				{Score: 3, Timestamp: now},
			},
			lastPracticed:  int64Ptr(now - 10*day),
			settings:       Settings{DecayFactor: 0.1, ForgettingDecayFactor: -1},
			wantValue:      3.0,
			wantForgetting: true,
			valueDelta:     0,
		},
		{
			name: "two attempts with forgetting decay",
			attempts: []Attempt{
				{Score: 3, Timestamp: now - 10*day},
				{Score: 5, Timestamp: now - day},
			},
			lastPracticed:  int64Ptr(now - day),
			settings:       DefaultSettings(),
			// weights exp(-1)≈0.3679 and exp(-0.1)≈0.9048 give a weighted
			// average ≈4.42; one elapsed day multiplies by exp(-0.05)≈0.9512.
			wantValue:      4.206,
			wantForgetting: true,
			valueDelta:     0.001,
		},
		{
			name: "underflowed weights return nil",
			attempts: []Attempt{
				{Score: 5, Timestamp: now - 100_000*day},
			},
			settings: Settings{DecayFactor: 1000, ForgettingDecayFactor: 0},
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeWeightedScore(tt.attempts, tt.lastPracticed, tt.settings, now)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.wantValue, got.Value, tt.valueDelta)
			assert.Equal(t, tt.wantForgetting, got.ForgettingApplied)
		})
	}
}

func TestComputeWeightedScore_ForgettingMonotonicity(t *testing.T) {
	now := int64(1_750_000_000)
	day := int64(86400)
	attempts := []Attempt{{Score: 5, Timestamp: now}}

	fresh := ComputeWeightedScore(attempts, int64Ptr(now), DefaultSettings(), now)
	stale := ComputeWeightedScore(attempts, int64Ptr(now-30*day), DefaultSettings(), now)

	require.NotNil(t, fresh)
	require.NotNil(t, stale)
	assert.Less(t, stale.Value, fresh.Value)
	assert.LessOrEqual(t, fresh.Value, 5.0)
	assert.LessOrEqual(t, stale.Value, 5.0)
}

func TestComputeWeightedScore_Bounds(t *testing.T) {
	now := int64(1_750_000_000)
	day := int64(86400)

	// Any non-empty history of valid scores must stay in (0, 5] for any
	// non-negative factors.
	histories := [][]Attempt{
		{{Score: 1, Timestamp: now}},
		{{Score: 5, Timestamp: now - 1000*day}},
		{{Score: 1, Timestamp: now - 500*day}, {Score: 5, Timestamp: now}},
		{{Score: 3, Timestamp: now - day}, {Score: 2, Timestamp: now - 2*day}, {Score: 4, Timestamp: now}},
	}
	settingsList := []Settings{
		{DecayFactor: 0, ForgettingDecayFactor: 0},
		{DecayFactor: 0.1, ForgettingDecayFactor: 0.05},
		{DecayFactor: 2, ForgettingDecayFactor: 1},
	}

	for _, attempts := range histories {
		for _, settings := range settingsList {
			for _, lastPracticed := range []*int64{nil, int64Ptr(now - 7*day)} {
				got := ComputeWeightedScore(attempts, lastPracticed, settings, now)
				require.NotNil(t, got)
				assert.Greater(t, got.Value, 0.0)
				assert.LessOrEqual(t, got.Value, 5.0)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		want   Band
	}{
		{name: "nil result is unrated", result: nil, want: BandUnrated},
		{name: "4 and above is good", result: &Result{Value: 4.0}, want: BandGood},
		{name: "between 2 and 4 is medium", result: &Result{Value: 2.7}, want: BandMedium},
		{name: "below 2 is weak", result: &Result{Value: 1.99}, want: BandWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.result))
		})
	}
}
