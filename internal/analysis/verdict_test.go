package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor_Bands(t *testing.T) {
	thr := DefaultThresholds()

	tests := []struct {
		score float64
		want  QualityLevel
	}{
		{100, QualityVeryLow},
		{90, QualityVeryLow}, // inclusive lower edge
		{89.9, QualityLow},
		{75, QualityLow},
		{74.9, QualityMedium},
		{50, QualityMedium},
		{49.9, QualityHigh},
		{25, QualityHigh},
		{24.9, QualityCritical},
		{0, QualityCritical},
	}
	for _, tt := range tests {
		got := levelFor(tt.score, nil, thr)
		assert.Equal(t, tt.want, got, "score %.1f", tt.score)
	}
}

func TestClassify_CriticalOverride(t *testing.T) {
	thr := DefaultThresholds()

	t.Run("confident critical concern floors the verdict", func(t *testing.T) {
		concerns := []ConcernSignal{
			{Category: "Blasphemy", Severity: SeverityCritical, Confidence: 0.95},
		}
		v := Classify(92, nil, concerns, thr)
		assert.Equal(t, QualityCritical, v.QualityLevel)
	})

	t.Run("low-confidence critical concern does not", func(t *testing.T) {
		concerns := []ConcernSignal{
			{Category: "Blasphemy", Severity: SeverityCritical, Confidence: 0.5},
		}
		v := Classify(92, nil, concerns, thr)
		assert.Equal(t, QualityVeryLow, v.QualityLevel)
	})

	t.Run("confidence exactly at the floor triggers it", func(t *testing.T) {
		concerns := []ConcernSignal{
			{Category: "Anti-Christian", Severity: SeverityCritical, Confidence: 0.8},
		}
		v := Classify(92, nil, concerns, thr)
		assert.Equal(t, QualityCritical, v.QualityLevel)
	})

	t.Run("high severity never overrides", func(t *testing.T) {
		concerns := []ConcernSignal{
			{Category: "Occult", Severity: SeverityHigh, Confidence: 1.0},
		}
		v := Classify(92, nil, concerns, thr)
		assert.Equal(t, QualityVeryLow, v.QualityLevel)
	})
}

func TestClassify_WordingVariesWithGospelPresence(t *testing.T) {
	thr := DefaultThresholds()
	gospel := []ThemeSignal{{Name: "Christ-centered", Confidence: 0.9, Category: CategoryCoreGospel}}
	neutral := []ThemeSignal{{Name: "Peace", Confidence: 0.9, Category: CategoryNeutral}}

	withGospel := Classify(95, gospel, nil, thr)
	without := Classify(95, neutral, nil, thr)

	assert.Equal(t, withGospel.QualityLevel, without.QualityLevel)
	assert.NotEqual(t, withGospel.Summary, without.Summary)
	assert.NotEqual(t, withGospel.Guidance, without.Guidance)
}

func TestClassify_Deterministic(t *testing.T) {
	thr := DefaultThresholds()
	themes := []ThemeSignal{{Name: "Hope", Confidence: 0.6, Category: CategoryNeutral}}
	concerns := []ConcernSignal{{Category: "Pride", Severity: SeverityMedium, Confidence: 0.4}}

	first := Classify(62.5, themes, concerns, thr)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Classify(62.5, themes, concerns, thr))
	}
	assert.NotEmpty(t, first.Summary)
	assert.NotEmpty(t, first.Guidance)
}

func TestThresholds_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, DefaultThresholds().Validate())
	})

	t.Run("rejects overlapping bands", func(t *testing.T) {
		thr := Thresholds{VeryLow: 75, Low: 75, Medium: 50, High: 25, CriticalOverrideConfidence: 0.8}
		assert.Error(t, thr.Validate())
	})

	t.Run("rejects inverted bands", func(t *testing.T) {
		thr := Thresholds{VeryLow: 25, Low: 50, Medium: 75, High: 90, CriticalOverrideConfidence: 0.8}
		assert.Error(t, thr.Validate())
	})

	t.Run("rejects out-of-range override confidence", func(t *testing.T) {
		thr := DefaultThresholds()
		thr.CriticalOverrideConfidence = 1.5
		assert.Error(t, thr.Validate())
	})
}
