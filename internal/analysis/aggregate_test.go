package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_ThemeBonus(t *testing.T) {
	w := DefaultWeights()
	p := DefaultScorePolicy()

	t.Run("core gospel theme weighted by 1.5", func(t *testing.T) {
		themes := []ThemeSignal{
			{Name: "Christ-centered", Confidence: 0.9, Category: CategoryCoreGospel},
		}
		b := Aggregate(themes, nil, Sentiment{}, Sentiment{}, w, p)

		assert.InDelta(t, 10*0.9, b.ThemeBonusRaw, 1e-9)
		assert.InDelta(t, 10*0.9*1.5, b.ThemeBonusWeighted, 1e-9)
		assert.InDelta(t, 50+13.5, b.FinalScore, 1e-9)
	})

	t.Run("unknown theme contributes nothing", func(t *testing.T) {
		themes := []ThemeSignal{
			{Name: "Quantum Resonance", Confidence: 1.0, Category: CategoryNeutral},
		}
		b := Aggregate(themes, nil, Sentiment{}, Sentiment{}, w, p)

		assert.Zero(t, b.ThemeBonusRaw)
		assert.Equal(t, 50.0, b.FinalScore)
	})

	t.Run("empty signals yield base score", func(t *testing.T) {
		b := Aggregate(nil, nil, Sentiment{}, Sentiment{}, w, p)
		assert.Equal(t, 50.0, b.FinalScore)
		assert.Zero(t, b.ThemeBonusWeighted)
		assert.Zero(t, b.ConcernPenaltyRaw)
	})
}

func TestAggregate_ConcernPenalty(t *testing.T) {
	w := DefaultWeights()
	p := DefaultScorePolicy()

	concerns := []ConcernSignal{
		{Category: "Occult", Severity: SeverityHigh, Confidence: 0.8},
		{Category: "Despair", Severity: SeverityMedium, Confidence: 0.5},
	}
	b := Aggregate(nil, concerns, Sentiment{}, Sentiment{}, w, p)

	assert.InDelta(t, 25*0.8+15*0.5, b.ConcernPenaltyRaw, 1e-9)
	assert.InDelta(t, 50-(25*0.8+15*0.5), b.FinalScore, 1e-9)
}

func TestAggregate_SeverityOrdering(t *testing.T) {
	// A worse severity at equal confidence must always cost more.
	w := DefaultWeights()
	p := DefaultScorePolicy()

	scoreAt := func(sev Severity) float64 {
		concerns := []ConcernSignal{{Category: "Profanity", Severity: sev, Confidence: 0.9}}
		return Aggregate(nil, concerns, Sentiment{}, Sentiment{}, w, p).FinalScore
	}

	assert.Greater(t, scoreAt(SeverityLow), scoreAt(SeverityMedium))
	assert.Greater(t, scoreAt(SeverityMedium), scoreAt(SeverityHigh))
	assert.Greater(t, scoreAt(SeverityHigh), scoreAt(SeverityCritical))
}

func TestAggregate_SentimentAdjustment(t *testing.T) {
	w := DefaultWeights()
	p := DefaultScorePolicy()

	tests := []struct {
		name string
		s    Sentiment
		want float64
	}{
		{"positive scales up", Sentiment{Label: "positive", Confidence: 0.6}, 6},
		{"negative scales down", Sentiment{Label: "negative", Confidence: 0.5}, -5},
		{"strong positive at full confidence caps at max", Sentiment{Label: "strong_positive", Confidence: 1.0}, 10},
		{"confidence above one is clamped", Sentiment{Label: "positive", Confidence: 3.0}, 10},
		{"neutral label ignored", Sentiment{Label: "neutral", Confidence: 0.9}, 0},
		{"empty signal ignored", Sentiment{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Aggregate(nil, nil, tt.s, Sentiment{}, w, p)
			assert.InDelta(t, tt.want, b.SentimentAdjustment, 1e-9)
		})
	}
}

func TestAggregate_EmotionAdjustment(t *testing.T) {
	w := DefaultWeights()
	p := DefaultScorePolicy()

	t.Run("anger penalized", func(t *testing.T) {
		b := Aggregate(nil, nil, Sentiment{}, Sentiment{Label: "anger", Confidence: 0.5}, w, p)
		assert.InDelta(t, -4, b.EmotionAdjustment, 1e-9)
	})

	t.Run("sadness alone is never penalized", func(t *testing.T) {
		b := Aggregate(nil, nil, Sentiment{}, Sentiment{Label: "sadness", Confidence: 1.0}, w, p)
		assert.Zero(t, b.EmotionAdjustment)
	})

	t.Run("lament exemption: fear with confident hope theme", func(t *testing.T) {
		themes := []ThemeSignal{{Name: "Hope", Confidence: 0.7, Category: CategoryNeutral}}
		b := Aggregate(themes, nil, Sentiment{}, Sentiment{Label: "fear", Confidence: 0.9}, w, p)
		assert.Zero(t, b.EmotionAdjustment)
	})

	t.Run("hope below confidence floor does not exempt", func(t *testing.T) {
		themes := []ThemeSignal{{Name: "Hope", Confidence: 0.3, Category: CategoryNeutral}}
		b := Aggregate(themes, nil, Sentiment{}, Sentiment{Label: "fear", Confidence: 0.9}, w, p)
		assert.InDelta(t, -8*0.9, b.EmotionAdjustment, 1e-9)
	})

	t.Run("lament disabled restores the penalty", func(t *testing.T) {
		noLament := p
		noLament.Lament.Enabled = false
		themes := []ThemeSignal{{Name: "Hope", Confidence: 0.9, Category: CategoryNeutral}}
		b := Aggregate(themes, nil, Sentiment{}, Sentiment{Label: "fear", Confidence: 0.5}, w, noLament)
		assert.InDelta(t, -4, b.EmotionAdjustment, 1e-9)
	})
}

func TestAggregate_FormationalPenalty(t *testing.T) {
	w := DefaultWeights()
	p := DefaultScorePolicy()

	severeConcerns := []ConcernSignal{
		{Category: "Occult", Severity: SeverityHigh, Confidence: 0.9},
		{Category: "Profanity", Severity: SeverityHigh, Confidence: 0.9},
		{Category: "Blasphemy", Severity: SeverityCritical, Confidence: 0.9},
	}
	negative := Sentiment{Label: "negative", Confidence: 0.85}

	t.Run("applies with severe concerns, no gospel, negative affect", func(t *testing.T) {
		b := Aggregate(nil, severeConcerns, negative, Sentiment{}, w, p)
		assert.Equal(t, -10.0, b.FormationalPenalty)
	})

	t.Run("gospel counterweight defuses it", func(t *testing.T) {
		themes := []ThemeSignal{{Name: "Redemption", Confidence: 0.6, Category: CategoryCoreGospel}}
		b := Aggregate(themes, severeConcerns, negative, Sentiment{}, w, p)
		assert.Zero(t, b.FormationalPenalty)
	})

	t.Run("weak gospel signal does not defuse it", func(t *testing.T) {
		themes := []ThemeSignal{{Name: "Redemption", Confidence: 0.2, Category: CategoryCoreGospel}}
		b := Aggregate(themes, severeConcerns, negative, Sentiment{}, w, p)
		assert.Equal(t, -10.0, b.FormationalPenalty)
	})

	t.Run("too few severe concerns", func(t *testing.T) {
		b := Aggregate(nil, severeConcerns[:2], negative, Sentiment{}, w, p)
		assert.Zero(t, b.FormationalPenalty)
	})

	t.Run("affect not confidently negative", func(t *testing.T) {
		mild := Sentiment{Label: "negative", Confidence: 0.4}
		b := Aggregate(nil, severeConcerns, mild, Sentiment{}, w, p)
		assert.Zero(t, b.FormationalPenalty)
	})

	t.Run("negative emotion alone can trigger it", func(t *testing.T) {
		b := Aggregate(nil, severeConcerns, Sentiment{}, Sentiment{Label: "anger", Confidence: 0.8}, w, p)
		assert.Equal(t, -10.0, b.FormationalPenalty)
	})
}

func TestAggregate_ClampsToRange(t *testing.T) {
	w := DefaultWeights()
	p := DefaultScorePolicy()

	t.Run("floors at zero", func(t *testing.T) {
		concerns := []ConcernSignal{
			{Category: "Blasphemy", Severity: SeverityCritical, Confidence: 1.0},
			{Category: "Occult", Severity: SeverityHigh, Confidence: 1.0},
			{Category: "Profanity", Severity: SeverityHigh, Confidence: 1.0},
		}
		b := Aggregate(nil, concerns, Sentiment{Label: "negative", Confidence: 1.0}, Sentiment{Label: "anger", Confidence: 1.0}, w, p)
		assert.Equal(t, 0.0, b.FinalScore)
	})

	t.Run("caps at one hundred", func(t *testing.T) {
		themes := []ThemeSignal{
			{Name: "Christ-centered", Confidence: 1.0, Category: CategoryCoreGospel},
			{Name: "Gospel presentation", Confidence: 1.0, Category: CategoryCoreGospel},
			{Name: "Redemption", Confidence: 1.0, Category: CategoryCoreGospel},
			{Name: "Sacrificial love", Confidence: 1.0, Category: CategoryCoreGospel},
		}
		b := Aggregate(themes, nil, Sentiment{Label: "positive", Confidence: 1.0}, Sentiment{}, w, p)
		assert.Equal(t, 100.0, b.FinalScore)
	})
}

func TestAggregate_Deterministic(t *testing.T) {
	w := DefaultWeights()
	p := DefaultScorePolicy()
	themes := []ThemeSignal{
		{Name: "Worship", Confidence: 0.8, Category: CategoryNeutral},
		{Name: "Redemption", Confidence: 0.6, Category: CategoryCoreGospel},
	}
	concerns := []ConcernSignal{
		{Category: "Pride", Severity: SeverityMedium, Confidence: 0.4},
	}
	sentiment := Sentiment{Label: "positive", Confidence: 0.7}

	first := Aggregate(themes, concerns, sentiment, Sentiment{}, w, p)
	for i := 0; i < 10; i++ {
		again := Aggregate(themes, concerns, sentiment, Sentiment{}, w, p)
		require.Empty(t, cmp.Diff(first, again))
	}
}

func TestAggregate_NilWeightsUsesDefaults(t *testing.T) {
	themes := []ThemeSignal{{Name: "Faith", Confidence: 1.0, Category: CategoryNeutral}}
	b := Aggregate(themes, nil, Sentiment{}, Sentiment{}, nil, DefaultScorePolicy())
	assert.InDelta(t, 53, b.FinalScore, 1e-9)
}
