package analysis

// ScorePolicy holds the tunable aggregation knobs. Magnitudes are policy;
// the invariants the core guarantees (range, monotonicity, lament filter)
// hold for any valid policy.
type ScorePolicy struct {
	// BaseScore is the starting score before any signal contribution.
	BaseScore float64

	// SentimentMax caps the sentiment nudge (confidence-scaled, signed).
	SentimentMax float64
	// EmotionMax caps the emotion nudge (confidence-scaled, always a
	// penalty, gated on NegativeEmotions).
	EmotionMax float64

	// NegativeEmotions is the allowlist of emotion labels that may incur
	// the emotion penalty. Sadness is deliberately absent by default:
	// lament alone is never penalized.
	NegativeEmotions []string

	// Lament exempts negative emotion paired with expressed hope.
	Lament LamentPolicy

	// Formational configures the bulk no-redemptive-frame penalty.
	Formational FormationalPolicy
}

// LamentPolicy exempts sorrow-with-hope content from the emotion penalty.
// Independent from the formational policy per the source behavior.
type LamentPolicy struct {
	Enabled bool
	// HopeThemes are theme names whose presence marks expressed hope.
	HopeThemes []string
	// HopeConfidenceMin is the minimum confidence for a hope theme to
	// activate the exemption.
	HopeConfidenceMin float64
}

// FormationalPolicy configures the flat penalty applied when content is
// pervasively severe with no redemptive counterbalance.
type FormationalPolicy struct {
	// Penalty is the flat delta applied when all triggers hold. Negative.
	Penalty float64
	// MinSevereConcerns is the minimum count of high/critical concerns.
	MinSevereConcerns int
	// GospelCounterweightMin is the core-gospel confidence that defuses
	// the penalty.
	GospelCounterweightMin float64
	// NegativeSentimentMin is the minimum confidence of a negative
	// dominant sentiment or emotion for the penalty to apply.
	NegativeSentimentMin float64
}

// DefaultScorePolicy returns the built-in aggregation policy.
func DefaultScorePolicy() ScorePolicy {
	return ScorePolicy{
		BaseScore:        50,
		SentimentMax:     10,
		EmotionMax:       8,
		NegativeEmotions: []string{"anger", "fear", "disgust"},
		Lament: LamentPolicy{
			Enabled:           true,
			HopeThemes:        []string{"Hope", "Faith", "Victory in Christ", "Redemption"},
			HopeConfidenceMin: 0.5,
		},
		Formational: FormationalPolicy{
			Penalty:                -10,
			MinSevereConcerns:      3,
			GospelCounterweightMin: 0.5,
			NegativeSentimentMin:   0.7,
		},
	}
}

// Aggregate combines all signal contributions into a scoring breakdown.
// Pure: identical inputs always yield an identical breakdown. Empty signal
// lists contribute zero; nothing here can fail.
func Aggregate(themes []ThemeSignal, concerns []ConcernSignal, sentiment, emotion Sentiment, w *Weights, p ScorePolicy) ScoringBreakdown {
	if w == nil {
		w = DefaultWeights()
	}

	b := ScoringBreakdown{BaseScore: p.BaseScore}

	for _, t := range themes {
		points, mult := w.Theme(t.Name)
		b.ThemeBonusRaw += points * t.Confidence
		b.ThemeBonusWeighted += points * t.Confidence * mult
	}

	for _, c := range concerns {
		b.ConcernPenaltyRaw += w.Penalty(c.Severity) * c.Confidence
	}

	b.SentimentAdjustment = sentimentAdjustment(sentiment, p)
	b.EmotionAdjustment = emotionAdjustment(emotion, themes, p)

	if formationalTriggered(themes, concerns, sentiment, emotion, p.Formational) {
		b.FormationalPenalty = p.Formational.Penalty
	}

	b.FinalScore = clamp(
		b.BaseScore+b.ThemeBonusWeighted+b.SentimentAdjustment+b.EmotionAdjustment-
			b.ConcernPenaltyRaw+b.FormationalPenalty,
		0, 100)
	return b
}

func sentimentAdjustment(s Sentiment, p ScorePolicy) float64 {
	if s.Label == "" || s.Confidence <= 0 {
		return 0
	}
	conf := clampConfidence(s.Confidence)
	switch s.Label {
	case "positive", "strong_positive":
		return p.SentimentMax * conf
	case "negative", "strong_negative":
		return -p.SentimentMax * conf
	}
	return 0
}

func emotionAdjustment(e Sentiment, themes []ThemeSignal, p ScorePolicy) float64 {
	if e.Label == "" || e.Confidence <= 0 {
		return 0
	}
	allowed := false
	for _, l := range p.NegativeEmotions {
		if e.Label == l {
			allowed = true
			break
		}
	}
	if !allowed {
		return 0
	}
	if p.Lament.Enabled && hasHopeTheme(themes, p.Lament) {
		return 0
	}
	return -p.EmotionMax * clampConfidence(e.Confidence)
}

func hasHopeTheme(themes []ThemeSignal, lament LamentPolicy) bool {
	for _, t := range themes {
		for _, h := range lament.HopeThemes {
			if t.Name == h && t.Confidence >= lament.HopeConfidenceMin {
				return true
			}
		}
	}
	return false
}

// formationalTriggered checks the three-way trigger: pervasive severe
// concerns, no gospel counterbalance, and confidently negative affect.
func formationalTriggered(themes []ThemeSignal, concerns []ConcernSignal, sentiment, emotion Sentiment, fp FormationalPolicy) bool {
	if fp.Penalty == 0 || fp.MinSevereConcerns <= 0 {
		return false
	}

	severe := 0
	for _, c := range concerns {
		if c.Severity == SeverityHigh || c.Severity == SeverityCritical {
			severe++
		}
	}
	if severe < fp.MinSevereConcerns {
		return false
	}

	for _, t := range themes {
		if t.Category == CategoryCoreGospel && t.Confidence >= fp.GospelCounterweightMin {
			return false
		}
	}

	negSentiment := sentiment.IsNegative() && sentiment.Confidence >= fp.NegativeSentimentMin
	negEmotion := emotion.IsNegative() && emotion.Confidence >= fp.NegativeSentimentMin
	return negSentiment || negEmotion
}
