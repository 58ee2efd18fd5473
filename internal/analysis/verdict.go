package analysis

import "fmt"

// Thresholds is the strictly descending score partition that maps a final
// score to a quality level. Each bound is the inclusive lower edge of its
// band; everything below the last bound is Critical.
type Thresholds struct {
	VeryLow float64 // score >= VeryLow -> Very Low concern
	Low     float64
	Medium  float64
	High    float64
	// CriticalOverrideConfidence is the confidence floor at which a single
	// critical-severity concern forces a Critical verdict regardless of
	// score.
	CriticalOverrideConfidence float64
}

// DefaultThresholds returns the built-in score bands.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VeryLow:                    90,
		Low:                        75,
		Medium:                     50,
		High:                       25,
		CriticalOverrideConfidence: 0.8,
	}
}

// Validate checks the bands form a strictly descending partition of
// [0,100] with no gaps or overlaps.
func (t Thresholds) Validate() error {
	if !(100 >= t.VeryLow && t.VeryLow > t.Low && t.Low > t.Medium && t.Medium > t.High && t.High > 0) {
		return fmt.Errorf("quality thresholds must strictly descend within (0,100]: %+v", t)
	}
	if t.CriticalOverrideConfidence < 0 || t.CriticalOverrideConfidence > 1 {
		return fmt.Errorf("critical override confidence must be in [0,1]")
	}
	return nil
}

// Classify maps a final score and the concern list to a verdict. Evaluated
// top-down, first match wins; a confident critical concern floors the
// verdict at Critical no matter how high the score is.
func Classify(finalScore float64, themes []ThemeSignal, concerns []ConcernSignal, t Thresholds) Verdict {
	level := levelFor(finalScore, concerns, t)
	gospel := hasCoreGospel(themes)
	return Verdict{
		QualityLevel: level,
		Summary:      summaryFor(level, gospel),
		Guidance:     guidanceFor(level, gospel),
	}
}

func levelFor(finalScore float64, concerns []ConcernSignal, t Thresholds) QualityLevel {
	for _, c := range concerns {
		if c.Severity == SeverityCritical && c.Confidence >= t.CriticalOverrideConfidence {
			return QualityCritical
		}
	}
	switch {
	case finalScore >= t.VeryLow:
		return QualityVeryLow
	case finalScore >= t.Low:
		return QualityLow
	case finalScore >= t.Medium:
		return QualityMedium
	case finalScore >= t.High:
		return QualityHigh
	default:
		return QualityCritical
	}
}

func hasCoreGospel(themes []ThemeSignal) bool {
	for _, t := range themes {
		if t.Category == CategoryCoreGospel {
			return true
		}
	}
	return false
}

// Verdict wording is a fixed template set keyed by quality level and
// whether a core gospel theme was detected. Deterministic by construction.

var summaries = map[QualityLevel][2]string{
	// index 0: no gospel theme, index 1: gospel theme present
	QualityVeryLow: {
		"Strong, spiritually encouraging content with no meaningful concerns detected.",
		"Gospel-rich content that clearly centers on Christ; excellent for regular listening.",
	},
	QualityLow: {
		"Generally wholesome content with only minor concerns worth a brief look.",
		"Solid Christ-centered content with minor elements worth noting.",
	},
	QualityMedium: {
		"Mixed content; some themes encourage while other elements call for discernment.",
		"Gospel themes are present, but mixed messaging calls for discernment.",
	},
	QualityHigh: {
		"Content carries significant concerns that can shape listeners negatively over time.",
		"Despite some redemptive language, serious concerns outweigh the positive themes here.",
	},
	QualityCritical: {
		"Content is severely at odds with Christian formation and is not recommended.",
		"Serious concerns overwhelm any redemptive elements; this content is not recommended.",
	},
	QualityUnknown: {
		"Analysis could not reach a confident conclusion for this content.",
		"Analysis could not reach a confident conclusion for this content.",
	},
}

var guidances = map[QualityLevel][2]string{
	QualityVeryLow: {
		"Enjoy freely. Consider pairing listening with the supporting scripture to deepen the themes this song raises.",
		"Enjoy freely and often. Songs like this can anchor worship habits; the referenced passages make good companion reading.",
	},
	QualityLow: {
		"Suitable for regular listening. A quick review of the flagged items is enough for most listeners.",
		"Suitable for regular listening and worship settings. Revisit the noted items if sharing with younger listeners.",
	},
	QualityMedium: {
		"Listen with discernment. Weigh the flagged concerns against the positive themes and consider the song's overall direction.",
		"Listen with discernment. The gospel themes are real, but so are the concerns; let scripture arbitrate the tension.",
	},
	QualityHigh: {
		"Approach with caution. Repeated exposure to these themes can normalize them; consider alternatives that build rather than erode.",
		"Approach with caution despite the redemptive notes. The concerning content dominates and repeated listening is not advised.",
	},
	QualityCritical: {
		"Avoid. The content works directly against Christian formation, and no redemptive frame offsets it.",
		"Avoid. Scattered redemptive language does not offset content that works directly against Christian formation.",
	},
	QualityUnknown: {
		"Treat this result as neutral. Re-run the analysis with a different provider or review the lyrics manually.",
		"Treat this result as neutral. Re-run the analysis with a different provider or review the lyrics manually.",
	},
}

func summaryFor(level QualityLevel, gospel bool) string {
	pair, ok := summaries[level]
	if !ok {
		pair = summaries[QualityUnknown]
	}
	if gospel {
		return pair[1]
	}
	return pair[0]
}

func guidanceFor(level QualityLevel, gospel bool) string {
	pair, ok := guidances[level]
	if !ok {
		pair = guidances[QualityUnknown]
	}
	if gospel {
		return pair[1]
	}
	return pair[0]
}
