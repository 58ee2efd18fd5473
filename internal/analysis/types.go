// Package analysis implements the lyric scoring core: signal extraction,
// theological weighting, score aggregation, verdict classification, and
// chunk merging. Everything in this package is pure and synchronous; the
// only external calls happen at the provider boundary in the pipeline.
package analysis

import (
	"encoding/json"
	"time"
)

// ThemeCategory groups positive themes by theological significance.
// Category determines the weighting multiplier applied during aggregation.
type ThemeCategory string

const (
	CategoryCoreGospel         ThemeCategory = "core_gospel"
	CategoryCharacterSpiritual ThemeCategory = "character_spiritual"
	CategoryNeutral            ThemeCategory = "neutral"
)

// Severity ranks how problematic a detected concern is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns the ordering position of a severity. Unknown strings rank
// lowest so malformed provider output can never escalate a concern.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// WorseOf returns the more severe of two severities.
func WorseOf(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// QualityLevel is the discrete, human-facing concern label derived from the
// final score and the critical-concern override floor.
type QualityLevel string

const (
	QualityUnknown  QualityLevel = "Unknown"
	QualityVeryLow  QualityLevel = "Very Low"
	QualityLow      QualityLevel = "Low"
	QualityMedium   QualityLevel = "Medium"
	QualityHigh     QualityLevel = "High"
	QualityCritical QualityLevel = "Critical"
)

// Rank returns the fixed severity ranking used by the chunk merger:
// Unknown=0 < Very Low=1 < Low=2 < Medium=3 < High=4 < Critical=5.
func (q QualityLevel) Rank() int {
	switch q {
	case QualityVeryLow:
		return 1
	case QualityLow:
		return 2
	case QualityMedium:
		return 3
	case QualityHigh:
		return 4
	case QualityCritical:
		return 5
	default:
		return 0
	}
}

// ThemeSignal is a detected positive thematic element. Signals are created
// by the extractors and never mutated afterwards.
type ThemeSignal struct {
	Name       string        `json:"theme"`
	Confidence float64       `json:"confidence"`
	Category   ThemeCategory `json:"category"`
	Evidence   []string      `json:"evidence,omitempty"`
}

// ConcernSignal is a detected negative content element.
type ConcernSignal struct {
	Category    string   `json:"category"`
	Severity    Severity `json:"severity"`
	Confidence  float64  `json:"confidence"`
	Explanation string   `json:"explanation,omitempty"`
	Evidence    []string `json:"evidence,omitempty"`
}

// Sentiment is the dominant sentiment or emotion signal a provider
// attaches to the whole text. Label is lowercase ("positive", "negative",
// "anger", "sadness", ...).
type Sentiment struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// IsNegative reports whether the label denotes negative polarity.
func (s Sentiment) IsNegative() bool {
	switch s.Label {
	case "negative", "strong_negative", "anger", "fear", "disgust", "sadness":
		return true
	}
	return false
}

// ScoringBreakdown records every component of the final score so a caller
// can explain how the number was reached. Computed once per analysis.
type ScoringBreakdown struct {
	BaseScore           float64 `json:"base_score"`
	ThemeBonusRaw       float64 `json:"theme_bonus_raw"`
	ThemeBonusWeighted  float64 `json:"theme_bonus_weighted"`
	ConcernPenaltyRaw   float64 `json:"concern_penalty_raw"`
	FormationalPenalty  float64 `json:"formational_penalty"`
	SentimentAdjustment float64 `json:"sentiment_adjustment"`
	EmotionAdjustment   float64 `json:"emotion_adjustment"`
	FinalScore          float64 `json:"final_score"`
}

// Verdict is the human-readable conclusion for one analysis.
type Verdict struct {
	QualityLevel QualityLevel `json:"quality_level"`
	Summary      string       `json:"summary"`
	Guidance     string       `json:"guidance"`
}

// ScriptureRef is a supporting scripture reference. Text may be empty when
// the resolver could not supply verse text; the bare reference is still
// carried rather than dropped.
type ScriptureRef struct {
	Reference string `json:"reference"`
	Text      string `json:"text,omitempty"`
	Theme     string `json:"theme,omitempty"`
}

// Song is the input to an analysis.
type Song struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Lyrics string `json:"lyrics"`
}

// AnalysisResult is the aggregate root produced by one pipeline run. It
// owns its breakdown, signals, and verdict, and is never mutated once the
// pipeline returns it. Re-analysis produces a brand-new result.
type AnalysisResult struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Provider  string    `json:"provider,omitempty"`
	Chunked   bool      `json:"chunked,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	FinalScore   float64          `json:"final_score"`
	QualityLevel QualityLevel     `json:"quality_level"`
	Breakdown    ScoringBreakdown `json:"breakdown"`
	Themes       []ThemeSignal    `json:"themes"`
	Concerns     []ConcernSignal  `json:"concerns"`
	Verdict      Verdict          `json:"verdict"`
	Scripture    []ScriptureRef   `json:"supporting_scripture"`
}

// MarshalIndent renders the result as the stable JSON shape consumed by
// hosts. Nil slices are forced to empty so keys are always present.
func (r *AnalysisResult) MarshalIndent() ([]byte, error) {
	out := *r
	if out.Themes == nil {
		out.Themes = []ThemeSignal{}
	}
	if out.Concerns == nil {
		out.Concerns = []ConcernSignal{}
	}
	if out.Scripture == nil {
		out.Scripture = []ScriptureRef{}
	}
	return json.MarshalIndent(&out, "", "  ")
}

// PartialResult is the per-chunk intermediate the merger consumes.
type PartialResult struct {
	Score          float64
	QualityLevel   QualityLevel
	Themes         []ThemeSignal
	Concerns       []ConcernSignal
	Scripture      []ScriptureRef
	VerdictSummary string
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampConfidence bounds a confidence to [0,1]. Out-of-range provider
// values are clamped, never rejected.
func clampConfidence(v float64) float64 {
	return clamp(v, 0, 1)
}
