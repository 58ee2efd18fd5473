package analysis

import "context"

// RawKind discriminates the three provider output shapes. The shape is
// chosen explicitly by the provider adapter, never inferred from runtime
// types.
type RawKind string

const (
	// RawKeywords is a set of matched keywords from a rule-based provider.
	RawKeywords RawKind = "keywords"
	// RawLabels is a list of scored labels from a zero-shot classifier.
	RawLabels RawKind = "labels"
	// RawStructured is a structured theme/concern object from an LLM.
	RawStructured RawKind = "structured"
)

// ScoredLabel is one zero-shot classifier output.
type ScoredLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// StructuredTheme is one theme entry from structured LLM output.
type StructuredTheme struct {
	Theme      string  `json:"theme"`
	Confidence float64 `json:"confidence"`
}

// StructuredConcern is one concern entry from structured LLM output.
type StructuredConcern struct {
	Category    string  `json:"category"`
	Severity    string  `json:"severity"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// RawOutput is the tagged union of provider output shapes. Exactly the
// fields for Kind are populated; extractors ignore the rest.
type RawOutput struct {
	Kind RawKind

	// RawKeywords
	Keywords        []string
	ConcernKeywords []string

	// RawLabels
	Labels []ScoredLabel

	// RawStructured
	Themes    []StructuredTheme
	Concerns  []StructuredConcern
	Scripture []string // bare references suggested by the LLM
}

// KeywordOutput builds a RawOutput for a rule-based provider.
func KeywordOutput(themeHits, concernHits []string) RawOutput {
	return RawOutput{Kind: RawKeywords, Keywords: themeHits, ConcernKeywords: concernHits}
}

// LabelOutput builds a RawOutput for a zero-shot classifier.
func LabelOutput(labels []ScoredLabel) RawOutput {
	return RawOutput{Kind: RawLabels, Labels: labels}
}

// StructuredOutput builds a RawOutput for an LLM provider.
func StructuredOutput(themes []StructuredTheme, concerns []StructuredConcern, scripture []string) RawOutput {
	return RawOutput{Kind: RawStructured, Themes: themes, Concerns: concerns, Scripture: scripture}
}

// Provider is the inbound capability interface the pipeline consumes. The
// core works identically whichever concrete provider implements it; a
// provider error degrades to zero signals, never a pipeline failure.
type Provider interface {
	Name() string
	Infer(ctx context.Context, text string) (RawOutput, error)
}

// SentimentProvider supplies the dominant sentiment and emotion signals
// used for the small score adjustments.
type SentimentProvider interface {
	Assess(ctx context.Context, text string) (sentiment, emotion Sentiment, err error)
}

// Resolver is the scripture-resolution collaborator. A nil result with a
// nil error means the reference could not be resolved; the pipeline keeps
// the bare reference in that case.
type Resolver interface {
	Resolve(ctx context.Context, reference string) (*ScriptureRef, error)
}
