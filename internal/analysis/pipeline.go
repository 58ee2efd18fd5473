package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lyriclens/internal/logging"
)

// Analyzer orchestrates one full analysis: provider inference, extraction,
// aggregation, verdict classification, chunk merging, and scripture
// resolution. Collaborators are injected; the zero provider set still
// yields a valid neutral result.
type Analyzer struct {
	provider  Provider
	sentiment SentimentProvider
	resolver  Resolver

	weights    *Weights
	policy     ScorePolicy
	thresholds Thresholds

	chunkMaxChars int // 0 disables chunking
	chunkParallel int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithSentiment attaches a sentiment/emotion provider.
func WithSentiment(s SentimentProvider) Option {
	return func(a *Analyzer) { a.sentiment = s }
}

// WithResolver attaches a scripture resolver.
func WithResolver(r Resolver) Option {
	return func(a *Analyzer) { a.resolver = r }
}

// WithWeights overrides the weighting table.
func WithWeights(w *Weights) Option {
	return func(a *Analyzer) {
		if w != nil {
			a.weights = w
		}
	}
}

// WithPolicy overrides the score policy.
func WithPolicy(p ScorePolicy) Option {
	return func(a *Analyzer) { a.policy = p }
}

// WithThresholds overrides the verdict thresholds.
func WithThresholds(t Thresholds) Option {
	return func(a *Analyzer) { a.thresholds = t }
}

// WithChunking sets the chunk size threshold and per-chunk parallelism.
func WithChunking(maxChars, parallel int) Option {
	return func(a *Analyzer) {
		a.chunkMaxChars = maxChars
		if parallel > 0 {
			a.chunkParallel = parallel
		}
	}
}

// NewAnalyzer builds an analyzer around a capability provider.
func NewAnalyzer(p Provider, opts ...Option) *Analyzer {
	a := &Analyzer{
		provider:      p,
		weights:       DefaultWeights(),
		policy:        DefaultScorePolicy(),
		thresholds:    DefaultThresholds(),
		chunkMaxChars: 4000,
		chunkParallel: 4,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the full pipeline for one song. It never fails for
// data-quality reasons: provider errors degrade to zero signals and the
// worst case is a well-formed neutral result. The returned error is
// reserved for context cancellation.
func (a *Analyzer) Analyze(ctx context.Context, song Song) (*AnalysisResult, error) {
	timer := logging.StartTimer(logging.CategoryPipeline, "analyze "+song.Title)
	defer timer.Stop()

	chunks := SplitLyrics(song.Lyrics, a.chunkMaxChars)
	if len(chunks) == 0 {
		logging.Pipeline("empty lyrics for %q, returning neutral result", song.Title)
		return a.neutralResult(song), nil
	}

	sentiment, emotion := a.assessAffect(ctx, song.Lyrics)

	partials := make([]PartialResult, len(chunks))
	if len(chunks) == 1 {
		partials[0] = a.analyzeChunk(ctx, chunks[0], sentiment, emotion)
	} else {
		logging.Pipeline("chunking %q into %d segments", song.Title, len(chunks))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.chunkParallel)
		var mu sync.Mutex
		for i, chunk := range chunks {
			g.Go(func() error {
				p := a.analyzeChunk(gctx, chunk, sentiment, emotion)
				mu.Lock()
				partials[i] = p
				mu.Unlock()
				return gctx.Err()
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	merged := Merge(partials)
	if len(chunks) > 1 {
		logging.MergeDebug("merged %d partials: score=%.1f level=%s themes=%d concerns=%d",
			len(partials), merged.Score, merged.QualityLevel, len(merged.Themes), len(merged.Concerns))
	}

	return a.finalize(ctx, song, merged, sentiment, emotion, len(chunks) > 1), nil
}

// analyzeChunk produces a partial result for one text segment. A provider
// failure degrades to zero signals from that provider, never an error.
func (a *Analyzer) analyzeChunk(ctx context.Context, text string, sentiment, emotion Sentiment) PartialResult {
	var raw RawOutput
	if a.provider != nil {
		var err error
		raw, err = a.provider.Infer(ctx, text)
		if err != nil {
			logging.ProviderWarn("provider %s failed, degrading to zero signals: %v", a.provider.Name(), err)
			raw = RawOutput{}
		}
	}

	themes := ExtractThemes(raw)
	concerns := ExtractConcerns(raw)

	breakdown := Aggregate(themes, concerns, sentiment, emotion, a.weights, a.policy)
	verdict := Classify(breakdown.FinalScore, themes, concerns, a.thresholds)
	logging.Scoring("chunk scored %.1f (%s): themes=%d concerns=%d formational=%.0f",
		breakdown.FinalScore, verdict.QualityLevel, len(themes), len(concerns), breakdown.FormationalPenalty)

	return PartialResult{
		Score:          breakdown.FinalScore,
		QualityLevel:   verdict.QualityLevel,
		Themes:         themes,
		Concerns:       concerns,
		Scripture:      bareRefs(raw.Scripture),
		VerdictSummary: verdict.Summary,
	}
}

// finalize turns the (possibly merged) partial into the immutable result.
func (a *Analyzer) finalize(ctx context.Context, song Song, merged PartialResult, sentiment, emotion Sentiment, chunked bool) *AnalysisResult {
	// Recompute the breakdown over the merged signal set for
	// explainability. For the chunked path the authoritative score is the
	// chunk mean, so the breakdown's final score is pinned to it.
	breakdown := Aggregate(merged.Themes, merged.Concerns, sentiment, emotion, a.weights, a.policy)
	if chunked {
		breakdown.FinalScore = clamp(merged.Score, 0, 100)
	}

	verdict := Classify(breakdown.FinalScore, merged.Themes, merged.Concerns, a.thresholds)
	// A merged result is never less severe than its worst chunk.
	if merged.QualityLevel.Rank() > verdict.QualityLevel.Rank() {
		verdict.QualityLevel = merged.QualityLevel
		verdict.Summary = summaryFor(merged.QualityLevel, hasCoreGospel(merged.Themes))
		verdict.Guidance = guidanceFor(merged.QualityLevel, hasCoreGospel(merged.Themes))
	}
	if chunked && merged.VerdictSummary != "" {
		verdict.Summary = merged.VerdictSummary
	}

	providerName := ""
	if a.provider != nil {
		providerName = a.provider.Name()
	}

	return &AnalysisResult{
		ID:           uuid.NewString(),
		Title:        song.Title,
		Artist:       song.Artist,
		Provider:     providerName,
		Chunked:      chunked,
		CreatedAt:    time.Now().UTC(),
		FinalScore:   breakdown.FinalScore,
		QualityLevel: verdict.QualityLevel,
		Breakdown:    breakdown,
		Themes:       merged.Themes,
		Concerns:     merged.Concerns,
		Verdict:      verdict,
		Scripture:    a.resolveScripture(ctx, merged),
	}
}

// assessAffect queries the sentiment provider once for the whole text.
// Failures degrade to empty signals.
func (a *Analyzer) assessAffect(ctx context.Context, text string) (Sentiment, Sentiment) {
	if a.sentiment == nil {
		return Sentiment{}, Sentiment{}
	}
	sentiment, emotion, err := a.sentiment.Assess(ctx, text)
	if err != nil {
		logging.ProviderWarn("sentiment provider failed, ignoring affect: %v", err)
		return Sentiment{}, Sentiment{}
	}
	return sentiment, emotion
}

// resolveScripture gathers theme-suggested and provider-suggested
// references, resolves verse text where possible, and keeps bare
// references on resolution failure.
func (a *Analyzer) resolveScripture(ctx context.Context, merged PartialResult) []ScriptureRef {
	seen := make(map[string]bool)
	var out []ScriptureRef

	add := func(ref ScriptureRef) {
		if ref.Reference == "" || seen[ref.Reference] {
			return
		}
		seen[ref.Reference] = true
		if a.resolver != nil && ref.Text == "" {
			resolved, err := a.resolver.Resolve(ctx, ref.Reference)
			if err != nil {
				logging.Scripture("resolve %q failed: %v", ref.Reference, err)
			} else if resolved != nil {
				ref.Text = resolved.Text
			}
		}
		out = append(out, ref)
	}

	for _, t := range merged.Themes {
		for _, ref := range ScriptureFor(t.Name) {
			add(ScriptureRef{Reference: ref, Theme: t.Name})
		}
	}
	for _, ref := range merged.Scripture {
		add(ref)
	}
	return out
}

// neutralResult is the conservative fallback for unanalyzable input:
// score 50, Unknown level, empty signal lists.
func (a *Analyzer) neutralResult(song Song) *AnalysisResult {
	providerName := ""
	if a.provider != nil {
		providerName = a.provider.Name()
	}
	breakdown := ScoringBreakdown{BaseScore: a.policy.BaseScore, FinalScore: 50}
	return &AnalysisResult{
		ID:           uuid.NewString(),
		Title:        song.Title,
		Artist:       song.Artist,
		Provider:     providerName,
		CreatedAt:    time.Now().UTC(),
		FinalScore:   breakdown.FinalScore,
		QualityLevel: QualityUnknown,
		Breakdown:    breakdown,
		Themes:       []ThemeSignal{},
		Concerns:     []ConcernSignal{},
		Verdict: Verdict{
			QualityLevel: QualityUnknown,
			Summary:      summaryFor(QualityUnknown, false),
			Guidance:     guidanceFor(QualityUnknown, false),
		},
		Scripture: []ScriptureRef{},
	}
}

func bareRefs(refs []string) []ScriptureRef {
	var out []ScriptureRef
	for _, r := range refs {
		if r != "" {
			out = append(out, ScriptureRef{Reference: r})
		}
	}
	return out
}
