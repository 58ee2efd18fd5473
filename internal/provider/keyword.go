package provider

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"lyriclens/internal/analysis"
)

// KeywordProvider is the zero-dependency default provider. It scans lyrics
// against the curated keyword tables with word-boundary matching and
// reports the matched keywords; the extractor maps them onto themes and
// concerns with confidence 1.0.
type KeywordProvider struct {
	themePatterns   []keywordPattern
	concernPatterns []keywordPattern
}

type keywordPattern struct {
	keyword string
	re      *regexp.Regexp
}

var (
	keywordOnce     sync.Once
	themePatterns   []keywordPattern
	concernPatterns []keywordPattern
)

// NewKeywordProvider returns the shared keyword provider. Pattern
// compilation happens once per process.
func NewKeywordProvider() *KeywordProvider {
	keywordOnce.Do(func() {
		themePatterns = compilePatterns(analysis.ThemeKeywords())
		concernPatterns = compilePatterns(analysis.ConcernKeywords())
	})
	return &KeywordProvider{themePatterns: themePatterns, concernPatterns: concernPatterns}
}

func compilePatterns(keywords []string) []keywordPattern {
	sort.Strings(keywords)
	out := make([]keywordPattern, 0, len(keywords))
	for _, kw := range keywords {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		if err != nil {
			continue
		}
		out = append(out, keywordPattern{keyword: kw, re: re})
	}
	return out
}

// Name identifies the provider in results and logs.
func (p *KeywordProvider) Name() string { return "keyword" }

// Infer scans the text and returns the matched keywords. Cannot fail.
func (p *KeywordProvider) Infer(_ context.Context, text string) (analysis.RawOutput, error) {
	lower := strings.ToLower(text)
	var themeHits, concernHits []string
	for _, kp := range p.themePatterns {
		if kp.re.MatchString(lower) {
			themeHits = append(themeHits, kp.keyword)
		}
	}
	for _, kp := range p.concernPatterns {
		if kp.re.MatchString(lower) {
			concernHits = append(concernHits, kp.keyword)
		}
	}
	return analysis.KeywordOutput(themeHits, concernHits), nil
}
