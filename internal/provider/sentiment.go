package provider

import (
	"context"
	"regexp"
	"strings"

	prose "github.com/tsawler/prose/v3"

	"lyriclens/internal/analysis"
)

// ProseSentiment assesses lyric affect locally with the prose NLP library:
// lexicon plus ML sentiment for polarity, and a small emotion lexicon for
// the dominant negative emotion. No network, so it cannot rate-limit.
type ProseSentiment struct {
	analyzer *prose.SentimentAnalyzer
}

// NewProseSentiment builds the sentiment provider.
func NewProseSentiment() *ProseSentiment {
	return &ProseSentiment{
		analyzer: prose.NewSentimentAnalyzer(prose.English, prose.DefaultSentimentConfig()),
	}
}

// Assess returns the dominant sentiment and emotion for the text.
func (p *ProseSentiment) Assess(_ context.Context, text string) (analysis.Sentiment, analysis.Sentiment, error) {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return analysis.Sentiment{}, analysis.Sentiment{}, err
	}

	score := p.analyzer.AnalyzeDocument(doc)
	sentiment := analysis.Sentiment{
		Label:      polarityLabel(score),
		Confidence: score.Confidence,
	}
	return sentiment, dominantEmotion(text), nil
}

func polarityLabel(score prose.SentimentScore) string {
	switch score.Dominant {
	case prose.StrongPositive, prose.Positive:
		return "positive"
	case prose.StrongNegative, prose.Negative:
		return "negative"
	default:
		return "neutral"
	}
}

// Emotion detection is deliberately shallow: a word-boundary lexicon per
// emotion, dominant label by hit count, confidence saturating with hits.
var emotionLexicon = map[string][]string{
	"anger":   {"hate", "rage", "furious", "fury", "revenge", "wrath", "destroy"},
	"fear":    {"afraid", "terror", "dread", "panic", "scared", "fearful"},
	"disgust": {"disgust", "filth", "vile", "revolting", "sickening"},
	"sadness": {"cry", "tears", "grief", "mourn", "sorrow", "lonely", "broken"},
}

var emotionPatterns = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(emotionLexicon))
	for emotion, words := range emotionLexicon {
		out[emotion] = regexp.MustCompile(`\b(` + strings.Join(words, "|") + `)\b`)
	}
	return out
}()

func dominantEmotion(text string) analysis.Sentiment {
	lower := strings.ToLower(text)
	best, bestHits := "", 0
	for emotion, re := range emotionPatterns {
		hits := len(re.FindAllString(lower, -1))
		if hits > bestHits || (hits == bestHits && hits > 0 && emotion < best) {
			best, bestHits = emotion, hits
		}
	}
	if bestHits == 0 {
		return analysis.Sentiment{}
	}
	confidence := 0.4 + 0.15*float64(bestHits)
	if confidence > 0.95 {
		confidence = 0.95
	}
	return analysis.Sentiment{Label: best, Confidence: confidence}
}
