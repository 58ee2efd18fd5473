package analysis

import (
	"sort"
	"strings"
)

// mergeSummaryLimit caps how many per-chunk summaries are concatenated.
const mergeSummaryLimit = 2

// mergeSummaryWordBudget keeps the merged summary inside the same word
// budget a single verdict summary has.
const mergeSummaryWordBudget = 25

// Merge deterministically combines per-chunk partial results into one.
// Rules: max confidence per theme name, worst severity per concern
// category with deduplicated explanations, arithmetic mean of scores,
// worst quality level, scripture union by reference. A single concerning
// chunk can never be averaged away. An empty input yields a neutral
// Unknown result rather than an error.
func Merge(partials []PartialResult) PartialResult {
	if len(partials) == 0 {
		return PartialResult{Score: 50, QualityLevel: QualityUnknown}
	}
	if len(partials) == 1 {
		return partials[0]
	}

	merged := PartialResult{QualityLevel: QualityUnknown}

	themes := make(map[string]ThemeSignal)
	concerns := make(map[string]ConcernSignal)
	explanations := make(map[string][]string) // concern category -> deduped explanations
	explSeen := make(map[string]map[string]bool)
	scripture := make(map[string]ScriptureRef)
	var scriptureOrder []string
	var summaries []string
	var scoreSum float64

	for _, p := range partials {
		scoreSum += p.Score
		if p.QualityLevel.Rank() > merged.QualityLevel.Rank() {
			merged.QualityLevel = p.QualityLevel
		}

		for _, t := range p.Themes {
			if prev, ok := themes[t.Name]; !ok || t.Confidence > prev.Confidence {
				themes[t.Name] = t
			}
		}

		for _, c := range p.Concerns {
			prev, ok := concerns[c.Category]
			if !ok {
				concerns[c.Category] = c
			} else {
				prev.Severity = WorseOf(prev.Severity, c.Severity)
				if c.Confidence > prev.Confidence {
					prev.Confidence = c.Confidence
				}
				concerns[c.Category] = prev
			}
			if c.Explanation != "" {
				if explSeen[c.Category] == nil {
					explSeen[c.Category] = make(map[string]bool)
				}
				if !explSeen[c.Category][c.Explanation] {
					explSeen[c.Category][c.Explanation] = true
					explanations[c.Category] = append(explanations[c.Category], c.Explanation)
				}
			}
		}

		for _, s := range p.Scripture {
			if _, ok := scripture[s.Reference]; !ok {
				scripture[s.Reference] = s
				scriptureOrder = append(scriptureOrder, s.Reference)
			}
		}

		if s := strings.TrimSpace(p.VerdictSummary); s != "" && len(summaries) < mergeSummaryLimit {
			summaries = append(summaries, s)
		}
	}

	merged.Score = scoreSum / float64(len(partials))

	merged.Themes = make([]ThemeSignal, 0, len(themes))
	for _, t := range themes {
		merged.Themes = append(merged.Themes, t)
	}
	sort.Slice(merged.Themes, func(i, j int) bool {
		if merged.Themes[i].Confidence != merged.Themes[j].Confidence {
			return merged.Themes[i].Confidence > merged.Themes[j].Confidence
		}
		return merged.Themes[i].Name < merged.Themes[j].Name
	})

	merged.Concerns = make([]ConcernSignal, 0, len(concerns))
	for cat, c := range concerns {
		if ex := explanations[cat]; len(ex) > 0 {
			c.Explanation = strings.Join(ex, " | ")
		}
		merged.Concerns = append(merged.Concerns, c)
	}
	sort.Slice(merged.Concerns, func(i, j int) bool {
		if merged.Concerns[i].Severity.Rank() != merged.Concerns[j].Severity.Rank() {
			return merged.Concerns[i].Severity.Rank() > merged.Concerns[j].Severity.Rank()
		}
		return merged.Concerns[i].Category < merged.Concerns[j].Category
	})

	merged.Scripture = make([]ScriptureRef, 0, len(scriptureOrder))
	for _, ref := range scriptureOrder {
		merged.Scripture = append(merged.Scripture, scripture[ref])
	}

	merged.VerdictSummary = truncateWords(strings.Join(summaries, " "), mergeSummaryWordBudget)
	return merged
}

// truncateWords cuts s to at most n words.
func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ")
}
