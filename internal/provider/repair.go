package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"lyriclens/internal/analysis"
)

// llmAnalysis is the structured payload both LLM providers request.
type llmAnalysis struct {
	Themes    []analysis.StructuredTheme   `json:"themes"`
	Concerns  []analysis.StructuredConcern `json:"concerns"`
	Scripture []string                     `json:"supporting_scripture"`
}

// parseLLMOutput decodes the model's reply into a structured RawOutput.
// On invalid JSON it attempts a best-effort repair by extracting the
// largest JSON object substring before giving up with ErrMalformed.
func parseLLMOutput(text string) (analysis.RawOutput, error) {
	var payload llmAnalysis
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		repaired, ok := extractJSONObject(text)
		if !ok {
			return analysis.RawOutput{}, fmt.Errorf("%w: no JSON object in reply", ErrMalformed)
		}
		payload = llmAnalysis{
			Themes:    decodeThemes(repaired),
			Concerns:  decodeConcerns(repaired),
			Scripture: decodeStrings(repaired, "supporting_scripture"),
		}
		if len(payload.Themes) == 0 && len(payload.Concerns) == 0 {
			return analysis.RawOutput{}, fmt.Errorf("%w: repaired JSON carries no signals", ErrMalformed)
		}
	}
	return analysis.StructuredOutput(payload.Themes, payload.Concerns, payload.Scripture), nil
}

// extractJSONObject returns the largest balanced {...} substring that
// parses as valid JSON.
func extractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	for start >= 0 {
		depth := 0
		for i := start; i < len(s); i++ {
			switch s[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					candidate := s[start : i+1]
					if gjson.Valid(candidate) {
						return candidate, true
					}
				}
			}
		}
		next := strings.Index(s[start+1:], "{")
		if next < 0 {
			break
		}
		start += 1 + next
	}
	return "", false
}

func decodeThemes(jsonStr string) []analysis.StructuredTheme {
	var out []analysis.StructuredTheme
	gjson.Get(jsonStr, "themes").ForEach(func(_, v gjson.Result) bool {
		theme := v.Get("theme").String()
		if theme == "" {
			theme = v.Get("name").String()
		}
		if theme != "" {
			out = append(out, analysis.StructuredTheme{
				Theme:      theme,
				Confidence: v.Get("confidence").Float(),
			})
		}
		return true
	})
	return out
}

func decodeConcerns(jsonStr string) []analysis.StructuredConcern {
	var out []analysis.StructuredConcern
	gjson.Get(jsonStr, "concerns").ForEach(func(_, v gjson.Result) bool {
		cat := v.Get("category").String()
		if cat != "" {
			out = append(out, analysis.StructuredConcern{
				Category:    cat,
				Severity:    v.Get("severity").String(),
				Confidence:  v.Get("confidence").Float(),
				Explanation: v.Get("explanation").String(),
			})
		}
		return true
	})
	return out
}

func decodeStrings(jsonStr, key string) []string {
	var out []string
	gjson.Get(jsonStr, key).ForEach(func(_, v gjson.Result) bool {
		if s := v.String(); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}
