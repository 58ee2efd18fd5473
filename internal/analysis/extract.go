package analysis

// ExtractThemes normalizes a provider output into theme signals.
// Keyword hits are binary, so they carry confidence 1.0; classifier scores
// and LLM confidences pass through with clamping. Unmapped names are
// dropped. Pure function of its input.
func ExtractThemes(raw RawOutput) []ThemeSignal {
	var out []ThemeSignal
	seen := make(map[string]int) // theme name -> index in out

	add := func(name string, confidence float64, evidence string) {
		cat, ok := ThemeCategoryFor(name)
		if !ok {
			return
		}
		confidence = clampConfidence(confidence)
		if i, dup := seen[name]; dup {
			// Same theme from multiple hits: keep the strongest signal,
			// accumulate evidence.
			if confidence > out[i].Confidence {
				out[i].Confidence = confidence
			}
			if evidence != "" {
				out[i].Evidence = append(out[i].Evidence, evidence)
			}
			return
		}
		sig := ThemeSignal{Name: name, Confidence: confidence, Category: cat}
		if evidence != "" {
			sig.Evidence = []string{evidence}
		}
		seen[name] = len(out)
		out = append(out, sig)
	}

	switch raw.Kind {
	case RawKeywords:
		for _, kw := range raw.Keywords {
			if theme, ok := keywordThemes[kw]; ok {
				add(theme, 1.0, kw)
			}
		}
	case RawLabels:
		for _, l := range raw.Labels {
			if theme := matchThemeLabel(l.Label); theme != "" {
				add(theme, l.Score, l.Label)
			}
		}
	case RawStructured:
		for _, t := range raw.Themes {
			// LLM names must still map into the curated vocabulary.
			name := t.Theme
			if _, ok := ThemeCategoryFor(name); !ok {
				name = matchThemeLabel(t.Theme)
			}
			if name == "" {
				continue
			}
			add(name, t.Confidence, t.Theme)
		}
	}
	return out
}

// ExtractConcerns normalizes a provider output into concern signals.
// Unmapped categories are dropped; unparseable severities fall back to the
// vocabulary default.
func ExtractConcerns(raw RawOutput) []ConcernSignal {
	var out []ConcernSignal
	seen := make(map[string]int)

	add := func(category string, sev Severity, confidence float64, explanation, evidence string) {
		if _, ok := concernSeverities[category]; !ok {
			return
		}
		confidence = clampConfidence(confidence)
		if i, dup := seen[category]; dup {
			out[i].Severity = WorseOf(out[i].Severity, sev)
			if confidence > out[i].Confidence {
				out[i].Confidence = confidence
			}
			if evidence != "" {
				out[i].Evidence = append(out[i].Evidence, evidence)
			}
			return
		}
		sig := ConcernSignal{
			Category:    category,
			Severity:    sev,
			Confidence:  confidence,
			Explanation: explanation,
		}
		if evidence != "" {
			sig.Evidence = []string{evidence}
		}
		seen[category] = len(out)
		out = append(out, sig)
	}

	switch raw.Kind {
	case RawKeywords:
		for _, kw := range raw.ConcernKeywords {
			if cat, ok := keywordConcerns[kw]; ok {
				add(cat, concernSeverities[cat], 1.0, "", kw)
			}
		}
	case RawLabels:
		for _, l := range raw.Labels {
			if cat := matchConcernLabel(l.Label); cat != "" {
				add(cat, concernSeverities[cat], l.Score, l.Label, l.Label)
			}
		}
	case RawStructured:
		for _, c := range raw.Concerns {
			cat := c.Category
			if _, ok := concernSeverities[cat]; !ok {
				cat = matchConcernLabel(c.Category)
			}
			if cat == "" {
				continue
			}
			add(cat, parseSeverity(c.Severity, cat), c.Confidence, c.Explanation, c.Category)
		}
	}
	return out
}
