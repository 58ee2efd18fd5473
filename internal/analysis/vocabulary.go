package analysis

import "strings"

// The curated theme and concern vocabularies. These tables are the single
// source of truth for which names the extractors will emit: anything a
// provider returns that cannot be mapped here is dropped, never invented
// as a new theme.

// themeCategories assigns every recognized positive theme to its
// significance category.
var themeCategories = map[string]ThemeCategory{
	// Core gospel themes
	"Christ-centered":     CategoryCoreGospel,
	"Gospel presentation": CategoryCoreGospel,
	"Redemption":          CategoryCoreGospel,
	"Sacrificial love":    CategoryCoreGospel,
	"Light vs darkness":   CategoryCoreGospel,

	// Character and spiritual-formation themes
	"Endurance":          CategoryCharacterSpiritual,
	"Obedience":          CategoryCharacterSpiritual,
	"Justice":            CategoryCharacterSpiritual,
	"Mercy":              CategoryCharacterSpiritual,
	"Truth":              CategoryCharacterSpiritual,
	"Identity in Christ": CategoryCharacterSpiritual,
	"Victory in Christ":  CategoryCharacterSpiritual,
	"Gratitude":          CategoryCharacterSpiritual,
	"Discipleship":       CategoryCharacterSpiritual,
	"Evangelistic zeal":  CategoryCharacterSpiritual,

	// Recognized but unweighted positives
	"Worship":     CategoryNeutral,
	"Hope":        CategoryNeutral,
	"Faith":       CategoryNeutral,
	"Prayer":      CategoryNeutral,
	"Peace":       CategoryNeutral,
	"Joy":         CategoryNeutral,
	"Love of God": CategoryNeutral,
	"Humility":    CategoryNeutral,
	"Forgiveness": CategoryNeutral,
	"Creation":    CategoryNeutral,
}

// keywordThemes maps a matched lyric keyword to exactly one theme name.
// Keyword matches are binary signals, so the extractor assigns them
// confidence 1.0.
var keywordThemes = map[string]string{
	"jesus":        "Christ-centered",
	"christ":       "Christ-centered",
	"savior":       "Christ-centered",
	"saviour":      "Christ-centered",
	"messiah":      "Christ-centered",
	"lamb of god":  "Christ-centered",
	"gospel":       "Gospel presentation",
	"good news":    "Gospel presentation",
	"salvation":    "Gospel presentation",
	"saved":        "Gospel presentation",
	"born again":   "Gospel presentation",
	"redeem":       "Redemption",
	"redeemed":     "Redemption",
	"redemption":   "Redemption",
	"ransom":       "Redemption",
	"cross":        "Sacrificial love",
	"calvary":      "Sacrificial love",
	"sacrifice":    "Sacrificial love",
	"blood":        "Sacrificial love",
	"light":        "Light vs darkness",
	"darkness":     "Light vs darkness",
	"endure":       "Endurance",
	"persevere":    "Endurance",
	"obey":         "Obedience",
	"obedience":    "Obedience",
	"justice":      "Justice",
	"mercy":        "Mercy",
	"merciful":     "Mercy",
	"truth":        "Truth",
	"in christ":    "Identity in Christ",
	"child of god": "Identity in Christ",
	"victory":      "Victory in Christ",
	"overcome":     "Victory in Christ",
	"thankful":     "Gratitude",
	"grateful":     "Gratitude",
	"disciple":     "Discipleship",
	"follow him":   "Discipleship",
	"testify":      "Evangelistic zeal",
	"witness":      "Evangelistic zeal",
	"worship":      "Worship",
	"praise":       "Worship",
	"hallelujah":   "Worship",
	"hosanna":      "Worship",
	"hope":         "Hope",
	"faith":        "Faith",
	"believe":      "Faith",
	"pray":         "Prayer",
	"prayer":       "Prayer",
	"peace":        "Peace",
	"joy":          "Joy",
	"rejoice":      "Joy",
	"grace":        "Love of God",
	"humble":       "Humility",
	"forgive":      "Forgiveness",
	"forgiveness":  "Forgiveness",
	"creator":      "Creation",
}

// concernSeverities assigns every recognized concern category a default
// severity. Providers may report a different severity; the extractor
// keeps the provider's value when it parses, and falls back to this table.
var concernSeverities = map[string]Severity{
	"Blasphemy":           SeverityCritical,
	"Anti-Christian":      SeverityCritical,
	"Self-deification":    SeverityHigh,
	"Occult":              SeverityHigh,
	"Sexual immorality":   SeverityHigh,
	"Profanity":           SeverityHigh,
	"Glorified violence":  SeverityMedium,
	"Substance abuse":     SeverityMedium,
	"Pride":               SeverityMedium,
	"Despair":             SeverityMedium,
	"Materialism":         SeverityLow,
	"Crude language":      SeverityLow,
}

// keywordConcerns maps a matched concern keyword to its category.
var keywordConcerns = map[string]string{
	"blasphemy":    "Blasphemy",
	"blasphemous":  "Blasphemy",
	"goddamn":      "Blasphemy",
	"i am god":     "Self-deification",
	"i'm a god":    "Self-deification",
	"worship me":   "Self-deification",
	"witchcraft":   "Occult",
	"sorcery":      "Occult",
	"seance":       "Occult",
	"ouija":        "Occult",
	"horoscope":    "Occult",
	"lust":         "Sexual immorality",
	"one night":    "Sexual immorality",
	"murder":       "Glorified violence",
	"kill them":    "Glorified violence",
	"drunk":        "Substance abuse",
	"wasted":       "Substance abuse",
	"high as":      "Substance abuse",
	"money is god": "Materialism",
	"worship gold": "Materialism",
	"no hope":      "Despair",
	"hopeless":     "Despair",
}

// themeScripture suggests supporting references per theme. The resolver
// fills in verse text when it can; otherwise the bare reference is kept.
var themeScripture = map[string][]string{
	"Christ-centered":     {"Philippians 2:9-11", "Colossians 1:15-20"},
	"Gospel presentation": {"Romans 1:16", "1 Corinthians 15:3-4"},
	"Redemption":          {"Ephesians 1:7", "Titus 2:14"},
	"Sacrificial love":    {"John 15:13", "Romans 5:8"},
	"Light vs darkness":   {"John 1:5", "1 Peter 2:9"},
	"Worship":             {"Psalm 95:6", "John 4:24"},
	"Hope":                {"Romans 15:13", "Hebrews 6:19"},
	"Faith":               {"Hebrews 11:1", "Ephesians 2:8"},
	"Mercy":               {"Lamentations 3:22-23", "Micah 6:8"},
	"Victory in Christ":   {"1 Corinthians 15:57", "Romans 8:37"},
	"Identity in Christ":  {"2 Corinthians 5:17", "Galatians 2:20"},
	"Gratitude":           {"1 Thessalonians 5:18", "Psalm 100:4"},
	"Forgiveness":         {"1 John 1:9", "Ephesians 4:32"},
	"Peace":               {"Philippians 4:7", "John 14:27"},
}

// ThemeKeywords returns every lyric keyword the keyword provider should
// scan for positive themes.
func ThemeKeywords() []string {
	out := make([]string, 0, len(keywordThemes))
	for kw := range keywordThemes {
		out = append(out, kw)
	}
	return out
}

// ConcernKeywords returns every lyric keyword mapped to a concern category.
func ConcernKeywords() []string {
	out := make([]string, 0, len(keywordConcerns))
	for kw := range keywordConcerns {
		out = append(out, kw)
	}
	return out
}

// ThemeCategoryFor returns the category for a recognized theme name, or
// CategoryNeutral with ok=false for an unknown name.
func ThemeCategoryFor(name string) (ThemeCategory, bool) {
	cat, ok := themeCategories[name]
	if !ok {
		return CategoryNeutral, false
	}
	return cat, true
}

// ScriptureFor returns the suggested references for a theme name.
func ScriptureFor(theme string) []string {
	return themeScripture[theme]
}

// matchThemeLabel maps a free-text classifier label to a curated theme
// name by case-insensitive substring search, longest vocabulary entry
// first so "Identity in Christ" wins over "Christ-centered" when both
// occur. Returns "" when nothing matches.
func matchThemeLabel(label string) string {
	l := strings.ToLower(label)
	best := ""
	for name := range themeCategories {
		if strings.Contains(l, strings.ToLower(name)) && len(name) > len(best) {
			best = name
		}
	}
	if best != "" {
		return best
	}
	// Fall back to keyword fragments inside the label phrase.
	for kw, theme := range keywordThemes {
		if strings.Contains(l, kw) && (best == "" || len(kw) > len(best)) {
			best = theme
		}
	}
	return best
}

// matchConcernLabel maps a free-text label to a curated concern category.
func matchConcernLabel(label string) string {
	l := strings.ToLower(label)
	for cat := range concernSeverities {
		if strings.Contains(l, strings.ToLower(cat)) {
			return cat
		}
	}
	for kw, cat := range keywordConcerns {
		if strings.Contains(l, kw) {
			return cat
		}
	}
	return ""
}

// parseSeverity parses a provider-reported severity, falling back to the
// category default (and finally medium) when it does not parse.
func parseSeverity(raw string, category string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(raw))) {
	case SeverityLow:
		return SeverityLow
	case SeverityMedium:
		return SeverityMedium
	case SeverityHigh:
		return SeverityHigh
	case SeverityCritical:
		return SeverityCritical
	}
	if def, ok := concernSeverities[category]; ok {
		return def
	}
	return SeverityMedium
}
