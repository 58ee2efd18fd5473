package scripture

import (
	"regexp"
	"strings"
)

// Common book-name abbreviations mapped to canonical names. Keys are
// lowercase with spaces collapsed.
var bookNames = map[string]string{
	"gen": "Genesis", "genesis": "Genesis",
	"ex": "Exodus", "exod": "Exodus", "exodus": "Exodus",
	"ps": "Psalm", "psa": "Psalm", "psalm": "Psalm", "psalms": "Psalm",
	"prov": "Proverbs", "proverbs": "Proverbs",
	"isa": "Isaiah", "isaiah": "Isaiah",
	"jer": "Jeremiah", "jeremiah": "Jeremiah",
	"lam": "Lamentations", "lamentations": "Lamentations",
	"mic": "Micah", "micah": "Micah",
	"matt": "Matthew", "mt": "Matthew", "matthew": "Matthew",
	"mk": "Mark", "mark": "Mark",
	"lk": "Luke", "luke": "Luke",
	"jn": "John", "john": "John",
	"acts": "Acts",
	"rom":  "Romans", "romans": "Romans",
	"1 cor": "1 Corinthians", "1 corinthians": "1 Corinthians",
	"2 cor": "2 Corinthians", "2 corinthians": "2 Corinthians",
	"gal": "Galatians", "galatians": "Galatians",
	"eph": "Ephesians", "ephesians": "Ephesians",
	"phil": "Philippians", "philippians": "Philippians",
	"col": "Colossians", "colossians": "Colossians",
	"1 thess": "1 Thessalonians", "1 thessalonians": "1 Thessalonians",
	"2 thess": "2 Thessalonians", "2 thessalonians": "2 Thessalonians",
	"1 tim": "1 Timothy", "1 timothy": "1 Timothy",
	"2 tim": "2 Timothy", "2 timothy": "2 Timothy",
	"titus": "Titus",
	"heb":   "Hebrews", "hebrews": "Hebrews",
	"jas": "James", "james": "James",
	"1 pet": "1 Peter", "1 peter": "1 Peter",
	"2 pet": "2 Peter", "2 peter": "2 Peter",
	"1 jn": "1 John", "1 john": "1 John",
	"rev": "Revelation", "revelation": "Revelation",
}

// refPattern splits "1 Cor 13:4-7" into book and chapter:verse parts.
var refPattern = regexp.MustCompile(`^\s*((?:[1-3]\s*)?[A-Za-z][A-Za-z .]*?)\s*(\d+[:.]\d+(?:\s*-\s*\d+(?:[:.]\d+)?)?)\s*$`)

// Normalize canonicalizes a scripture reference: expands abbreviations,
// normalizes whitespace and punctuation. Returns "" when the input does
// not parse as a reference at all.
func Normalize(reference string) string {
	m := refPattern.FindStringSubmatch(reference)
	if m == nil {
		return ""
	}

	book := strings.ToLower(strings.TrimSpace(m[1]))
	book = strings.TrimSuffix(book, ".")
	book = strings.Join(strings.Fields(book), " ")
	if canonical, ok := bookNames[book]; ok {
		book = canonical
	} else {
		book = titleCase(book)
	}

	cv := strings.ReplaceAll(m[2], ".", ":")
	cv = strings.ReplaceAll(cv, " ", "")
	return book + " " + cv
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 && w[0] >= 'a' && w[0] <= 'z' {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
