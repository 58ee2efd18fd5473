package analysis

import "strings"

// SplitLyrics splits lyrics into chunks no longer than maxChars, breaking
// on blank-line stanza boundaries first and falling back to line breaks
// for oversized stanzas. Returns the original text as a single chunk when
// it fits. maxChars <= 0 disables chunking.
func SplitLyrics(text string, maxChars int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if maxChars <= 0 || len(text) <= maxChars {
		return []string{text}
	}

	stanzas := splitStanzas(text)
	var chunks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(cur.String()))
			cur.Reset()
		}
	}
	for _, st := range stanzas {
		if len(st) > maxChars {
			flush()
			chunks = append(chunks, splitLines(st, maxChars)...)
			continue
		}
		if cur.Len() > 0 && cur.Len()+len(st)+2 > maxChars {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(st)
	}
	flush()
	return chunks
}

func splitStanzas(text string) []string {
	var out []string
	for _, st := range strings.Split(text, "\n\n") {
		st = strings.TrimSpace(st)
		if st != "" {
			out = append(out, st)
		}
	}
	return out
}

// splitLines packs individual lines into chunks of at most maxChars.
// A single line longer than maxChars is hard-cut; lyrics lines in practice
// never get near that.
func splitLines(stanza string, maxChars int) []string {
	var chunks []string
	var cur strings.Builder
	for _, line := range strings.Split(stanza, "\n") {
		for len(line) > maxChars {
			chunks = append(chunks, line[:maxChars])
			line = line[maxChars:]
		}
		if cur.Len() > 0 && cur.Len()+len(line)+1 > maxChars {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteString("\n")
		}
		cur.WriteString(line)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}
