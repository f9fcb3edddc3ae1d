// Package parser turns ASS/SSA source text into a document.Document in a
// single line-by-line pass. It never fails outright: malformed input
// becomes ParseIssues and parsing continues on the next line.
package parser

import "strings"

// lineClass is the coarse classification of one physical line.
type lineClass int

const (
	classBlank lineClass = iota
	classComment
	classSection
	classKeyValue
	classOpaque
)

// classify inspects a trimmed line. Key:value covers every formatted row
// too (Style:, Dialogue:, Format: ...); the caller dispatches on the key
// and the current section.
func classify(trimmed string) lineClass {
	switch {
	case trimmed == "":
		return classBlank
	case trimmed[0] == ';' || trimmed[0] == '!':
		return classComment
	case trimmed[0] == '[' && strings.HasSuffix(trimmed, "]"):
		return classSection
	case strings.Contains(trimmed, ":"):
		return classKeyValue
	default:
		return classOpaque
	}
}

// fieldSpan is one comma-separated cell with byte offsets into the full
// line, trimmed of surrounding spaces.
type fieldSpan struct {
	value string
	start int
	end   int
}

// splitFields splits s into at most n fields on commas; the last field
// absorbs any remaining commas verbatim, since event text legitimately
// contains them. base is the byte offset of s within its line. The split
// is field-count-driven: a row with fewer commas yields fewer spans and
// the caller pads.
func splitFields(s string, base, n int) []fieldSpan {
	if n <= 0 {
		return nil
	}
	spans := make([]fieldSpan, 0, n)
	start := 0
	for len(spans) < n-1 {
		rel := strings.IndexByte(s[start:], ',')
		if rel < 0 {
			break
		}
		spans = append(spans, trimSpan(s, base, start, start+rel))
		start = start + rel + 1
	}
	spans = append(spans, trimSpan(s, base, start, len(s)))
	return spans
}

func trimSpan(s string, base, start, end int) fieldSpan {
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return fieldSpan{value: s[start:end], start: base + start, end: base + end}
}

// splitKeyValue splits "Key: Value" at the first colon. Offsets are
// relative to the start of the line; valueStart points at the value after
// leading-space trimming.
func splitKeyValue(trimmed string, base int) (key, value string, keyEnd, valueStart int, ok bool) {
	colon := strings.IndexByte(trimmed, ':')
	if colon < 0 {
		return "", "", 0, 0, false
	}
	key = strings.TrimRight(trimmed[:colon], " \t")
	rest := trimmed[colon+1:]
	lead := len(rest) - len(strings.TrimLeft(rest, " \t"))
	value = strings.TrimSpace(rest)
	return key, value, base + len(key), base + colon + 1 + lead, true
}
