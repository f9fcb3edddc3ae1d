package tags

import "strings"

// Invocation is one scanned tag with its raw, untyped arguments. Start and
// End are byte offsets within the scanned span.
type Invocation struct {
	Name          string
	Args          []string
	Parenthesized bool
	Start         int
	End           int
}

// Issue is a recoverable scan problem, offset-anchored within the span.
type Issue struct {
	Offset  int
	Length  int
	Message string
}

// Scanner walks one brace span (braces excluded) and yields tag
// invocations. Re-scanning is O(len(span)); construct a fresh Scanner to
// restart.
type Scanner struct {
	src    string
	pos    int
	issues []Issue
}

// NewScanner returns a scanner over the raw content of one {...} span.
func NewScanner(span string) *Scanner {
	return &Scanner{src: span}
}

// Issues returns the problems found so far. Complete only after Next has
// returned false.
func (s *Scanner) Issues() []Issue {
	return s.issues
}

// Next returns the next tag invocation, or false when the span is
// exhausted. Text between tags (free-form comments are legal inside
// braces) is skipped.
func (s *Scanner) Next() (Invocation, bool) {
	for s.pos < len(s.src) {
		if s.src[s.pos] != '\\' {
			s.pos++
			continue
		}
		start := s.pos
		s.pos++

		run := s.scanNameRun()
		if run == "" {
			// Lone backslash; not a tag.
			continue
		}

		name, remainder := SplitName(run)
		inv := Invocation{Name: name, Start: start}

		if remainder == "" && s.pos < len(s.src) && s.src[s.pos] == '(' {
			inv.Parenthesized = true
			inv.Args = s.scanParenArgs(start)
		} else {
			value := remainder + s.scanSuffix()
			if value = strings.TrimSpace(value); value != "" {
				inv.Args = []string{value}
			}
		}

		inv.End = s.pos
		return inv, true
	}
	return Invocation{}, false
}

// scanNameRun consumes a tag name: an optional leading digit (the color
// and alpha tags 1c..4a) followed by letters.
func (s *Scanner) scanNameRun() string {
	start := s.pos
	if s.pos < len(s.src) && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
		if s.pos+1 >= len(s.src) || !isLetter(s.src[s.pos+1]) {
			return ""
		}
		s.pos++
	}
	for s.pos < len(s.src) && isLetter(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// scanParenArgs consumes a balanced (...) list and splits it on top-level
// commas. Nested parentheses (animated \t bodies, drawing clips) are kept
// intact inside their argument. A missing closer is recorded as an issue
// and everything up to the end of the span becomes the argument list.
func (s *Scanner) scanParenArgs(tagStart int) []string {
	s.pos++ // consume '('
	depth := 1
	var args []string
	argStart := s.pos

	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				args = appendArg(args, s.src[argStart:s.pos])
				s.pos++
				return args
			}
		case ',':
			if depth == 1 {
				args = appendArg(args, s.src[argStart:s.pos])
				argStart = s.pos + 1
			}
		}
		s.pos++
	}

	s.issues = append(s.issues, Issue{
		Offset:  tagStart,
		Length:  s.pos - tagStart,
		Message: "unbalanced parentheses in tag arguments",
	})
	return appendArg(args, s.src[argStart:s.pos])
}

// scanSuffix consumes a bare value up to the next tag or end of span.
func (s *Scanner) scanSuffix() string {
	start := s.pos
	for s.pos < len(s.src) && s.src[s.pos] != '\\' {
		s.pos++
	}
	return s.src[start:s.pos]
}

// appendArg trims and appends one argument, dropping a trailing empty from
// "()" but keeping interior empties so arity checks see them.
func appendArg(args []string, raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" && len(args) == 0 {
		return args
	}
	return append(args, trimmed)
}

// Scan is the convenience form: all invocations plus all issues in one
// pass.
func Scan(span string) ([]Invocation, []Issue) {
	s := NewScanner(span)
	var invs []Invocation
	for {
		inv, ok := s.Next()
		if !ok {
			break
		}
		invs = append(invs, inv)
	}
	return invs, s.Issues()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
