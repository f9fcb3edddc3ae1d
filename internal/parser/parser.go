package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wiedymi/ass-lsp/internal/document"
	"github.com/wiedymi/ass-lsp/internal/tags"
)

// Canonical field orders, used as fallback when a formatted-row section
// has no Format: line of its own.
var (
	CanonicalStyleFormat = []string{
		"Name", "Fontname", "Fontsize", "PrimaryColour", "SecondaryColour",
		"OutlineColour", "BackColour", "Bold", "Italic", "Underline",
		"StrikeOut", "ScaleX", "ScaleY", "Spacing", "Angle", "BorderStyle",
		"Outline", "Shadow", "Alignment", "MarginL", "MarginR", "MarginV",
		"Encoding",
	}
	CanonicalEventFormat = []string{
		"Layer", "Start", "End", "Style", "Name", "MarginL", "MarginR",
		"MarginV", "Effect", "Text",
	}
)

type parseRun struct {
	doc          *document.Document
	cur          *document.Section
	formatWarned bool
}

// Parse consumes full source text and returns a Document. It never
// returns an error: malformed lines become ParseIssues and the pass
// continues on the next line.
func Parse(text string, version int32) *document.Document {
	run := &parseRun{doc: &document.Document{Text: text, Version: version}}

	lineNum := uint32(0)
	rest := text
	for {
		line, tail, more := cutLine(rest)
		run.parseLine(line, lineNum)
		if !more {
			break
		}
		rest = tail
		lineNum++
	}
	return run.doc
}

// cutLine splits off one physical line, tolerating both \n and \r\n.
func cutLine(s string) (line, rest string, more bool) {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSuffix(s[:i], "\r"), s[i+1:], true
	}
	return s, "", false
}

func (run *parseRun) parseLine(line string, lineNum uint32) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	indent := strings.Index(line, trimmed)

	switch classify(trimmed) {
	case classComment:
		if run.cur != nil {
			run.cur.Entries = append(run.cur.Entries, &document.CommentLine{
				Text:  trimmed,
				Range: rangeAt(lineNum, line, indent, indent+len(trimmed)),
			})
		}
	case classSection:
		run.openSection(trimmed, line, lineNum, indent)
	case classKeyValue:
		run.parseKeyValue(trimmed, line, lineNum, indent)
	case classOpaque:
		run.parseOpaque(trimmed, line, lineNum, indent)
	}
}

func (run *parseRun) openSection(trimmed, line string, lineNum uint32, indent int) {
	name := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	kind := document.KindForSection(name)
	sec := &document.Section{
		Kind:        kind,
		Name:        name,
		HeaderRange: rangeAt(lineNum, line, indent, indent+len(trimmed)),
	}
	if kind == document.SectionUnknown {
		run.issue(document.Issue{
			Kind:     document.KindUnknownSection,
			Severity: document.SeverityInformation,
			Range:    sec.HeaderRange,
			Message:  fmt.Sprintf("Unknown section [%s]", name),
		})
	}
	run.doc.Sections = append(run.doc.Sections, sec)
	run.cur = sec
	run.formatWarned = false
}

func (run *parseRun) parseKeyValue(trimmed, line string, lineNum uint32, indent int) {
	if run.cur == nil {
		run.strayContent(line, lineNum, indent, len(trimmed))
		return
	}
	key, value, keyEnd, valueStart, ok := splitKeyValue(trimmed, indent)
	if !ok {
		return
	}

	switch run.cur.Kind {
	case document.SectionStyles:
		switch key {
		case "Format":
			run.cur.Format = parseFormatList(value)
			return
		case "Style":
			run.parseStyleRow(value, valueStart, line, lineNum, indent, len(trimmed))
			return
		}
	case document.SectionEvents:
		switch key {
		case "Format":
			run.cur.Format = parseFormatList(value)
			return
		case "Dialogue":
			run.parseEventRow(document.EventDialogue, value, valueStart, line, lineNum, indent, len(trimmed))
			return
		case "Comment":
			run.parseEventRow(document.EventComment, value, valueStart, line, lineNum, indent, len(trimmed))
			return
		}
	}

	run.cur.Entries = append(run.cur.Entries, &document.ScriptInfoField{
		Key:      key,
		Value:    value,
		KeyRange: rangeAt(lineNum, line, indent, keyEnd),
		Range:    rangeAt(lineNum, line, indent, indent+len(trimmed)),
	})
}

func (run *parseRun) parseOpaque(trimmed, line string, lineNum uint32, indent int) {
	if run.cur == nil {
		run.strayContent(line, lineNum, indent, len(trimmed))
		return
	}
	switch run.cur.Kind {
	case document.SectionScriptInfo, document.SectionStyles, document.SectionEvents:
		run.strayContent(line, lineNum, indent, len(trimmed))
	default:
		// Fonts/Graphics/vendor sections carry raw encoded data lines.
	}
}

func (run *parseRun) strayContent(line string, lineNum uint32, indent, width int) {
	run.issue(document.Issue{
		Kind:     document.KindStrayContent,
		Severity: document.SeverityWarning,
		Range:    rangeAt(lineNum, line, indent, indent+width),
		Message:  "Line does not belong to any recognized structure",
	})
}

func parseFormatList(value string) []string {
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, strings.TrimSpace(p))
	}
	return names
}

// ensureFormat yields the field order for a formatted row, falling back to
// the canonical order with a MissingFormatLine issue the first time a row
// appears before any Format: line in its section.
func (run *parseRun) ensureFormat(canonical []string, line string, lineNum uint32, indent, width int) []string {
	if run.cur.Format != nil {
		return run.cur.Format
	}
	if !run.formatWarned {
		run.formatWarned = true
		run.issue(document.Issue{
			Kind:     document.KindMissingFormatLine,
			Severity: document.SeverityWarning,
			Range:    rangeAt(lineNum, line, indent, indent+width),
			Message:  fmt.Sprintf("No Format: line declared for [%s]; assuming the canonical field order", run.cur.Name),
		})
	}
	return canonical
}

// rowFields splits a formatted row and pads missing trailing fields so
// downstream code always sees one span per declared field.
func (run *parseRun) rowFields(format []string, value string, valueStart int, line string, lineNum uint32) []fieldSpan {
	spans := splitFields(value, valueStart, len(format))
	if len(spans) < len(format) {
		run.issue(document.Issue{
			Kind:     document.KindTooFewFields,
			Severity: document.SeverityWarning,
			Range:    rangeAt(lineNum, line, valueStart, len(line)),
			Message:  fmt.Sprintf("Row has %d fields but the format declares %d", len(spans), len(format)),
		})
		for len(spans) < len(format) {
			spans = append(spans, fieldSpan{start: len(line), end: len(line)})
		}
	}
	return spans
}

func (run *parseRun) parseStyleRow(value string, valueStart int, line string, lineNum uint32, indent, width int) {
	format := run.ensureFormat(CanonicalStyleFormat, line, lineNum, indent, width)
	spans := run.rowFields(format, value, valueStart, line, lineNum)

	style := &document.StyleDefinition{
		Range: rangeAt(lineNum, line, indent, indent+width),
	}
	for i, name := range format {
		span := spans[i]
		style.Fields = append(style.Fields, document.Field{
			Name:  name,
			Value: span.value,
			Range: rangeAt(lineNum, line, span.start, span.end),
		})
		if name == "Name" {
			style.Name = span.value
			style.NameRange = rangeAt(lineNum, line, span.start, span.end)
		}
	}
	run.cur.Entries = append(run.cur.Entries, style)
}

func (run *parseRun) parseEventRow(kind document.EventKind, value string, valueStart int, line string, lineNum uint32, indent, width int) {
	format := run.ensureFormat(CanonicalEventFormat, line, lineNum, indent, width)
	spans := run.rowFields(format, value, valueStart, line, lineNum)

	ev := &document.EventLine{
		Kind:  kind,
		Range: rangeAt(lineNum, line, indent, indent+width),
	}
	for i, name := range format {
		span := spans[i]
		ev.Fields = append(ev.Fields, document.Field{
			Name:  name,
			Value: span.value,
			Range: rangeAt(lineNum, line, span.start, span.end),
		})
		switch name {
		case "Layer":
			if n, err := strconv.Atoi(span.value); err == nil {
				ev.Layer = n
			}
		case "Start":
			ev.StartRaw = span.value
			ev.Start, ev.StartValid = run.parseEventTime(span, line, lineNum)
		case "End":
			ev.EndRaw = span.value
			ev.End, ev.EndValid = run.parseEventTime(span, line, lineNum)
		case "Style":
			ev.Style = span.value
			ev.StyleRange = rangeAt(lineNum, line, span.start, span.end)
		case "Name":
			ev.Actor = span.value
		case "Effect":
			ev.Effect = span.value
		case "Text":
			ev.Text = span.value
			ev.TextRange = rangeAt(lineNum, line, span.start, span.end)
			ev.TagRuns = run.scanTagRuns(span, line, lineNum)
		}
	}
	run.cur.Entries = append(run.cur.Entries, ev)
}

func (run *parseRun) parseEventTime(span fieldSpan, line string, lineNum uint32) (int, bool) {
	cs, err := ParseTimestamp(span.value)
	if err != nil {
		run.issue(document.Issue{
			Kind:     document.KindMalformedTimestamp,
			Severity: document.SeverityError,
			Range:    rangeAt(lineNum, line, span.start, span.end),
			Message:  capitalize(err.Error()),
		})
		return 0, false
	}
	return cs, true
}

// scanTagRuns extracts every {...} span from an event text field and runs
// the tag scanner over it. Brace problems recover locally: an unmatched
// closer is flagged and skipped, an unclosed opener consumes the rest of
// the text.
func (run *parseRun) scanTagRuns(span fieldSpan, line string, lineNum uint32) []document.TagRun {
	var runs []document.TagRun
	text := span.value
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '}':
			run.issue(document.Issue{
				Kind:     document.KindUnmatchedBrace,
				Severity: document.SeverityError,
				Range:    rangeAt(lineNum, line, span.start+i, span.start+i+1),
				Message:  "Unmatched closing brace",
			})
		case '{':
			closer := strings.IndexByte(text[i+1:], '}')
			if closer < 0 {
				run.issue(document.Issue{
					Kind:     document.KindUnclosedTagRun,
					Severity: document.SeverityError,
					Range:    rangeAt(lineNum, line, span.start+i, span.end),
					Message:  "Unclosed override tag",
				})
				return runs
			}
			end := i + 1 + closer
			runs = append(runs, run.scanOneRun(text[i+1:end], span.start+i, span.start+end+1, line, lineNum))
			i = end
		}
	}
	return runs
}

func (run *parseRun) scanOneRun(content string, openByte, closeByte int, line string, lineNum uint32) document.TagRun {
	invs, issues := tags.Scan(content)
	contentBase := openByte + 1

	tagRun := document.TagRun{
		Range: rangeAt(lineNum, line, openByte, closeByte),
	}
	for _, inv := range invs {
		tagRun.Tags = append(tagRun.Tags, document.TagInvocation{
			Name:          inv.Name,
			Args:          inv.Args,
			Parenthesized: inv.Parenthesized,
			Range:         rangeAt(lineNum, line, contentBase+inv.Start, contentBase+inv.End),
		})
	}
	for _, is := range issues {
		run.issue(document.Issue{
			Kind:     document.KindUnbalancedParens,
			Severity: document.SeverityWarning,
			Range:    rangeAt(lineNum, line, contentBase+is.Offset, contentBase+is.Offset+is.Length),
			Message:  capitalize(is.Message),
		})
	}
	return tagRun
}

func (run *parseRun) issue(is document.Issue) {
	run.doc.Issues = append(run.doc.Issues, is)
}

func rangeAt(lineNum uint32, line string, startByte, endByte int) document.Range {
	return document.Range{
		Start: document.Position{Line: lineNum, Character: document.UTF16Col(line, startByte)},
		End:   document.Position{Line: lineNum, Character: document.UTF16Col(line, endByte)},
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
