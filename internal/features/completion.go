package features

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/wiedymi/ass-lsp/internal/document"
	"github.com/wiedymi/ass-lsp/internal/parser"
	"github.com/wiedymi/ass-lsp/internal/store"
	"github.com/wiedymi/ass-lsp/internal/tags"
)

// scriptInfoKeys are the [Script Info] properties offered before the colon.
var scriptInfoKeys = []string{
	"Title", "ScriptType", "WrapStyle", "PlayResX", "PlayResY",
	"ScaledBorderAndShadow", "YCbCr Matrix", "Video File",
	"Video Aspect Ratio", "Video Zoom", "Video Position",
	"Audio File", "Original Script", "Original Translation",
	"Original Editing", "Original Timing", "Script Updated By",
	"Update Details", "Collisions", "Timer",
}

// Completion resolves the editing context at pos and offers the matching
// candidates: override tags inside a {...} run, section headers on a
// bracket line, Format: field names, declared style names in the style
// cell of an event row, Script Info keys, and event-row snippets.
func Completion(snap *store.Snapshot, pos protocol.Position) []protocol.CompletionItem {
	line, ok := lineAt(snap.Doc.Text, pos.Line)
	if !ok {
		return nil
	}
	prefix := line[:document.ByteOffset(line, pos.Character)]

	if insideTagRun(prefix) {
		return completeTags(prefix)
	}

	trimmed := strings.TrimSpace(prefix)
	if strings.HasPrefix(trimmed, "[") {
		return completeSections(strings.TrimPrefix(trimmed, "["))
	}

	section := sectionAt(snap.Doc, pos.Line)
	switch section {
	case document.SectionScriptInfo:
		if !strings.Contains(prefix, ":") {
			return completeScriptInfoKeys(trimmed)
		}
	case document.SectionStyles:
		if strings.HasPrefix(trimmed, "Format:") {
			return completeFields(parser.CanonicalStyleFormat, "Style field")
		}
		if trimmed == "" {
			return styleRowItems()
		}
	case document.SectionEvents:
		if strings.HasPrefix(trimmed, "Format:") {
			return completeFields(parser.CanonicalEventFormat, "Event field")
		}
		if trimmed == "" || strings.HasSuffix(trimmed, ":") && !strings.Contains(trimmed, ",") {
			return eventRowItems()
		}
		if items := completeStyleNames(snap.Doc, pos.Line, prefix); items != nil {
			return items
		}
	}
	return nil
}

// insideTagRun reports whether the cursor sits in an unclosed {...} span.
func insideTagRun(prefix string) bool {
	open := strings.LastIndexByte(prefix, '{')
	return open >= 0 && open > strings.LastIndexByte(prefix, '}')
}

func completeTags(prefix string) []protocol.CompletionItem {
	partial := ""
	if i := strings.LastIndexByte(prefix, '\\'); i >= 0 {
		partial = prefix[i+1:]
	}

	kind := protocol.CompletionItemKindFunction
	format := protocol.InsertTextFormatSnippet
	var items []protocol.CompletionItem
	for _, name := range tags.Names() {
		if !strings.HasPrefix(name, partial) {
			continue
		}
		spec := tags.Lookup(name)
		detail := spec.Summary
		// The backslash is already in the buffer when the client filters
		// on the typed word, so the snippet starts after it.
		insert := strings.TrimPrefix(spec.Snippet, "\\")
		items = append(items, protocol.CompletionItem{
			Label:  "\\" + name,
			Kind:   &kind,
			Detail: &detail,
			Documentation: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: spec.Doc,
			},
			InsertText:       &insert,
			InsertTextFormat: &format,
		})
	}
	return items
}

func completeSections(partial string) []protocol.CompletionItem {
	sections := []struct {
		name   string
		detail string
	}{
		{"Script Info", "Script metadata and properties"},
		{"V4+ Styles", "Style definitions"},
		{"Events", "Dialogue and timing events"},
		{"Fonts", "Embedded fonts"},
		{"Graphics", "Embedded graphics"},
	}

	kind := protocol.CompletionItemKindModule
	format := protocol.InsertTextFormatPlainText
	lower := strings.ToLower(partial)
	var items []protocol.CompletionItem
	for _, sec := range sections {
		if !strings.HasPrefix(strings.ToLower(sec.name), lower) {
			continue
		}
		detail := sec.detail
		insert := sec.name + "]"
		items = append(items, protocol.CompletionItem{
			Label:            sec.name,
			Kind:             &kind,
			Detail:           &detail,
			InsertText:       &insert,
			InsertTextFormat: &format,
		})
	}
	return items
}

func completeScriptInfoKeys(partial string) []protocol.CompletionItem {
	kind := protocol.CompletionItemKindProperty
	format := protocol.InsertTextFormatSnippet
	detail := "Script Info property"
	lower := strings.ToLower(partial)
	var items []protocol.CompletionItem
	for _, key := range scriptInfoKeys {
		if !strings.HasPrefix(strings.ToLower(key), lower) {
			continue
		}
		insert := key + ": $0"
		items = append(items, protocol.CompletionItem{
			Label:            key,
			Kind:             &kind,
			Detail:           &detail,
			InsertText:       &insert,
			InsertTextFormat: &format,
		})
	}
	return items
}

func completeFields(fields []string, detail string) []protocol.CompletionItem {
	kind := protocol.CompletionItemKindField
	items := make([]protocol.CompletionItem, 0, len(fields))
	for _, f := range fields {
		d := detail
		items = append(items, protocol.CompletionItem{
			Label:  f,
			Kind:   &kind,
			Detail: &d,
		})
	}
	return items
}

// completeStyleNames offers declared styles when the cursor is in the
// style cell of a Dialogue: or Comment: row, located by comma count
// against the section's field order.
func completeStyleNames(doc *document.Document, line uint32, prefix string) []protocol.CompletionItem {
	trimmed := strings.TrimLeft(prefix, " \t")
	var rest string
	switch {
	case strings.HasPrefix(trimmed, "Dialogue:"):
		rest = trimmed[len("Dialogue:"):]
	case strings.HasPrefix(trimmed, "Comment:"):
		rest = trimmed[len("Comment:"):]
	default:
		return nil
	}

	format := parser.CanonicalEventFormat
	if sec := sectionFor(doc, line); sec != nil && sec.Format != nil {
		format = sec.Format
	}
	styleIdx := -1
	for i, f := range format {
		if f == "Style" {
			styleIdx = i
			break
		}
	}
	if styleIdx < 0 || strings.Count(rest, ",") != styleIdx {
		return nil
	}

	kind := protocol.CompletionItemKindValue
	detail := "Declared style"
	seen := map[string]bool{}
	var items []protocol.CompletionItem
	for _, style := range doc.Styles() {
		if style.Name == "" || seen[style.Name] {
			continue
		}
		seen[style.Name] = true
		d := detail
		items = append(items, protocol.CompletionItem{
			Label:  style.Name,
			Kind:   &kind,
			Detail: &d,
		})
	}
	if !seen["Default"] {
		d := "Renderer fallback style"
		items = append(items, protocol.CompletionItem{
			Label:  "Default",
			Kind:   &kind,
			Detail: &d,
		})
	}
	return items
}

func eventRowItems() []protocol.CompletionItem {
	kind := protocol.CompletionItemKindFunction
	format := protocol.InsertTextFormatSnippet
	dialogueDetail := "Dialogue event"
	dialogueInsert := "Dialogue: 0,${1:0:00:00.00},${2:0:00:05.00},${3:Default},,0,0,0,,${4:Text}"
	commentDetail := "Comment event"
	commentInsert := "Comment: 0,${1:0:00:00.00},${2:0:00:05.00},${3:Default},,0,0,0,,${4:Comment}"
	formatDetail := "Event format line"
	formatInsert := "Format: " + strings.Join(parser.CanonicalEventFormat, ", ")
	return []protocol.CompletionItem{
		{Label: "Dialogue:", Kind: &kind, Detail: &dialogueDetail, InsertText: &dialogueInsert, InsertTextFormat: &format},
		{Label: "Comment:", Kind: &kind, Detail: &commentDetail, InsertText: &commentInsert, InsertTextFormat: &format},
		{Label: "Format:", Kind: &kind, Detail: &formatDetail, InsertText: &formatInsert},
	}
}

func styleRowItems() []protocol.CompletionItem {
	kind := protocol.CompletionItemKindFunction
	format := protocol.InsertTextFormatSnippet
	styleDetail := "Style definition"
	styleInsert := "Style: ${1:Default},${2:Arial},${3:48},&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1"
	formatDetail := "Style format line"
	formatInsert := "Format: " + strings.Join(parser.CanonicalStyleFormat, ", ")
	return []protocol.CompletionItem{
		{Label: "Style:", Kind: &kind, Detail: &styleDetail, InsertText: &styleInsert, InsertTextFormat: &format},
		{Label: "Format:", Kind: &kind, Detail: &formatDetail, InsertText: &formatInsert},
	}
}

// lineAt extracts one line of text without its terminator.
func lineAt(text string, line uint32) (string, bool) {
	var idx uint32
	rest := text
	for {
		cur, tail, more := cutLine(rest)
		if idx == line {
			return cur, true
		}
		if !more {
			return "", false
		}
		idx++
		rest = tail
	}
}

func cutLine(s string) (line, rest string, more bool) {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		line = strings.TrimSuffix(s[:i], "\r")
		return line, s[i+1:], true
	}
	return s, "", false
}

// sectionFor finds the parsed section covering a line, by header position.
func sectionFor(doc *document.Document, line uint32) *document.Section {
	var found *document.Section
	for _, sec := range doc.Sections {
		if sec.HeaderRange.Start.Line <= line {
			found = sec
		}
	}
	return found
}

func sectionAt(doc *document.Document, line uint32) document.SectionKind {
	if sec := sectionFor(doc, line); sec != nil {
		return sec.Kind
	}
	return document.SectionUnknown
}
