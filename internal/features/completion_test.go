package features_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/wiedymi/ass-lsp/internal/analysis"
	"github.com/wiedymi/ass-lsp/internal/features"
	"github.com/wiedymi/ass-lsp/internal/parser"
	"github.com/wiedymi/ass-lsp/internal/store"
)

func snapshotOf(text string) *store.Snapshot {
	doc := parser.Parse(text, 1)
	return &store.Snapshot{
		Doc:      doc,
		Semantic: analysis.New(analysis.DefaultPolicy()).Analyze(doc),
	}
}

func labels(items []protocol.CompletionItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}

func TestCompleteSectionHeader(t *testing.T) {
	snap := snapshotOf("[Eve")
	items := features.Completion(snap, protocol.Position{Line: 0, Character: 4})
	assert.Equal(t, []string{"Events"}, labels(items))
}

func TestCompleteSectionHeaderAll(t *testing.T) {
	snap := snapshotOf("[")
	items := features.Completion(snap, protocol.Position{Line: 0, Character: 1})
	assert.Equal(t, []string{"Script Info", "V4+ Styles", "Events", "Fonts", "Graphics"}, labels(items))
}

func TestCompleteTagsAfterBackslash(t *testing.T) {
	snap := snapshotOf("[Script Info]\nTitle: x\n\n[Events]\n" +
		"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n" +
		`Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,{\`)
	line := `Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,{\`
	items := features.Completion(snap, protocol.Position{Line: 5, Character: uint32(len(line))})

	require.NotEmpty(t, items)
	assert.Contains(t, labels(items), `\pos`)
	assert.Contains(t, labels(items), `\fade`)

	for _, item := range items {
		if item.Label == `\pos` {
			require.NotNil(t, item.InsertText)
			assert.Equal(t, "pos(${1:x},${2:y})", *item.InsertText)
			require.NotNil(t, item.InsertTextFormat)
			assert.Equal(t, protocol.InsertTextFormatSnippet, *item.InsertTextFormat)
		}
	}
}

func TestCompleteTagsFiltersByPrefix(t *testing.T) {
	text := "[Script Info]\nTitle: x\n\n[Events]\n" +
		"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n" +
		`Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,{\fa`
	snap := snapshotOf(text)
	line := `Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,{\fa`
	items := features.Completion(snap, protocol.Position{Line: 5, Character: uint32(len(line))})
	assert.ElementsMatch(t, []string{`\fad`, `\fade`}, labels(items))
}

func TestCompleteScriptInfoKeys(t *testing.T) {
	snap := snapshotOf("[Script Info]\nTi")
	items := features.Completion(snap, protocol.Position{Line: 1, Character: 2})
	require.NotEmpty(t, items)
	assert.Contains(t, labels(items), "Title")
	assert.Contains(t, labels(items), "Timer")
}

func TestNoKeyCompletionAfterColon(t *testing.T) {
	snap := snapshotOf("[Script Info]\nTitle: My")
	items := features.Completion(snap, protocol.Position{Line: 1, Character: 9})
	assert.Empty(t, items)
}

func TestCompleteEventFormatFields(t *testing.T) {
	snap := snapshotOf("[Script Info]\nTitle: x\n\n[Events]\nFormat: ")
	items := features.Completion(snap, protocol.Position{Line: 4, Character: 8})
	assert.Equal(t, parser.CanonicalEventFormat, labels(items))
}

func TestCompleteStyleFormatFields(t *testing.T) {
	snap := snapshotOf("[V4+ Styles]\nFormat: ")
	items := features.Completion(snap, protocol.Position{Line: 1, Character: 8})
	assert.Equal(t, parser.CanonicalStyleFormat, labels(items))
}

func TestCompleteEventRowSnippets(t *testing.T) {
	snap := snapshotOf("[Script Info]\nTitle: x\n\n[Events]\n")
	items := features.Completion(snap, protocol.Position{Line: 4, Character: 0})
	assert.Equal(t, []string{"Dialogue:", "Comment:", "Format:"}, labels(items))
}

func TestCompleteStyleNamesInStyleCell(t *testing.T) {
	text := "[Script Info]\nTitle: x\n\n[V4+ Styles]\n" +
		"Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n" +
		"Style: Main,Arial,48,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n" +
		"\n[Events]\n" +
		"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n" +
		"Dialogue: 0,0:00:01.00,0:00:02.00,"
	snap := snapshotOf(text)
	line := "Dialogue: 0,0:00:01.00,0:00:02.00,"
	items := features.Completion(snap, protocol.Position{Line: 9, Character: uint32(len(line))})
	assert.Equal(t, []string{"Main", "Default"}, labels(items))
}

func TestNoStyleNamesOutsideStyleCell(t *testing.T) {
	text := "[Script Info]\nTitle: x\n\n[Events]\n" +
		"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n" +
		"Dialogue: 0,"
	snap := snapshotOf(text)
	items := features.Completion(snap, protocol.Position{Line: 5, Character: 12})
	assert.Empty(t, items)
}

func TestCompletionPastEndOfDocument(t *testing.T) {
	snap := snapshotOf("[Script Info]\n")
	items := features.Completion(snap, protocol.Position{Line: 20, Character: 0})
	assert.Empty(t, items)
}
