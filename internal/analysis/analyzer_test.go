package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiedymi/ass-lsp/internal/analysis"
	"github.com/wiedymi/ass-lsp/internal/document"
	"github.com/wiedymi/ass-lsp/internal/parser"
)

const styleFormat = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n"

const eventFormat = "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n"

func analyze(t *testing.T, text string) []document.Issue {
	t.Helper()
	doc := parser.Parse(text, 1)
	return analysis.New(analysis.DefaultPolicy()).Analyze(doc)
}

func filterKind(issues []document.Issue, kind document.IssueKind) []document.Issue {
	var out []document.Issue
	for _, is := range issues {
		if is.Kind == kind {
			out = append(out, is)
		}
	}
	return out
}

func TestMissingRequiredSections(t *testing.T) {
	issues := analyze(t, "[V4+ Styles]\n"+styleFormat)
	missing := filterKind(issues, document.KindMissingSection)
	require.Len(t, missing, 2)
	assert.Contains(t, missing[0].Message, "[Script Info]")
	assert.Contains(t, missing[1].Message, "[Events]")
	assert.Equal(t, document.SeverityError, missing[0].Severity)
}

func TestDuplicateStyleName(t *testing.T) {
	issues := analyze(t, "[Script Info]\nTitle: x\n\n[V4+ Styles]\n"+styleFormat+
		"Style: Main,Arial,48,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n"+
		"Style: Main,Georgia,52,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n"+
		"\n[Events]\n"+eventFormat)

	dups := filterKind(issues, document.KindDuplicateStyleName)
	require.Len(t, dups, 1)
	// Anchored at the later definition, the one that shadows.
	assert.Equal(t, uint32(6), dups[0].Range.Start.Line)
	assert.Contains(t, dups[0].Message, `"Main"`)
}

func TestEmptyStyleName(t *testing.T) {
	issues := analyze(t, "[Script Info]\nTitle: x\n\n[V4+ Styles]\n"+styleFormat+
		"Style: ,Arial,48,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n"+
		"\n[Events]\n"+eventFormat)

	require.Len(t, filterKind(issues, document.KindEmptyStyleName), 1)
}

func TestZeroFontSizeAndInvalidColor(t *testing.T) {
	issues := analyze(t, "[Script Info]\nTitle: x\n\n[V4+ Styles]\n"+styleFormat+
		"Style: Main,Arial,0,notacolor,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n"+
		"\n[Events]\n"+eventFormat)

	require.Len(t, filterKind(issues, document.KindZeroFontSize), 1)

	colors := filterKind(issues, document.KindInvalidColor)
	require.Len(t, colors, 1)
	assert.Equal(t, document.SeverityError, colors[0].Severity)
	assert.Contains(t, colors[0].Message, "notacolor")
}

func TestColorFormsAccepted(t *testing.T) {
	issues := analyze(t, "[Script Info]\nTitle: x\n\n[V4+ Styles]\n"+styleFormat+
		"Style: Main,Arial,48,&H00FFFFFF,&HFFFFFF,16777215,&H00000000&,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n"+
		"\n[Events]\n"+eventFormat)

	assert.Empty(t, filterKind(issues, document.KindInvalidColor))
}

func TestUndeclaredStyleReference(t *testing.T) {
	issues := analyze(t, "[Script Info]\nTitle: x\n\n[Events]\n"+eventFormat+
		"Dialogue: 0,0:00:01.00,0:00:02.00,Missing,,0,0,0,,hi\n"+
		"Dialogue: 0,0:00:03.00,0:00:04.00,Default,,0,0,0,,ho\n")

	refs := filterKind(issues, document.KindUndeclaredStyleReference)
	require.Len(t, refs, 1)
	assert.Contains(t, refs[0].Message, "Missing")
	// Anchored at the style cell, not the whole row.
	assert.Equal(t, uint32(5), refs[0].Range.Start.Line)
	assert.Greater(t, refs[0].Range.Start.Character, uint32(0))
}

func TestNegativeDuration(t *testing.T) {
	issues := analyze(t, "[Script Info]\nTitle: x\n\n[Events]\n"+eventFormat+
		"Dialogue: 0,0:00:05.00,0:00:01.00,Default,,0,0,0,,backwards\n")

	require.Len(t, filterKind(issues, document.KindNegativeDuration), 1)
}

func TestUnknownOverrideTagIsHint(t *testing.T) {
	issues := analyze(t, "[Script Info]\nTitle: x\n\n[Events]\n"+eventFormat+
		`Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,{\xyz}hi`+"\n")

	unknown := filterKind(issues, document.KindUnknownOverrideTag)
	require.Len(t, unknown, 1)
	assert.Equal(t, document.SeverityHint, unknown[0].Severity)
}

func TestEscapesNotFlagged(t *testing.T) {
	issues := analyze(t, "[Script Info]\nTitle: x\n\n[Events]\n"+eventFormat+
		`Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,{\N\h}hi`+"\n")

	assert.Empty(t, filterKind(issues, document.KindUnknownOverrideTag))
}

func TestArityMismatch(t *testing.T) {
	issues := analyze(t, "[Script Info]\nTitle: x\n\n[Events]\n"+eventFormat+
		`Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,{\pos(100)}one arg`+"\n"+
		`Dialogue: 0,0:00:03.00,0:00:04.00,Default,,0,0,0,,{\fs(20)}parens on suffix tag`+"\n"+
		`Dialogue: 0,0:00:05.00,0:00:06.00,Default,,0,0,0,,{\pos(1,2)}fine`+"\n")

	mismatches := filterKind(issues, document.KindArgumentArityMismatch)
	require.Len(t, mismatches, 2)
	assert.Contains(t, mismatches[0].Message, "takes 2 arguments, got 1")
	assert.Contains(t, mismatches[1].Message, "suffix")
}

func TestTransformRecursion(t *testing.T) {
	issues := analyze(t, "[Script Info]\nTitle: x\n\n[Events]\n"+eventFormat+
		`Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,{\t(0,500,\pos(1))}bad nested arity`+"\n")

	mismatches := filterKind(issues, document.KindArgumentArityMismatch)
	require.Len(t, mismatches, 1)
	assert.Contains(t, mismatches[0].Message, `\pos`)
}

func TestExcessiveTransformDepth(t *testing.T) {
	issues := analyze(t, "[Script Info]\nTitle: x\n\n[Events]\n"+eventFormat+
		`Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,{\t(\t(\t(\fscx120)))}deep`+"\n")

	require.Len(t, filterKind(issues, document.KindExcessiveAnimation), 1)
}

func TestLongLine(t *testing.T) {
	policy := analysis.DefaultPolicy()
	policy.MaxLineLength = 10

	doc := parser.Parse("[Script Info]\nTitle: x\n\n[Events]\n"+eventFormat+
		"Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,this text is well past ten characters\n", 1)
	issues := analysis.New(policy).Analyze(doc)

	require.Len(t, filterKind(issues, document.KindLongLine), 1)
}

func TestIssuesSortedByLine(t *testing.T) {
	issues := analyze(t, "[Script Info]\nTitle: x\n\n[Events]\n"+eventFormat+
		"Dialogue: 0,0:00:05.00,0:00:01.00,Default,,0,0,0,,later line\n"+
		"Dialogue: 0,0:00:01.00,0:00:02.00,Missing,,0,0,0,,earlier issue sorts last? no\n")

	require.True(t, len(issues) >= 2)
	for i := 1; i < len(issues); i++ {
		assert.LessOrEqual(t, issues[i-1].Range.Start.Line, issues[i].Range.Start.Line)
	}
}
