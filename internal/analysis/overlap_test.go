package analysis_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiedymi/ass-lsp/internal/analysis"
	"github.com/wiedymi/ass-lsp/internal/document"
	"github.com/wiedymi/ass-lsp/internal/parser"
)

func eventsDoc(rows ...string) string {
	var sb strings.Builder
	sb.WriteString("[Script Info]\nTitle: x\n\n[Events]\n")
	sb.WriteString(eventFormat)
	for _, row := range rows {
		sb.WriteString(row)
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestSameLayerOverlapReportedOnce(t *testing.T) {
	issues := analyze(t, eventsDoc(
		"Dialogue: 0,0:00:01.00,0:00:05.00,Default,,0,0,0,,first",
		"Dialogue: 0,0:00:04.00,0:00:08.00,Default,,0,0,0,,second",
	))

	overlaps := filterKind(issues, document.KindOverlappingEvents)
	require.Len(t, overlaps, 1)
	assert.Equal(t, document.SeverityWarning, overlaps[0].Severity)
	// Reported on the later event, naming the earlier one.
	assert.Equal(t, uint32(6), overlaps[0].Range.Start.Line)
	assert.Contains(t, overlaps[0].Message, "0:00:01.00-0:00:05.00")
}

func TestTouchingEventsDoNotOverlap(t *testing.T) {
	issues := analyze(t, eventsDoc(
		"Dialogue: 0,0:00:01.00,0:00:05.00,Default,,0,0,0,,first",
		"Dialogue: 0,0:00:05.00,0:00:08.00,Default,,0,0,0,,second",
	))

	assert.Empty(t, filterKind(issues, document.KindOverlappingEvents))
}

func TestCrossLayerOverlapLowerSeverity(t *testing.T) {
	issues := analyze(t, eventsDoc(
		"Dialogue: 0,0:00:01.00,0:00:05.00,Default,,0,0,0,,base",
		"Dialogue: 1,0:00:02.00,0:00:06.00,Default,,0,0,0,,sign",
	))

	overlaps := filterKind(issues, document.KindOverlappingEvents)
	require.Len(t, overlaps, 1)
	assert.Equal(t, document.SeverityInformation, overlaps[0].Severity)
	assert.Contains(t, overlaps[0].Message, "layer 0")
}

func TestCrossLayerOverlapDisabled(t *testing.T) {
	policy := analysis.DefaultPolicy()
	policy.CrossLayerOverlap = 0

	doc := parser.Parse(eventsDoc(
		"Dialogue: 0,0:00:01.00,0:00:05.00,Default,,0,0,0,,base",
		"Dialogue: 1,0:00:02.00,0:00:06.00,Default,,0,0,0,,sign",
	), 1)
	issues := analysis.New(policy).Analyze(doc)

	assert.Empty(t, filterKind(issues, document.KindOverlappingEvents))
}

func TestCommentsAndInvalidTimesSkipOverlap(t *testing.T) {
	issues := analyze(t, eventsDoc(
		"Dialogue: 0,0:00:01.00,0:00:05.00,Default,,0,0,0,,shown",
		"Comment: 0,0:00:02.00,0:00:06.00,Default,,0,0,0,,disabled",
		"Dialogue: 0,bad,0:00:06.00,Default,,0,0,0,,invalid start",
	))

	assert.Empty(t, filterKind(issues, document.KindOverlappingEvents))
}

func TestUnsortedEventsStillDetected(t *testing.T) {
	issues := analyze(t, eventsDoc(
		"Dialogue: 0,0:00:10.00,0:00:20.00,Default,,0,0,0,,late",
		"Dialogue: 0,0:00:01.00,0:00:12.00,Default,,0,0,0,,early but listed second",
	))

	require.Len(t, filterKind(issues, document.KindOverlappingEvents), 1)
}

func TestCrowdedLayer(t *testing.T) {
	policy := analysis.DefaultPolicy()
	policy.MaxActiveEvents = 3

	var rows []string
	for i := 0; i < 5; i++ {
		rows = append(rows, fmt.Sprintf(
			"Dialogue: 0,0:00:0%d.00,0:00:09.00,Default,,0,0,0,,line %d", i+1, i))
	}
	doc := parser.Parse(eventsDoc(rows...), 1)
	issues := analysis.New(policy).Analyze(doc)

	// Flagged once per layer, not once per extra event.
	require.Len(t, filterKind(issues, document.KindCrowdedLayer), 1)
}

func TestChainedOverlapsOnePerEvent(t *testing.T) {
	issues := analyze(t, eventsDoc(
		"Dialogue: 0,0:00:01.00,0:00:10.00,Default,,0,0,0,,long",
		"Dialogue: 0,0:00:02.00,0:00:04.00,Default,,0,0,0,,inner one",
		"Dialogue: 0,0:00:05.00,0:00:07.00,Default,,0,0,0,,inner two",
	))

	overlaps := filterKind(issues, document.KindOverlappingEvents)
	require.Len(t, overlaps, 2)
	assert.Equal(t, uint32(6), overlaps[0].Range.Start.Line)
	assert.Equal(t, uint32(7), overlaps[1].Range.Start.Line)
}
