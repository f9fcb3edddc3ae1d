package analysis

import (
	"fmt"
	"sort"

	"github.com/wiedymi/ass-lsp/internal/document"
)

// checkOverlaps flags intersecting [start, end) intervals among dialogue
// events. Same-layer overlaps use one sweep per layer over events sorted
// by (layer, start); cross-layer overlaps use a second sweep with an
// active-interval list. Comment rows and events with malformed timestamps
// never participate.
func (a *Analyzer) checkOverlaps(doc *document.Document) []document.Issue {
	var events []*document.EventLine
	for _, ev := range doc.Events() {
		if ev.Kind == document.EventDialogue && ev.StartValid && ev.EndValid && ev.End > ev.Start {
			events = append(events, ev)
		}
	}
	if len(events) < 2 {
		return nil
	}

	var issues []document.Issue
	issues = append(issues, a.sameLayerOverlaps(events)...)
	issues = append(issues, a.crossLayerOverlaps(events)...)
	return issues
}

func (a *Analyzer) sameLayerOverlaps(events []*document.EventLine) []document.Issue {
	sorted := make([]*document.EventLine, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Layer != sorted[j].Layer {
			return sorted[i].Layer < sorted[j].Layer
		}
		return sorted[i].Start < sorted[j].Start
	})

	var issues []document.Issue
	var (
		curLayer     int
		maxEnd       int
		maxEndEv     *document.EventLine
		active       []int // ends of running intervals in the current layer
		layerFlagged bool
	)

	for _, ev := range sorted {
		if maxEndEv == nil || ev.Layer != curLayer {
			curLayer = ev.Layer
			maxEnd = ev.End
			maxEndEv = ev
			active = active[:0]
			active = append(active, ev.End)
			layerFlagged = false
			continue
		}

		if ev.Start < maxEnd && a.policy.SameLayerOverlap != 0 {
			issues = append(issues, document.Issue{
				Kind:     document.KindOverlappingEvents,
				Severity: a.policy.SameLayerOverlap,
				Range:    ev.Range,
				Message: fmt.Sprintf("Event overlaps the %s-%s event in the same layer",
					maxEndEv.StartRaw, maxEndEv.EndRaw),
			})
		}

		// Prune finished intervals, then track concurrency for the
		// crowded-layer heuristic.
		live := active[:0]
		for _, end := range active {
			if end > ev.Start {
				live = append(live, end)
			}
		}
		active = append(live, ev.End)
		if a.policy.MaxActiveEvents > 0 && len(active) > a.policy.MaxActiveEvents && !layerFlagged {
			layerFlagged = true
			issues = append(issues, document.Issue{
				Kind:     document.KindCrowdedLayer,
				Severity: document.SeverityInformation,
				Range:    ev.Range,
				Message: fmt.Sprintf("More than %d simultaneous events in layer %d; rendering may be expensive",
					a.policy.MaxActiveEvents, ev.Layer),
			})
		}

		if ev.End > maxEnd {
			maxEnd = ev.End
			maxEndEv = ev
		}
	}
	return issues
}

type activeInterval struct {
	end   int
	layer int
	start string
	endS  string
}

func (a *Analyzer) crossLayerOverlaps(events []*document.EventLine) []document.Issue {
	if a.policy.CrossLayerOverlap == 0 {
		return nil
	}

	sorted := make([]*document.EventLine, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var issues []document.Issue
	var active []activeInterval
	for _, ev := range sorted {
		live := active[:0]
		for _, it := range active {
			if it.end > ev.Start {
				live = append(live, it)
			}
		}
		active = live

		for _, it := range active {
			if it.layer != ev.Layer {
				// One report per event keeps dense multi-layer typesetting
				// from flooding the diagnostics list.
				issues = append(issues, document.Issue{
					Kind:     document.KindOverlappingEvents,
					Severity: a.policy.CrossLayerOverlap,
					Range:    ev.Range,
					Message: fmt.Sprintf("Event overlaps the %s-%s event in layer %d",
						it.start, it.endS, it.layer),
				})
				break
			}
		}
		active = append(active, activeInterval{end: ev.End, layer: ev.Layer, start: ev.StartRaw, endS: ev.EndRaw})
	}
	return issues
}
