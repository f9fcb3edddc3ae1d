// Package analysis derives semantic findings from a parsed Document. The
// analyzer never mutates the Document; every pass produces a fresh issue
// list ordered by line, then kind.
package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/wiedymi/ass-lsp/internal/document"
)

// Policy is the configurable part of the analysis: overlap severities and
// heuristic thresholds. A zero severity disables the corresponding check.
type Policy struct {
	SameLayerOverlap  document.Severity
	CrossLayerOverlap document.Severity
	MaxActiveEvents   int
	MaxTransformDepth int
	MaxLineLength     int
}

// DefaultPolicy reflects that a same-layer overlap between two dialogue
// lines is usually a mistake while a cross-layer one is often intentional.
func DefaultPolicy() Policy {
	return Policy{
		SameLayerOverlap:  document.SeverityWarning,
		CrossLayerOverlap: document.SeverityInformation,
		MaxActiveEvents:   10,
		MaxTransformDepth: 2,
		MaxLineLength:     500,
	}
}

// Analyzer runs the semantic pass over documents.
type Analyzer struct {
	policy Policy
}

func New(policy Policy) *Analyzer {
	return &Analyzer{policy: policy}
}

// colorRE accepts &HBBGGRR, &HAABBGGRR (with optional trailing &) and the
// plain decimal form old tools write.
var colorRE = regexp.MustCompile(`^&H[0-9A-Fa-f]{6,8}&?$|^\d+$`)

var colorFields = []string{"PrimaryColour", "SecondaryColour", "OutlineColour", "BackColour"}

// Analyze produces the ordered semantic issues for one document.
func (a *Analyzer) Analyze(doc *document.Document) []document.Issue {
	var issues []document.Issue

	issues = append(issues, a.checkRequiredSections(doc)...)
	issues = append(issues, a.checkStyles(doc)...)
	issues = append(issues, a.checkEvents(doc)...)
	issues = append(issues, a.checkOverlaps(doc)...)

	sort.SliceStable(issues, func(i, j int) bool {
		x, y := issues[i], issues[j]
		if x.Range.Start.Line != y.Range.Start.Line {
			return x.Range.Start.Line < y.Range.Start.Line
		}
		if x.Kind != y.Kind {
			return x.Kind < y.Kind
		}
		return x.Range.Start.Character < y.Range.Start.Character
	})
	return issues
}

func (a *Analyzer) checkRequiredSections(doc *document.Document) []document.Issue {
	var issues []document.Issue
	present := map[document.SectionKind]bool{}
	for _, sec := range doc.Sections {
		present[sec.Kind] = true
	}
	for _, kind := range []document.SectionKind{document.SectionScriptInfo, document.SectionEvents} {
		if !present[kind] {
			issues = append(issues, document.Issue{
				Kind:     document.KindMissingSection,
				Severity: document.SeverityError,
				Message:  fmt.Sprintf("Missing required section: [%s]", kind),
			})
		}
	}
	return issues
}

func (a *Analyzer) checkStyles(doc *document.Document) []document.Issue {
	var issues []document.Issue
	seen := map[string]bool{}

	for _, style := range doc.Styles() {
		if style.Name == "" {
			issues = append(issues, document.Issue{
				Kind:     document.KindEmptyStyleName,
				Severity: document.SeverityError,
				Range:    style.Range,
				Message:  "Style name cannot be empty",
			})
		} else if seen[style.Name] {
			// The later definition wins at resolution time; flag it so the
			// author knows an earlier one is shadowed.
			issues = append(issues, document.Issue{
				Kind:     document.KindDuplicateStyleName,
				Severity: document.SeverityWarning,
				Range:    style.NameRange,
				Message:  fmt.Sprintf("Duplicate style name %q; this definition overrides the earlier one", style.Name),
			})
		}
		seen[style.Name] = true

		if raw, ok := style.Field("Fontsize"); ok && raw != "" {
			if size, err := strconv.ParseFloat(raw, 64); err == nil && size == 0 {
				issues = append(issues, document.Issue{
					Kind:     document.KindZeroFontSize,
					Severity: document.SeverityWarning,
					Range:    fieldRange(style, "Fontsize"),
					Message:  "Font size should not be zero",
				})
			}
		}
		for _, name := range colorFields {
			if raw, ok := style.Field(name); ok && raw != "" && !colorRE.MatchString(raw) {
				issues = append(issues, document.Issue{
					Kind:     document.KindInvalidColor,
					Severity: document.SeverityError,
					Range:    fieldRange(style, name),
					Message:  fmt.Sprintf("Invalid color format: %s", raw),
				})
			}
		}
	}
	return issues
}

func fieldRange(style *document.StyleDefinition, name string) document.Range {
	for _, f := range style.Fields {
		if f.Name == name {
			return f.Range
		}
	}
	return style.Range
}

func (a *Analyzer) checkEvents(doc *document.Document) []document.Issue {
	var issues []document.Issue
	table := doc.StyleTable()
	_, hasDefault := table["Default"]

	for _, ev := range doc.Events() {
		if _, ok := table[ev.Style]; !ok && ev.Style != "Default" {
			msg := fmt.Sprintf("Reference to undefined style: %s", ev.Style)
			if hasDefault {
				msg += `; renderers will fall back to "Default"`
			}
			issues = append(issues, document.Issue{
				Kind:     document.KindUndeclaredStyleReference,
				Severity: document.SeverityWarning,
				Range:    ev.StyleRange,
				Message:  msg,
			})
		}

		if ev.StartValid && ev.EndValid && ev.End < ev.Start {
			issues = append(issues, document.Issue{
				Kind:     document.KindNegativeDuration,
				Severity: document.SeverityWarning,
				Range:    ev.Range,
				Message:  "Start time should be before end time",
			})
		}

		issues = append(issues, a.checkTags(ev)...)

		if a.policy.MaxLineLength > 0 && len(ev.Text) > a.policy.MaxLineLength {
			issues = append(issues, document.Issue{
				Kind:     document.KindLongLine,
				Severity: document.SeverityInformation,
				Range:    ev.TextRange,
				Message:  "Very long line may cause rendering issues",
			})
		}
	}
	return issues
}
