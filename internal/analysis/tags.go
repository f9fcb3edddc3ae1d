package analysis

import (
	"fmt"
	"strings"

	"github.com/wiedymi/ass-lsp/internal/document"
	"github.com/wiedymi/ass-lsp/internal/tags"
)

// escapeNames are text escapes, not override tags; they occasionally show
// up inside braces and should not be flagged as unknown.
var escapeNames = map[string]bool{"N": true, "n": true, "h": true}

// checkTags arity-checks every invocation against the curated table.
// Unknown names degrade to hints; the format has too many renderer
// extensions to treat them as errors.
func (a *Analyzer) checkTags(ev *document.EventLine) []document.Issue {
	var issues []document.Issue
	for _, run := range ev.TagRuns {
		for _, inv := range run.Tags {
			issues = append(issues, a.checkInvocation(inv, inv.Range, 0)...)
		}
	}
	return issues
}

func (a *Analyzer) checkInvocation(inv document.TagInvocation, anchor document.Range, depth int) []document.Issue {
	if escapeNames[inv.Name] {
		return nil
	}

	spec := tags.Lookup(inv.Name)
	if spec == nil {
		return []document.Issue{{
			Kind:     document.KindUnknownOverrideTag,
			Severity: document.SeverityHint,
			Range:    anchor,
			Message:  fmt.Sprintf("Unknown override tag \\%s", inv.Name),
		}}
	}

	var issues []document.Issue
	switch {
	case spec.Arities == nil && inv.Parenthesized:
		issues = append(issues, document.Issue{
			Kind:     document.KindArgumentArityMismatch,
			Severity: document.SeverityWarning,
			Range:    anchor,
			Message:  fmt.Sprintf("\\%s takes its value as a suffix, not in parentheses", inv.Name),
		})
	case spec.Arities != nil && !inv.Parenthesized:
		issues = append(issues, document.Issue{
			Kind:     document.KindArgumentArityMismatch,
			Severity: document.SeverityWarning,
			Range:    anchor,
			Message:  fmt.Sprintf("\\%s expects a parenthesized argument list", inv.Name),
		})
	case spec.Arities != nil && !spec.AcceptsArity(len(inv.Args)):
		issues = append(issues, document.Issue{
			Kind:     document.KindArgumentArityMismatch,
			Severity: document.SeverityWarning,
			Range:    anchor,
			Message:  fmt.Sprintf("\\%s takes %s arguments, got %d", inv.Name, arityList(spec.Arities), len(inv.Args)),
		})
	}

	if inv.Name == "t" && len(inv.Args) > 0 {
		issues = append(issues, a.checkTransformBody(inv.Args[len(inv.Args)-1], anchor, depth)...)
	}
	return issues
}

// checkTransformBody re-scans the tag block of a \t argument. Nested
// invocations are anchored at the enclosing \t since their own offsets are
// relative to an inner string, and depth past the policy threshold is a
// renderer-cost hint rather than a correctness problem.
func (a *Analyzer) checkTransformBody(body string, anchor document.Range, depth int) []document.Issue {
	var issues []document.Issue
	if a.policy.MaxTransformDepth > 0 && depth+1 > a.policy.MaxTransformDepth {
		issues = append(issues, document.Issue{
			Kind:     document.KindExcessiveAnimation,
			Severity: document.SeverityInformation,
			Range:    anchor,
			Message:  fmt.Sprintf("Transform blocks nested more than %d deep are expensive to render", a.policy.MaxTransformDepth),
		})
		return issues
	}

	invs, _ := tags.Scan(body)
	for _, nested := range invs {
		issues = append(issues, a.checkInvocation(document.TagInvocation{
			Name:          nested.Name,
			Args:          nested.Args,
			Parenthesized: nested.Parenthesized,
			Range:         anchor,
		}, anchor, depth+1)...)
	}
	return issues
}

func arityList(arities []int) string {
	parts := make([]string, len(arities))
	for i, n := range arities {
		parts[i] = fmt.Sprint(n)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}
