// Package features contains the read-only providers that translate
// analysis results into LSP-shaped responses. Every provider works
// against one completed snapshot and never blocks on an in-flight parse.
package features

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/wiedymi/ass-lsp/internal/document"
	"github.com/wiedymi/ass-lsp/internal/store"
)

const diagnosticSource = "ass-lsp"

// Diagnostics renders the snapshot's parse issues followed by its
// semantic issues. The list replaces any previously published set
// wholesale.
func Diagnostics(snap *store.Snapshot) []protocol.Diagnostic {
	issues := make([]document.Issue, 0, len(snap.Doc.Issues)+len(snap.Semantic))
	issues = append(issues, snap.Doc.Issues...)
	issues = append(issues, snap.Semantic...)

	// Never nil: publishing an empty list clears stale diagnostics.
	diagnostics := make([]protocol.Diagnostic, 0, len(issues))
	for _, is := range issues {
		severity := protocol.DiagnosticSeverity(is.Severity)
		source := diagnosticSource
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    toProtocolRange(is.Range),
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: string(is.Kind)},
			Source:   &source,
			Message:  is.Message,
		})
	}
	return diagnostics
}

func toProtocolRange(r document.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: r.Start.Line, Character: r.Start.Character},
		End:   protocol.Position{Line: r.End.Line, Character: r.End.Character},
	}
}
