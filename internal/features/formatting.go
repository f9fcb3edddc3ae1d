package features

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/wiedymi/ass-lsp/internal/document"
	"github.com/wiedymi/ass-lsp/internal/store"
)

// FormattingEdits formats the whole document as a single replacing edit,
// or nil when the text is already formatted.
func FormattingEdits(snap *store.Snapshot) []protocol.TextEdit {
	text := snap.Doc.Text
	formatted := Format(text)
	if formatted == text {
		return nil
	}

	lines := uint32(strings.Count(text, "\n"))
	lastLine, _ := lineAt(text, lines)
	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: lines, Character: document.UTF16Len(lastLine)},
		},
		NewText: formatted,
	}}
}

// Format trims trailing whitespace, normalizes indentation away, and
// separates sections with exactly one blank line. It is idempotent:
// formatting already-formatted text is a no-op.
func Format(text string) string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if isSectionHeader(line) && len(out) > 0 {
			// Collapse whatever ran before the header into one blank line.
			for len(out) > 0 && out[len(out)-1] == "" {
				out = out[:len(out)-1]
			}
			out = append(out, "")
		}
		out = append(out, line)
	}

	// Drop trailing blank lines, keep the final newline.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

func isSectionHeader(line string) bool {
	return len(line) >= 2 && line[0] == '[' && line[len(line)-1] == ']'
}
