package features

import (
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/wiedymi/ass-lsp/internal/document"
	"github.com/wiedymi/ass-lsp/internal/store"
)

// DocumentSymbols renders the section outline: one namespace symbol per
// section, with properties, styles and events nested beneath it.
func DocumentSymbols(snap *store.Snapshot) []protocol.DocumentSymbol {
	symbols := make([]protocol.DocumentSymbol, 0, len(snap.Doc.Sections))
	for _, sec := range snap.Doc.Sections {
		children := sectionChildren(sec)
		detail := fmt.Sprintf("%d items", len(children))
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           sec.Name,
			Detail:         &detail,
			Kind:           protocol.SymbolKindNamespace,
			Range:          toProtocolRange(sectionExtent(sec)),
			SelectionRange: toProtocolRange(sec.HeaderRange),
			Children:       children,
		})
	}
	return symbols
}

func sectionChildren(sec *document.Section) []protocol.DocumentSymbol {
	var children []protocol.DocumentSymbol
	for _, entry := range sec.Entries {
		switch e := entry.(type) {
		case *document.ScriptInfoField:
			detail := e.Value
			children = append(children, protocol.DocumentSymbol{
				Name:           e.Key,
				Detail:         &detail,
				Kind:           protocol.SymbolKindProperty,
				Range:          toProtocolRange(e.Range),
				SelectionRange: toProtocolRange(e.KeyRange),
			})
		case *document.StyleDefinition:
			children = append(children, styleSymbol(e))
		case *document.EventLine:
			children = append(children, eventSymbol(e))
		}
	}
	return children
}

func styleSymbol(style *document.StyleDefinition) protocol.DocumentSymbol {
	font, _ := style.Field("Fontname")
	size, _ := style.Field("Fontsize")
	detail := font
	if size != "" {
		detail = font + " " + size
	}
	return protocol.DocumentSymbol{
		Name:           style.Name,
		Detail:         &detail,
		Kind:           protocol.SymbolKindClass,
		Range:          toProtocolRange(style.Range),
		SelectionRange: toProtocolRange(style.NameRange),
	}
}

func eventSymbol(ev *document.EventLine) protocol.DocumentSymbol {
	name := fmt.Sprintf("%s - %s", ev.StartRaw, ev.EndRaw)
	if ev.Actor != "" {
		name = fmt.Sprintf("%s: %s - %s", ev.Actor, ev.StartRaw, ev.EndRaw)
	}

	detail := ev.Text
	if len(detail) > 50 {
		detail = truncate(detail, 50)
	}

	kind := protocol.SymbolKindFunction
	if ev.Kind == document.EventComment {
		kind = protocol.SymbolKindVariable
	}
	return protocol.DocumentSymbol{
		Name:           name,
		Detail:         &detail,
		Kind:           kind,
		Range:          toProtocolRange(ev.Range),
		SelectionRange: toProtocolRange(ev.Range),
	}
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}

// sectionExtent spans from the header through the last entry.
func sectionExtent(sec *document.Section) document.Range {
	extent := sec.HeaderRange
	if n := len(sec.Entries); n > 0 {
		extent.End = sec.Entries[n-1].EntryRange().End
	}
	return extent
}
