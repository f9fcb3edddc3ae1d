package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/wiedymi/ass-lsp/internal/features"
)

func (s *Server) textDocumentCompletion(
	context *glsp.Context,
	params *protocol.CompletionParams,
) (any, error) {
	snap, ok := s.store.Latest(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	items := features.Completion(snap, params.Position)
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

func (s *Server) textDocumentHover(
	context *glsp.Context,
	params *protocol.HoverParams,
) (*protocol.Hover, error) {
	snap, ok := s.store.Latest(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return features.Hover(snap, params.Position), nil
}

func (s *Server) textDocumentDocumentSymbol(
	context *glsp.Context,
	params *protocol.DocumentSymbolParams,
) (any, error) {
	snap, ok := s.store.Latest(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return features.DocumentSymbols(snap), nil
}

func (s *Server) textDocumentFormatting(
	context *glsp.Context,
	params *protocol.DocumentFormattingParams,
) ([]protocol.TextEdit, error) {
	snap, ok := s.store.Latest(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return features.FormattingEdits(snap), nil
}
