package server

import (
	"errors"
	"fmt"
	"log"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/wiedymi/ass-lsp/internal/features"
	"github.com/wiedymi/ass-lsp/internal/store"
)

func (s *Server) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	snap := s.store.Open(uri, params.TextDocument.Text, params.TextDocument.Version)
	if snap != nil {
		publishDiagnostics(context, uri, features.Diagnostics(snap))
	}
	return nil
}

func (s *Server) textDocumentDidChange(
	context *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	uri := params.TextDocument.URI

	// Full sync: the last whole-document payload wins.
	text, ok := "", false
	for _, raw := range params.ContentChanges {
		switch change := raw.(type) {
		case protocol.TextDocumentContentChangeEvent:
			if change.Range != nil {
				return fmt.Errorf("received incremental change despite full sync")
			}
			text, ok = change.Text, true
		case protocol.TextDocumentContentChangeEventWhole:
			text, ok = change.Text, true
		default:
			return fmt.Errorf("unexpected change event type %T", raw)
		}
	}
	if !ok {
		return nil
	}

	snap, err := s.store.Change(uri, text, params.TextDocument.Version)
	if err != nil {
		if errors.Is(err, store.ErrStaleVersion) {
			log.Printf("Dropping stale change for %s: %v", uri, err)
			return nil
		}
		return err
	}
	if snap != nil {
		publishDiagnostics(context, uri, features.Diagnostics(snap))
	}
	return nil
}

func (s *Server) textDocumentDidSave(
	context *glsp.Context,
	params *protocol.DidSaveTextDocumentParams,
) error {
	// The open buffer is already current; saving just re-announces it.
	if snap, ok := s.store.Latest(params.TextDocument.URI); ok {
		publishDiagnostics(context, params.TextDocument.URI, features.Diagnostics(snap))
	}
	return nil
}

func (s *Server) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	if err := s.store.Close(uri); err != nil {
		log.Printf("Close for %s: %v", uri, err)
	}
	// Clear our diagnostics for the closed buffer.
	publishDiagnostics(context, uri, []protocol.Diagnostic{})
	return nil
}

func publishDiagnostics(
	context *glsp.Context,
	uri string,
	diagnostics []protocol.Diagnostic,
) {
	context.Notify("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}
