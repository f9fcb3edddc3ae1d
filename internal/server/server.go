// Package server wires the document store and feature providers into the
// LSP protocol handler.
package server

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/wiedymi/ass-lsp/internal/analysis"
	"github.com/wiedymi/ass-lsp/internal/config"
	"github.com/wiedymi/ass-lsp/internal/document"
	"github.com/wiedymi/ass-lsp/internal/parser"
	"github.com/wiedymi/ass-lsp/internal/store"
)

const serverName = "ass-lsp"

type Server struct {
	handler  *protocol.Handler
	store    *store.Store
	config   config.Config
	analyzer *analysis.Analyzer
}

// NewServer builds the protocol server. cfg carries file-level settings;
// initializationOptions merge over them during the initialize exchange.
func NewServer(cfg config.Config) (*glspserver.Server, error) {
	ls := &Server{config: cfg}
	ls.analyzer = analysis.New(cfg.Policy())
	ls.store = store.New(parser.Parse, func(doc *document.Document) []document.Issue {
		return ls.analyzer.Analyze(doc)
	})
	ls.handler = &protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentCompletion:     ls.textDocumentCompletion,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentFormatting:     ls.textDocumentFormatting,
	}

	return glspserver.NewServer(ls.handler, serverName, false), nil
}
