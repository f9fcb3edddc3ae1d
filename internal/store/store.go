// Package store tracks the open documents: for every URI the latest text,
// its editor version, and the most recently completed analysis snapshot.
// Parsing is a pure function of the text, so no lock is held across it;
// only the snapshot swap is serialized, and a parse superseded by a newer
// edit is discarded instead of applied.
package store

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/wiedymi/ass-lsp/internal/document"
)

var (
	// ErrStaleVersion reports a replayed or out-of-order change.
	ErrStaleVersion = errors.New("stale document version")
	// ErrUnknownDocument reports an operation on an untracked URI.
	ErrUnknownDocument = errors.New("document not tracked")
)

// Snapshot is one completed parse+analysis result. It is immutable;
// providers read whichever snapshot was latest when they started.
type Snapshot struct {
	Doc      *document.Document
	Semantic []document.Issue
}

// AnalyzeFunc runs the semantic pass over a freshly parsed document.
type AnalyzeFunc func(*document.Document) []document.Issue

// ParseFunc builds a document from source text.
type ParseFunc func(text string, version int32) *document.Document

// Store is the process-wide URI → document map. Documents are independent
// state machines: operations on different URIs do not contend beyond the
// map lookup.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry

	parse   ParseFunc
	analyze AnalyzeFunc
}

type entry struct {
	mu      sync.Mutex
	version int32
	text    string
	gen     uint64
	snap    *Snapshot
}

// New creates a store around a parser and an analyzer.
func New(parse ParseFunc, analyze AnalyzeFunc) *Store {
	return &Store{
		entries: make(map[string]*entry),
		parse:   parse,
		analyze: analyze,
	}
}

// Open starts tracking a URI and returns the initial snapshot. Reopening
// an already-tracked URI treats the new payload as authoritative.
func (s *Store) Open(uri, text string, version int32) *Snapshot {
	if version <= 0 {
		version = 1
	}
	e := s.entry(uri, true)
	return s.apply(e, text, version)
}

// Change applies a full-text update. The incoming version must be exactly
// previous+1; replays and backward versions are rejected with
// ErrStaleVersion, gaps are logged and the payload is treated as
// authoritative, and an unknown URI self-heals into an open.
func (s *Store) Change(uri, text string, version int32) (*Snapshot, error) {
	e := s.entry(uri, false)
	if e == nil {
		log.Printf("change for untracked document %s; treating as open", uri)
		return s.Open(uri, text, version), nil
	}

	e.mu.Lock()
	prev := e.version
	e.mu.Unlock()

	switch {
	case version <= prev:
		return nil, fmt.Errorf("%w: got %d, have %d", ErrStaleVersion, version, prev)
	case version > prev+1:
		log.Printf("version gap on %s (have %d, got %d); resyncing from payload", uri, prev, version)
	}
	return s.apply(e, text, version), nil
}

// Close stops tracking a URI.
func (s *Store) Close(uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[uri]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDocument, uri)
	}
	delete(s.entries, uri)
	return nil
}

// Latest returns the most recently completed snapshot for a URI. It never
// blocks on an in-flight parse.
func (s *Store) Latest(uri string) (*Snapshot, bool) {
	e := s.entry(uri, false)
	if e == nil {
		return nil, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.snap == nil {
		return nil, false
	}
	return e.snap, true
}

func (s *Store) entry(uri string, create bool) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[uri]
	if !ok && create {
		e = &entry{}
		s.entries[uri] = e
	}
	return e
}

// apply records the new text, runs parse+analysis without holding any
// lock, and swaps the snapshot in unless a newer edit arrived meanwhile.
func (s *Store) apply(e *entry, text string, version int32) *Snapshot {
	e.mu.Lock()
	e.text = text
	e.version = version
	e.gen++
	gen := e.gen
	e.mu.Unlock()

	doc := s.parse(text, version)
	snap := &Snapshot{Doc: doc, Semantic: s.analyze(doc)}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen != gen {
		// A newer edit superseded this parse; discard the result.
		return nil
	}
	e.snap = snap
	return snap
}
