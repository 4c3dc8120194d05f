// Package session holds the process-wide store of open documents: for every
// open URI there is exactly one text entry, one parser entry and one tree
// entry, inserted together on open and removed together on close.
//
// Each map guards its membership with its own RWMutex and each entry carries
// its own lock, so operations on different documents never contend and
// operations on the same document serialize through that document's entry.
// The three inserts of Open (and removes of Close) are not one transaction;
// a panic between them could strand a partial document. That is accepted
// here because every accessor fails soft with a ResourceNotFoundError, so a
// partial document is unreachable rather than corrupt.
//
// The store performs no network calls. Notifying the remote side about
// opens, changes and closes is the caller's job.
package session

import (
	"sync"
	"sync/atomic"

	"github.com/corymhall/tsedit/lsp"
	"github.com/corymhall/tsedit/text"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

type textEntry struct {
	mu      sync.RWMutex
	rope    *text.Rope
	version atomic.Int32
}

type parserEntry struct {
	mu     sync.Mutex
	parser *tree_sitter.Parser
}

type treeEntry struct {
	mu sync.Mutex
	// tree is nil for documents whose content the grammar could not parse;
	// such documents stay open and structural queries degrade to no results.
	tree *tree_sitter.Tree
}

// Store is the concurrent mapping from document URI to its text, parser and
// tree. Create one per process with NewStore; it lives for the process
// lifetime.
type Store struct {
	textsMu   sync.RWMutex
	texts     map[lsp.DocumentURI]*textEntry
	parsersMu sync.RWMutex
	parsers   map[lsp.DocumentURI]*parserEntry
	treesMu   sync.RWMutex
	trees     map[lsp.DocumentURI]*treeEntry
}

func NewStore() *Store {
	return &Store{
		texts:   make(map[lsp.DocumentURI]*textEntry),
		parsers: make(map[lsp.DocumentURI]*parserEntry),
		trees:   make(map[lsp.DocumentURI]*treeEntry),
	}
}

// Open inserts all three resource entries for uri. The document version
// starts at 0, the value stamped on the didOpen notification. tree may be
// nil when the initial parse failed.
func (s *Store) Open(uri lsp.DocumentURI, rope *text.Rope, parser *tree_sitter.Parser, tree *tree_sitter.Tree) error {
	s.textsMu.Lock()
	if _, ok := s.texts[uri]; ok {
		s.textsMu.Unlock()
		return &AlreadyOpenError{URI: uri}
	}
	s.texts[uri] = &textEntry{rope: rope}
	s.textsMu.Unlock()

	s.parsersMu.Lock()
	s.parsers[uri] = &parserEntry{parser: parser}
	s.parsersMu.Unlock()

	s.treesMu.Lock()
	s.trees[uri] = &treeEntry{tree: tree}
	s.treesMu.Unlock()
	return nil
}

// Close removes all three entries and returns the final rope so the caller
// can notify the remote side with an empty-diagnostics reset. Parser and
// tree resources are released here.
func (s *Store) Close(uri lsp.DocumentURI) (*text.Rope, error) {
	s.textsMu.Lock()
	entry, ok := s.texts[uri]
	if !ok {
		s.textsMu.Unlock()
		return nil, &ResourceNotFoundError{Kind: KindDocument, URI: uri}
	}
	delete(s.texts, uri)
	s.textsMu.Unlock()

	s.parsersMu.Lock()
	if pe, ok := s.parsers[uri]; ok {
		delete(s.parsers, uri)
		pe.mu.Lock()
		if pe.parser != nil {
			pe.parser.Close()
		}
		pe.mu.Unlock()
	}
	s.parsersMu.Unlock()

	s.treesMu.Lock()
	if te, ok := s.trees[uri]; ok {
		delete(s.trees, uri)
		te.mu.Lock()
		if te.tree != nil {
			te.tree.Close()
		}
		te.mu.Unlock()
	}
	s.treesMu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.rope, nil
}

func (s *Store) textEntry(uri lsp.DocumentURI) (*textEntry, error) {
	s.textsMu.RLock()
	defer s.textsMu.RUnlock()
	entry, ok := s.texts[uri]
	if !ok {
		return nil, &ResourceNotFoundError{Kind: KindDocument, URI: uri}
	}
	return entry, nil
}

// WithText runs fn with shared access to the document's rope. The entry lock
// is held for the duration of fn and released on every exit path.
func (s *Store) WithText(uri lsp.DocumentURI, fn func(*text.Rope) error) error {
	entry, err := s.textEntry(uri)
	if err != nil {
		return err
	}
	entry.mu.RLock()
	defer entry.mu.RUnlock()
	return fn(entry.rope)
}

// WithMutText runs fn with exclusive access to the document's rope.
func (s *Store) WithMutText(uri lsp.DocumentURI, fn func(*text.Rope) error) error {
	entry, err := s.textEntry(uri)
	if err != nil {
		return err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.rope)
}

// SetText atomically replaces the document's rope.
func (s *Store) SetText(uri lsp.DocumentURI, rope *text.Rope) error {
	entry, err := s.textEntry(uri)
	if err != nil {
		return err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.rope = rope
	return nil
}

// WithParser runs fn with the document's parser, serialized against other
// uses of the same parser.
func (s *Store) WithParser(uri lsp.DocumentURI, fn func(*tree_sitter.Parser) error) error {
	s.parsersMu.RLock()
	entry, ok := s.parsers[uri]
	s.parsersMu.RUnlock()
	if !ok {
		return &ResourceNotFoundError{Kind: KindParser, URI: uri}
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.parser)
}

// WithTree runs fn with the document's tree, which is nil for a document
// that never parsed. The tree must not be retained past fn.
func (s *Store) WithTree(uri lsp.DocumentURI, fn func(*tree_sitter.Tree) error) error {
	s.treesMu.RLock()
	entry, ok := s.trees[uri]
	s.treesMu.RUnlock()
	if !ok {
		return &ResourceNotFoundError{Kind: KindTree, URI: uri}
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.tree)
}

// SetTree atomically replaces the stored tree under its entry lock, so
// concurrent readers never observe a half-updated tree. The previous tree
// is released.
func (s *Store) SetTree(uri lsp.DocumentURI, tree *tree_sitter.Tree) error {
	s.treesMu.RLock()
	entry, ok := s.trees[uri]
	s.treesMu.RUnlock()
	if !ok {
		return &ResourceNotFoundError{Kind: KindTree, URI: uri}
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.tree != nil {
		entry.tree.Close()
	}
	entry.tree = tree
	return nil
}

// NextVersion atomically increments and returns the document's version
// counter. Versions are strictly increasing with no reuse; every outgoing
// change notification must carry a fresh one.
func (s *Store) NextVersion(uri lsp.DocumentURI) (int32, error) {
	entry, err := s.textEntry(uri)
	if err != nil {
		return 0, err
	}
	return entry.version.Add(1), nil
}

// Version returns the current version without incrementing.
func (s *Store) Version(uri lsp.DocumentURI) (int32, error) {
	entry, err := s.textEntry(uri)
	if err != nil {
		return 0, err
	}
	return entry.version.Load(), nil
}

// Len reports the number of open documents.
func (s *Store) Len() int {
	s.textsMu.RLock()
	defer s.textsMu.RUnlock()
	return len(s.texts)
}
