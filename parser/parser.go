// Package parser adapts tree-sitter for the editor: one parser instance per
// open document, full parse on open, incremental reparse on change, and a
// declaration query for document symbols.
package parser

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// DECLARATION_QUERY matches the declaration forms we surface as document
// symbols, pairing each declaration node with its identifier child.
const DECLARATION_QUERY = `
(function_declaration
  name: (identifier) @identifier) @function_declaration
(lexical_declaration
  (variable_declarator
    name: (identifier) @identifier)) @lexical_declaration
(variable_declaration
  (variable_declarator
    name: (identifier) @identifier)) @variable_declaration
(class_declaration
  name: (identifier) @identifier) @class_declaration
`

// Analyzer owns the grammar and the compiled declaration query. It is safe
// to share across documents; each document gets its own Parser via
// NewDocumentParser.
type Analyzer struct {
	lang  *tree_sitter.Language
	query *tree_sitter.Query
}

func NewAnalyzer(language *tree_sitter.Language) (*Analyzer, error) {
	query, err := tree_sitter.NewQuery(language, DECLARATION_QUERY)
	if err != nil {
		return nil, fmt.Errorf("failed to compile declaration query: %w", err)
	}
	return &Analyzer{lang: language, query: query}, nil
}

func (a *Analyzer) Close() {
	if a.query != nil {
		a.query.Close()
	}
}

// NewDocumentParser creates a parser bound to the analyzer's grammar. One
// parser exists per open document and lives in the session store.
func (a *Analyzer) NewDocumentParser() (*tree_sitter.Parser, error) {
	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(a.lang); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	parser.StopPrintingDotGraphs()
	return parser, nil
}

// ParseFull parses content from scratch. A nil tree means the grammar could
// not tokenize the input at all; that is a per-document condition, not an
// error: the document stays open without a tree and structural queries
// return empty results.
func (a *Analyzer) ParseFull(parser *tree_sitter.Parser, content []byte) *tree_sitter.Tree {
	return parser.Parse(content, nil)
}

// Reparse parses the new full text, passing the previous tree as a hint so
// unchanged regions are reused. The old tree is only read, never mutated;
// the caller swaps the result into the store atomically.
func (a *Analyzer) Reparse(parser *tree_sitter.Parser, oldTree *tree_sitter.Tree, content []byte) *tree_sitter.Tree {
	return parser.Parse(content, oldTree)
}
