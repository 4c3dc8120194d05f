package parser

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corymhall/tsedit/lsp"
	"github.com/corymhall/tsedit/text"
)

// declarationKinds maps declaration node kinds to protocol symbol kinds.
// Kept as data rather than conditionals so the mapping is testable and easy
// to change. Class declarations are reported as the generic Variable kind;
// that matches the behavior this editor has always shipped (see DESIGN.md)
// and stays until confirmed otherwise.
var declarationKinds = map[string]lsp.SymbolKind{
	"function_declaration": lsp.SymbolKindFunction,
	"lexical_declaration":  lsp.SymbolKindVariable,
	"variable_declaration": lsp.SymbolKindVariable,
	"class_declaration":    lsp.SymbolKindVariable,
}

// ExtractSymbols runs the declaration query against the root node and
// returns a flat symbol list in document order of matches. A nil tree
// yields no symbols. Ranges are expressed in the supplied position
// encoding.
func (a *Analyzer) ExtractSymbols(tree *tree_sitter.Tree, content []byte, uri lsp.DocumentURI, enc text.Encoding) []lsp.SymbolInformation {
	if tree == nil {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	names := a.query.CaptureNames()

	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()
	matches := cursor.Matches(a.query, tree.RootNode(), content)

	var symbols []lsp.SymbolInformation
	for {
		match := matches.Next()
		if match == nil {
			break
		}
		var declaration, identifier *tree_sitter.Node
		declKind := ""
		for i := range match.Captures {
			capture := &match.Captures[i]
			name := names[capture.Index]
			if name == "identifier" {
				identifier = &capture.Node
			} else {
				declaration = &capture.Node
				declKind = name
			}
		}
		if declaration == nil || identifier == nil {
			continue
		}
		kind, ok := declarationKinds[declKind]
		if !ok {
			continue
		}
		r := declaration.Range()
		symbols = append(symbols, lsp.SymbolInformation{
			Name: identifier.Utf8Text(content),
			Kind: kind,
			Location: lsp.Location{
				URI: uri,
				Range: lsp.Range{
					Start: pointPosition(lines, r.StartPoint, enc),
					End:   pointPosition(lines, r.EndPoint, enc),
				},
			},
		})
	}
	return symbols
}

// pointPosition converts a tree-sitter point (row, byte column) to a
// protocol position in the session's encoding.
func pointPosition(lines []string, pt tree_sitter.Point, enc text.Encoding) lsp.Position {
	row := int(pt.Row)
	if row >= len(lines) {
		return lsp.Position{Line: uint32(pt.Row)}
	}
	line := lines[row]
	byteCol := min(int(pt.Column), len(line))
	col := text.RuneLen(line[:byteCol])
	return lsp.Position{Line: uint32(pt.Row), Character: enc.ColumnUnits(line, col)}
}
