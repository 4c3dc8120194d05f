package parser

import (
	"testing"

	"github.com/hexops/autogold/v2"
	"github.com/stretchr/testify/require"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/corymhall/tsedit/lsp"
	"github.com/corymhall/tsedit/text"
)

const testURI = lsp.DocumentURI("file:///tmp/doc.ts")

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	lang := tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	analyzer, err := NewAnalyzer(lang)
	require.NoError(t, err)
	t.Cleanup(analyzer.Close)
	return analyzer
}

func parse(t *testing.T, a *Analyzer, content string) *tree_sitter.Tree {
	t.Helper()
	p, err := a.NewDocumentParser()
	require.NoError(t, err)
	t.Cleanup(p.Close)
	tree := a.ParseFull(p, []byte(content))
	require.NotNil(t, tree)
	t.Cleanup(tree.Close)
	return tree
}

func TestExtractSymbols(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	content := "let i = 0;"
	tree := parse(t, analyzer, content)

	symbols := analyzer.ExtractSymbols(tree, []byte(content), testURI, text.EncodingUTF16)
	autogold.Expect([]lsp.SymbolInformation{{
		Name: "i",
		Kind: lsp.SymbolKindVariable,
		Location: lsp.Location{
			URI: testURI,
			Range: lsp.Range{
				End: lsp.Position{Character: 10},
			},
		},
	}}).Equal(t, symbols)
}

// Declarations come back flat, in document order, with function and class
// forms classified the way the editor has always reported them.
func TestExtractSymbolsDocumentOrder(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	content := "let i = 0;\nfunction f(){}\nclass C {}\nvar z = 1;"
	tree := parse(t, analyzer, content)

	symbols := analyzer.ExtractSymbols(tree, []byte(content), testURI, text.EncodingUTF16)
	require.Len(t, symbols, 4)

	names := make([]string, len(symbols))
	kinds := make([]lsp.SymbolKind, len(symbols))
	for i, s := range symbols {
		names[i] = s.Name
		kinds[i] = s.Kind
		require.Equal(t, uint32(i), s.Location.Range.Start.Line)
	}
	require.Equal(t, []string{"i", "f", "C", "z"}, names)
	require.Equal(t, []lsp.SymbolKind{
		lsp.SymbolKindVariable,
		lsp.SymbolKindFunction,
		lsp.SymbolKindVariable, // class declarations report as Variable
		lsp.SymbolKindVariable,
	}, kinds)
}

func TestExtractSymbolsNilTree(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	require.Empty(t, analyzer.ExtractSymbols(nil, nil, testURI, text.EncodingUTF16))
}

func TestExtractSymbolsEncoding(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	// 𝔘 is one character: four bytes, two UTF-16 units.
	content := "let 𝔘x = 1;"
	tree := parse(t, analyzer, content)

	utf16 := analyzer.ExtractSymbols(tree, []byte(content), testURI, text.EncodingUTF16)
	require.Len(t, utf16, 1)
	require.Equal(t, "𝔘x", utf16[0].Name)
	require.Equal(t, uint32(12), utf16[0].Location.Range.End.Character)

	utf8 := analyzer.ExtractSymbols(tree, []byte(content), testURI, text.EncodingUTF8)
	require.Equal(t, uint32(14), utf8[0].Location.Range.End.Character)

	utf32 := analyzer.ExtractSymbols(tree, []byte(content), testURI, text.EncodingUTF32)
	require.Equal(t, uint32(11), utf32[0].Location.Range.End.Character)
}

func TestReparse(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	p, err := analyzer.NewDocumentParser()
	require.NoError(t, err)
	defer p.Close()

	before := "let i = 0;"
	oldTree := analyzer.ParseFull(p, []byte(before))
	require.NotNil(t, oldTree)
	defer oldTree.Close()
	require.Len(t, analyzer.ExtractSymbols(oldTree, []byte(before), testURI, text.EncodingUTF16), 1)

	after := before + "\nfunction f(){}"
	newTree := analyzer.Reparse(p, oldTree, []byte(after))
	require.NotNil(t, newTree)
	defer newTree.Close()

	symbols := analyzer.ExtractSymbols(newTree, []byte(after), testURI, text.EncodingUTF16)
	require.Len(t, symbols, 2)
	require.Equal(t, "i", symbols[0].Name)
	require.Equal(t, lsp.SymbolKindVariable, symbols[0].Kind)
	require.Equal(t, "f", symbols[1].Name)
	require.Equal(t, lsp.SymbolKindFunction, symbols[1].Kind)
}

func TestPointPosition(t *testing.T) {
	lines := []string{"let 𝔘x = 1;"}
	// Byte column 9 is just past "let 𝔘x": six characters, nine bytes.
	pt := tree_sitter.Point{Row: 0, Column: 9}
	require.Equal(t, lsp.Position{Line: 0, Character: 7}, pointPosition(lines, pt, text.EncodingUTF16))
	require.Equal(t, lsp.Position{Line: 0, Character: 9}, pointPosition(lines, pt, text.EncodingUTF8))
	require.Equal(t, lsp.Position{Line: 0, Character: 6}, pointPosition(lines, pt, text.EncodingUTF32))
	// Rows past the content keep the row and zero the column.
	require.Equal(t, lsp.Position{Line: 7}, pointPosition(lines, tree_sitter.Point{Row: 7, Column: 3}, text.EncodingUTF16))
}
