package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corymhall/tsedit/lsp"
	"github.com/corymhall/tsedit/text"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

const testURI = lsp.DocumentURI("file:///tmp/doc.ts")

func openDoc(t *testing.T, s *Store, uri lsp.DocumentURI, content string) {
	t.Helper()
	require.NoError(t, s.Open(uri, text.NewRope(content), nil, nil))
}

func TestOpenClose(t *testing.T) {
	s := NewStore()
	openDoc(t, s, testURI, "let i = 0;")
	require.Equal(t, 1, s.Len())

	err := s.Open(testURI, text.NewRope(""), nil, nil)
	var dup *AlreadyOpenError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, testURI, dup.URI)

	rope, err := s.Close(testURI)
	require.NoError(t, err)
	require.Equal(t, "let i = 0;", rope.String())
	require.Equal(t, 0, s.Len())

	_, err = s.Close(testURI)
	var notFound *ResourceNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, KindDocument, notFound.Kind)
}

func TestCloseRemovesAllResources(t *testing.T) {
	s := NewStore()
	openDoc(t, s, testURI, "")
	_, err := s.Close(testURI)
	require.NoError(t, err)

	err = s.WithText(testURI, func(*text.Rope) error { return nil })
	var notFound *ResourceNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, KindDocument, notFound.Kind)

	err = s.WithParser(testURI, func(*tree_sitter.Parser) error { return nil })
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, KindParser, notFound.Kind)

	err = s.WithTree(testURI, func(*tree_sitter.Tree) error { return nil })
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, KindTree, notFound.Kind)
}

func TestErrorMessages(t *testing.T) {
	err := &ResourceNotFoundError{Kind: KindTree, URI: testURI}
	require.Equal(t, "session resource not found, kind = Tree, uri = file:///tmp/doc.ts", err.Error())
	require.Equal(t, "document already open: file:///tmp/doc.ts", (&AlreadyOpenError{URI: testURI}).Error())
}

func TestVersions(t *testing.T) {
	s := NewStore()
	openDoc(t, s, testURI, "")

	// Version 0 belongs to the open notification.
	v, err := s.Version(testURI)
	require.NoError(t, err)
	require.Equal(t, int32(0), v)

	for want := int32(1); want <= 3; want++ {
		v, err := s.NextVersion(testURI)
		require.NoError(t, err)
		require.Equal(t, want, v)
	}

	_, err = s.NextVersion(lsp.DocumentURI("file:///absent.ts"))
	var notFound *ResourceNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestVersionsConcurrent(t *testing.T) {
	s := NewStore()
	openDoc(t, s, testURI, "")

	const workers = 8
	const perWorker = 100
	var mu sync.Mutex
	seen := make(map[int32]bool, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				v, err := s.NextVersion(testURI)
				if err != nil {
					t.Error(err)
					return
				}
				mu.Lock()
				if seen[v] {
					t.Errorf("version %d issued twice", v)
				}
				seen[v] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	v, err := s.Version(testURI)
	require.NoError(t, err)
	require.Equal(t, int32(workers*perWorker), v)
	require.Len(t, seen, workers*perWorker)
}

func TestWithMutText(t *testing.T) {
	s := NewStore()
	openDoc(t, s, testURI, "abc")

	require.NoError(t, s.WithMutText(testURI, func(r *text.Rope) error {
		r.Insert(3, "def")
		return nil
	}))
	require.NoError(t, s.WithText(testURI, func(r *text.Rope) error {
		require.Equal(t, "abcdef", r.String())
		return nil
	}))

	require.NoError(t, s.SetText(testURI, text.NewRope("xyz")))
	require.NoError(t, s.WithText(testURI, func(r *text.Rope) error {
		require.Equal(t, "xyz", r.String())
		return nil
	}))
}

func TestCallbackErrorsPropagate(t *testing.T) {
	s := NewStore()
	openDoc(t, s, testURI, "")
	sentinel := errors.New("boom")
	require.ErrorIs(t, s.WithText(testURI, func(*text.Rope) error { return sentinel }), sentinel)
	require.ErrorIs(t, s.WithMutText(testURI, func(*text.Rope) error { return sentinel }), sentinel)
}

func TestIndependentDocuments(t *testing.T) {
	s := NewStore()
	a := lsp.DocumentURI("file:///a.ts")
	b := lsp.DocumentURI("file:///b.ts")
	openDoc(t, s, a, "aaa")
	openDoc(t, s, b, "bbb")
	require.Equal(t, 2, s.Len())

	_, err := s.NextVersion(a)
	require.NoError(t, err)
	v, err := s.Version(b)
	require.NoError(t, err)
	require.Equal(t, int32(0), v)

	_, err = s.Close(a)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	require.NoError(t, s.WithText(b, func(*text.Rope) error { return nil }))
}
