package session

import (
	"fmt"

	"github.com/corymhall/tsedit/lsp"
)

// ResourceKind names which of the three per-document resources a lookup
// missed. The distinction matters for diagnosing protocol-ordering bugs
// (a change arriving before open reports Document; a symbol query racing a
// close reports Tree).
type ResourceKind int

const (
	KindDocument ResourceKind = iota
	KindParser
	KindTree
)

func (k ResourceKind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindParser:
		return "Parser"
	case KindTree:
		return "Tree"
	}
	return fmt.Sprintf("(unknown resource kind: %d)", int(k))
}

// ResourceNotFoundError reports an access to a document that is not open.
// Always caller-recoverable: log it and drop the offending operation.
type ResourceNotFoundError struct {
	Kind ResourceKind
	URI  lsp.DocumentURI
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("session resource not found, kind = %s, uri = %s", e.Kind, e.URI)
}

// AlreadyOpenError reports a duplicate open, which is a programming error on
// the caller's side and is never silently ignored.
type AlreadyOpenError struct {
	URI lsp.DocumentURI
}

func (e *AlreadyOpenError) Error() string {
	return fmt.Sprintf("document already open: %s", e.URI)
}
