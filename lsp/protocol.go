package lsp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type DocumentURI string

type LanguageKind string

type LSPAny = any

func (uri DocumentURI) Path() (string, error) {
	if !strings.HasPrefix(string(uri), "file://") {
		return "", fmt.Errorf("URI %q must start with file://", uri)
	}
	return filepath.FromSlash(string(uri)[7:]), nil
}

func URIFromPath(path string) DocumentURI {
	if path == "" {
		return ""
	}
	return DocumentURI("file://" + filepath.ToSlash(path))
}

// UnmarshalJSON unmarshals msg into the variable pointed to by v.
// In JSONRPC, optional messages may be "null", in which case it is a no-op.
func UnmarshalJSON(msg json.RawMessage, v any) error {
	if len(msg) == 0 || bytes.Equal(msg, []byte("null")) {
		return nil
	}
	return json.Unmarshal(msg, v)
}

// ErrNoConnection is returned by requests issued before the initialize
// handshake has produced a live connection. Callers are expected to fail
// fast on it rather than queue work.
var ErrNoConnection = errors.New("no connection to the language server")

// A position in a text document expressed as zero-based line and character
// offset. The meaning of the character offset depends on the position
// encoding negotiated for the session.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// A range in a text document. The end position is exclusive.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Location struct {
	URI   DocumentURI `json:"uri"`
	Range Range       `json:"range"`
}

type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// PositionEncodingKind describes the character offset unit used by protocol
// positions. Negotiated once during initialize and fixed for the session.
type PositionEncodingKind string

const (
	PositionEncodingUTF8  PositionEncodingKind = "utf-8"
	PositionEncodingUTF16 PositionEncodingKind = "utf-16"
	PositionEncodingUTF32 PositionEncodingKind = "utf-32"
)
