// Package editor turns keystrokes into document edits, edits into protocol
// change events, and cursor movement into completion requests.
package editor

import (
	"github.com/corymhall/tsedit/lsp"
	"github.com/corymhall/tsedit/text"
)

// Capabilities is the immutable session configuration distilled from the
// server's initialize response. It is established once at handshake and
// passed by value to every component that needs it; nothing reads it from
// ambient global state.
type Capabilities struct {
	// Encoding is the position encoding the server chose from our
	// preference list. All position math for the session uses it.
	Encoding text.Encoding
	// TriggerCharacters are the characters that warrant a completion
	// request regardless of prefix length.
	TriggerCharacters []string
	// Incremental is true when the server negotiated incremental document
	// sync; otherwise every change event carries the full text.
	Incremental bool
}

// CapabilitiesFrom fixes the session configuration from the server's
// declared capabilities. Servers that name no encoding get UTF-16, the
// protocol default.
func CapabilitiesFrom(caps lsp.ServerCapabilities) Capabilities {
	out := Capabilities{Encoding: text.EncodingUTF16}
	switch caps.PositionEncoding {
	case lsp.PositionEncodingUTF8:
		out.Encoding = text.EncodingUTF8
	case lsp.PositionEncodingUTF32:
		out.Encoding = text.EncodingUTF32
	}
	if caps.CompletionProvider != nil {
		out.TriggerCharacters = caps.CompletionProvider.TriggerCharacters
	}
	if caps.TextDocumentSync != nil && caps.TextDocumentSync.Change == lsp.SyncIncremental {
		out.Incremental = true
	}
	return out
}
