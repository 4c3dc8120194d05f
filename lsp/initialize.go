package lsp

import "encoding/json"

type InitializeParams struct {
	ProcessID  int32        `json:"processId,omitempty"`
	ClientInfo *ClientInfo  `json:"clientInfo,omitempty"`
	RootURI    *DocumentURI `json:"rootUri"`
	// InitializationOptions is passed through to the server untouched.
	InitializationOptions LSPAny             `json:"initializationOptions,omitempty"`
	Capabilities          ClientCapabilities `json:"capabilities"`
}

type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ClientCapabilities struct {
	General      *GeneralClientCapabilities      `json:"general,omitempty"`
	TextDocument *TextDocumentClientCapabilities `json:"textDocument,omitempty"`
}

type GeneralClientCapabilities struct {
	// PositionEncodings is the preference list offered to the server. The
	// server picks exactly one and reports it in ServerCapabilities.
	PositionEncodings []PositionEncodingKind `json:"positionEncodings,omitempty"`
}

type TextDocumentClientCapabilities struct {
	Synchronization *TextDocumentSyncClientCapabilities `json:"synchronization,omitempty"`
	Completion      *CompletionClientCapabilities       `json:"completion,omitempty"`
	DocumentSymbol  *DocumentSymbolClientCapabilities   `json:"documentSymbol,omitempty"`
}

type TextDocumentSyncClientCapabilities struct {
	DynamicRegistration bool `json:"dynamicRegistration"`
	WillSave            bool `json:"willSave"`
	WillSaveWaitUntil   bool `json:"willSaveWaitUntil"`
	DidSave             bool `json:"didSave"`
}

type CompletionClientCapabilities struct {
	ContextSupport bool `json:"contextSupport,omitempty"`
}

type DocumentSymbolClientCapabilities struct {
	DynamicRegistration               bool                  `json:"dynamicRegistration"`
	HierarchicalDocumentSymbolSupport bool                  `json:"hierarchicalDocumentSymbolSupport"`
	SymbolKind                        *SymbolKindCapability `json:"symbolKind,omitempty"`
}

type SymbolKindCapability struct {
	ValueSet []SymbolKind `json:"valueSet,omitempty"`
}

type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ServerCapabilities struct {
	PositionEncoding   PositionEncodingKind     `json:"positionEncoding,omitempty"`
	TextDocumentSync   *TextDocumentSyncOptions `json:"textDocumentSync,omitempty"`
	CompletionProvider *CompletionOptions       `json:"completionProvider,omitempty"`
	DocumentSymbol     bool                     `json:"documentSymbolProvider,omitempty"`
}

type CompletionOptions struct {
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
	ResolveProvider   bool     `json:"resolveProvider,omitempty"`
}

type TextDocumentSyncKind int32

const (
	SyncNone        TextDocumentSyncKind = 0
	SyncFull        TextDocumentSyncKind = 1
	SyncIncremental TextDocumentSyncKind = 2
)

// TextDocumentSyncOptions is sent by servers either as a bare sync kind
// number or as a full options object; both decode into this struct.
type TextDocumentSyncOptions struct {
	OpenClose bool                 `json:"openClose,omitempty"`
	Change    TextDocumentSyncKind `json:"change,omitempty"`
}

func (o *TextDocumentSyncOptions) UnmarshalJSON(data []byte) error {
	var kind TextDocumentSyncKind
	if err := json.Unmarshal(data, &kind); err == nil {
		*o = TextDocumentSyncOptions{OpenClose: true, Change: kind}
		return nil
	}
	type plain TextDocumentSyncOptions
	var opts plain
	if err := json.Unmarshal(data, &opts); err != nil {
		return err
	}
	*o = TextDocumentSyncOptions(opts)
	return nil
}

type InitializedParams struct{}
