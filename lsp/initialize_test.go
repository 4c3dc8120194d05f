package lsp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextDocumentSyncOptionsBareKind(t *testing.T) {
	var opts TextDocumentSyncOptions
	require.NoError(t, json.Unmarshal([]byte(`2`), &opts))
	require.Equal(t, TextDocumentSyncOptions{OpenClose: true, Change: SyncIncremental}, opts)
}

func TestTextDocumentSyncOptionsObject(t *testing.T) {
	var opts TextDocumentSyncOptions
	require.NoError(t, json.Unmarshal([]byte(`{"openClose":true,"change":1}`), &opts))
	require.Equal(t, TextDocumentSyncOptions{OpenClose: true, Change: SyncFull}, opts)
}

// A realistic initialize response shape, the way typescript-language-server
// reports it.
func TestServerCapabilitiesDecode(t *testing.T) {
	data := []byte(`{
		"capabilities": {
			"positionEncoding": "utf-16",
			"textDocumentSync": 2,
			"completionProvider": {
				"triggerCharacters": [".", "\"", "'"],
				"resolveProvider": true
			},
			"documentSymbolProvider": true
		},
		"serverInfo": {"name": "typescript-language-server", "version": "4.0.0"}
	}`)
	var result InitializeResult
	require.NoError(t, json.Unmarshal(data, &result))
	require.Equal(t, PositionEncodingUTF16, result.Capabilities.PositionEncoding)
	require.NotNil(t, result.Capabilities.TextDocumentSync)
	require.Equal(t, SyncIncremental, result.Capabilities.TextDocumentSync.Change)
	require.NotNil(t, result.Capabilities.CompletionProvider)
	require.Equal(t, []string{".", "\"", "'"}, result.Capabilities.CompletionProvider.TriggerCharacters)
	require.True(t, result.Capabilities.DocumentSymbol)
	require.Equal(t, "typescript-language-server", result.ServerInfo.Name)
}

func TestInitializeParamsEncode(t *testing.T) {
	rootURI := DocumentURI("file:///work")
	params := InitializeParams{
		ProcessID: 42,
		RootURI:   &rootURI,
		Capabilities: ClientCapabilities{
			General: &GeneralClientCapabilities{
				PositionEncodings: []PositionEncodingKind{
					PositionEncodingUTF8,
					PositionEncodingUTF16,
					PositionEncodingUTF32,
				},
			},
		},
	}
	data, err := json.Marshal(&params)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"processId": 42,
		"rootUri": "file:///work",
		"capabilities": {
			"general": {"positionEncodings": ["utf-8", "utf-16", "utf-32"]}
		}
	}`, string(data))
}
