package rpc

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderStreamRoundTrip(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	stream := NewHeaderStream(&buf, &buf)

	notify, err := NewNotification("textDocument/didOpen", map[string]any{"uri": "file:///a.ts"})
	require.NoError(t, err)
	n, err := stream.Write(ctx, notify)
	require.NoError(t, err)
	require.Greater(t, n, int64(0))
	require.True(t, strings.HasPrefix(buf.String(), "Content-Length: "))

	call, err := NewCall(ID{number: 1}, "initialize", nil)
	require.NoError(t, err)
	_, err = stream.Write(ctx, call)
	require.NoError(t, err)

	msg, _, err := stream.Read(ctx)
	require.NoError(t, err)
	got, ok := msg.(*Notification)
	require.True(t, ok)
	require.Equal(t, "textDocument/didOpen", got.Method())

	msg, _, err = stream.Read(ctx)
	require.NoError(t, err)
	gotCall, ok := msg.(*Call)
	require.True(t, ok)
	require.Equal(t, "initialize", gotCall.Method())
	require.Equal(t, ID{number: 1}, gotCall.ID())
}

func TestHeaderStreamIgnoresExtraHeaders(t *testing.T) {
	payload := `{"jsonrpc":"2.0","method":"initialized","params":{}}`
	raw := "Content-Type: application/vscode-jsonrpc; charset=utf-8\r\n" +
		"Content-Length: " + strconv.Itoa(len(payload)) + "\r\n" +
		"\r\n" + payload
	stream := NewHeaderStream(strings.NewReader(raw), nil)
	msg, _, err := stream.Read(context.Background())
	require.NoError(t, err)
	notify, ok := msg.(*Notification)
	require.True(t, ok)
	require.Equal(t, "initialized", notify.Method())
}

func TestHeaderStreamMissingContentLength(t *testing.T) {
	stream := NewHeaderStream(strings.NewReader("\r\n"), nil)
	_, _, err := stream.Read(context.Background())
	require.ErrorContains(t, err, "missing Content-Length")
}

func TestHeaderStreamInvalidHeader(t *testing.T) {
	stream := NewHeaderStream(strings.NewReader("garbage\r\n\r\n"), nil)
	_, _, err := stream.Read(context.Background())
	require.ErrorContains(t, err, "invalid header line")
}
