package lsp

import (
	"context"
	"errors"
)

type contextKey int

const (
	serverKey = contextKey(iota)
)

var (
	// RequestCancelledError should be used when a request is cancelled early.
	RequestCancelledError = errors.New("JSON RPC cancelled")
)

// WithServer stashes the language server proxy on the context so that
// background tasks can reach it without threading it through every call.
func WithServer(ctx context.Context, server Server) context.Context {
	return context.WithValue(ctx, serverKey, server)
}

// GetServer returns the stashed proxy, or a fail-fast NoServer proxy when
// none was attached yet.
func GetServer(ctx context.Context) Server {
	server, ok := ctx.Value(serverKey).(Server)
	if !ok {
		return NoServer()
	}
	return server
}
