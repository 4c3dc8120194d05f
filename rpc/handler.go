package rpc

import (
	"context"
)

// Error codes defined by JSON-RPC 2.0 and the LSP extensions to it.
const (
	// CodeUnknownError should be used for all non coded errors.
	CodeUnknownError = int64(-32001)
	// CodeParseError is used when invalid JSON was received by the peer.
	CodeParseError = int64(-32700)
	// CodeInvalidRequest is used when the JSON sent is not a valid Request object.
	CodeInvalidRequest = int64(-32600)
	// CodeMethodNotFound should be returned by the handler when the method
	// does not exist / is not available.
	CodeMethodNotFound = int64(-32601)
	// CodeInvalidParams should be returned by the handler when method
	// parameter(s) were invalid.
	CodeInvalidParams = int64(-32602)
	// CodeInternalError is not currently returned but defined for completeness.
	CodeInternalError = int64(-32603)
	// CodeServerOverloaded is returned when a message was refused due to a
	// peer being temporarily unable to accept any new messages.
	CodeServerOverloaded = int64(-32000)
)

// Handler is invoked to handle incoming requests.
// The Replier sends a reply to the request and must be called exactly once.
type Handler func(ctx context.Context, reply Replier, req Request) error

// Replier is passed to handlers to allow them to reply to the request.
// If err is set then result will be ignored.
type Replier func(ctx context.Context, result any, err error) error

// MethodNotFound is a Handler that replies to all call requests with the
// standard method not found response.
// This should normally be the final handler in a chain.
func MethodNotFound(ctx context.Context, reply Replier, req Request) error {
	return reply(ctx, nil, NewError(CodeMethodNotFound, "method not found: "+req.Method()))
}
