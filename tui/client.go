package tui

import (
	"context"
	"log"

	"github.com/corymhall/tsedit/logger"
	"github.com/corymhall/tsedit/lsp"
)

// client receives server-initiated traffic from the connection's read loop
// and forwards it into the update loop as messages. Handlers must return
// quickly; anything that touches editor state goes through Post.
type client struct {
	log  *log.Logger
	post func(any)
}

// NewClient builds the editor's lsp.Client. post delivers a message into the
// update loop and may apply backpressure, never reorder.
func NewClient(logg *log.Logger, post func(any)) lsp.Client {
	return &client{log: logg, post: post}
}

func (c *client) PublishDiagnostics(ctx context.Context, params *lsp.PublishDiagnosticsParams) error {
	c.post(diagnosticsMsg{params: params})
	return nil
}

func (c *client) ShowMessage(ctx context.Context, params *lsp.ShowMessageParams) error {
	c.post(statusMsg{text: params.Message})
	return nil
}

func (c *client) LogMessage(ctx context.Context, params *lsp.LogMessageParams) error {
	logger.Forward(c.log, params)
	return nil
}

// RegisterCapability acknowledges dynamic registrations without acting on
// them; the session configuration is fixed at handshake.
func (c *client) RegisterCapability(ctx context.Context, params *lsp.RegistrationParams) error {
	for _, reg := range params.Registrations {
		c.log.Printf("accepting capability registration: %s", reg.Method)
	}
	return nil
}
