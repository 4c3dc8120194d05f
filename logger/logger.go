// Package logger manages the editor's log file. Because the terminal is in
// raw mode while the editor runs, nothing may write to stdout/stderr; all
// diagnostics go to the file sink, including log messages forwarded by the
// language server.
package logger

import (
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/corymhall/tsedit/lsp"
)

var ProgramLevel = new(slog.LevelVar)

var (
	startLogSenderOnce sync.Once
	logQueue           = make(chan func(), 100) // big enough for a large transient burst
)

// New opens (truncating) the log file and returns a logger writing to it.
func New(filename string) (*log.Logger, error) {
	logfile, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o666)
	if err != nil {
		return nil, err
	}
	return log.New(logfile, "[tsedit]", log.Ldate|log.Ltime|log.Lshortfile), nil
}

// Forward queues a server-sent window/logMessage onto the file log without
// blocking the connection's read loop.
func Forward(logger *log.Logger, params *lsp.LogMessageParams) {
	startLogSenderOnce.Do(func() {
		go func() {
			for fn := range logQueue {
				fn()
			}
		}()
	})
	msg := params.Message
	level := ConvertLevel(params.Type)
	logQueue <- func() { logger.Printf("server %s: %s", level, msg) }
}

// ConvertLevel maps protocol message types onto slog levels.
func ConvertLevel(mt lsp.MessageType) slog.Level {
	switch mt {
	case lsp.MessageTypeError:
		return slog.LevelError
	case lsp.MessageTypeWarning:
		return slog.LevelWarn
	case lsp.MessageTypeInfo:
		return slog.LevelInfo
	case lsp.MessageTypeDebug:
		return slog.LevelDebug
	default:
		return slog.LevelDebug
	}
}
