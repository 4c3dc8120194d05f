package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	rdebug "runtime/debug"
	"strings"

	"github.com/gdamore/tcell/v2"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/corymhall/tsedit/editor"
	"github.com/corymhall/tsedit/logger"
	"github.com/corymhall/tsedit/lsp"
	"github.com/corymhall/tsedit/parser"
	"github.com/corymhall/tsedit/rpc"
	"github.com/corymhall/tsedit/session"
	"github.com/corymhall/tsedit/tui"
)

func main() {
	defer panicHandler()
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	logPath := flag.String("log", filepath.Join(os.TempDir(), "tsedit.log"), "editor log file")
	serverCmd := flag.String("server", "typescript-language-server", "language server executable")
	flag.Parse()

	logg, err := logger.New(*logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", *logPath, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logg.Writer(), &slog.HandlerOptions{
		Level: logger.ProgramLevel,
	})))

	path := flag.Arg(0)
	if path == "" {
		path = filepath.Join(os.TempDir(), "scratch.ts")
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return err
	}
	initial := ""
	if data, err := os.ReadFile(path); err == nil {
		initial = strings.ReplaceAll(string(data), "\r\n", "\n")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn, proc, err := startServer(ctx, logg, *serverCmd)
	if err != nil {
		return err
	}
	defer func() {
		// Shutdown and exit have already been sent by this point; cancel
		// kills a server that ignored them so Wait cannot hang.
		cancel()
		if err := proc.Wait(); err != nil {
			logg.Printf("language server exited: %v", err)
		}
	}()

	// Messages arriving before the app exists buffer in the relay.
	relay := make(chan any, 64)
	client := tui.NewClient(logg, func(msg any) { relay <- msg })
	go conn.Run(ctx, lsp.ClientHandler(client, rpc.MethodNotFound))

	server := lsp.ServerDispatcher(conn)
	// Every context derived from here on reaches the live proxy; anything
	// else falls back to the fail-fast NoServer stand-in.
	ctx = lsp.WithServer(ctx, server)
	result, err := server.Initialize(ctx, initializeParams(filepath.Dir(path)))
	if err != nil {
		return fmt.Errorf("initialize failed: %w", err)
	}
	caps := editor.CapabilitiesFrom(result.Capabilities)
	logg.Printf("session configuration: encoding=%s incremental=%v triggers=%v",
		caps.Encoding, caps.Incremental, caps.TriggerCharacters)
	if err := server.Initialized(ctx, &lsp.InitializedParams{}); err != nil {
		return fmt.Errorf("initialized failed: %w", err)
	}
	defer func() {
		if err := server.Shutdown(ctx); err != nil {
			logg.Printf("shutdown failed: %v", err)
		}
		if err := server.Exit(ctx); err != nil {
			logg.Printf("exit failed: %v", err)
		}
	}()

	analyzer, err := parser.NewAnalyzer(tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()))
	if err != nil {
		return err
	}
	defer analyzer.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	app := tui.NewApp(screen, session.NewStore(), analyzer, caps, lsp.URIFromPath(path))
	go func() {
		for msg := range relay {
			app.Post(msg)
		}
	}()
	if err := app.Open(ctx, initial); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return app.Run(ctx)
}

// startServer spawns the language server subprocess and wires its stdio into
// a framed connection. stderr goes to a side file that is tailed into the
// editor log so server crashes stay diagnosable.
func startServer(ctx context.Context, logg *log.Logger, command string) (rpc.Conn, *exec.Cmd, error) {
	proc := exec.CommandContext(ctx, command, "--stdio")
	stdin, err := proc.StdinPipe()
	if err != nil {
		return nil, nil, err
	}
	stdout, err := proc.StdoutPipe()
	if err != nil {
		return nil, nil, err
	}
	stderrPath := filepath.Join(os.TempDir(), "tsedit-server-stderr.log")
	stderr, err := os.OpenFile(stderrPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o666)
	if err != nil {
		return nil, nil, err
	}
	proc.Stderr = stderr
	if err := proc.Start(); err != nil {
		return nil, nil, fmt.Errorf("failed to start %s: %w", command, err)
	}
	if err := tailServerLog(ctx, logg, stderrPath); err != nil {
		logg.Printf("not tailing server stderr: %v", err)
	}
	stream := rpc.NewHeaderStream(stdout, stdin)
	return rpc.NewConn(stream, logg), proc, nil
}

func initializeParams(root string) *lsp.InitializeParams {
	rootURI := lsp.URIFromPath(root)
	return &lsp.InitializeParams{
		ProcessID: int32(os.Getpid()),
		ClientInfo: &lsp.ClientInfo{
			Name:    "tsedit",
			Version: "0.0.0", // TODO: stamp from the release pipeline
		},
		RootURI: &rootURI,
		Capabilities: lsp.ClientCapabilities{
			General: &lsp.GeneralClientCapabilities{
				PositionEncodings: []lsp.PositionEncodingKind{
					lsp.PositionEncodingUTF8,
					lsp.PositionEncodingUTF16,
					lsp.PositionEncodingUTF32,
				},
			},
			TextDocument: &lsp.TextDocumentClientCapabilities{
				Synchronization: &lsp.TextDocumentSyncClientCapabilities{
					DynamicRegistration: true,
				},
				Completion: &lsp.CompletionClientCapabilities{
					ContextSupport: true,
				},
				DocumentSymbol: &lsp.DocumentSymbolClientCapabilities{
					DynamicRegistration:               true,
					HierarchicalDocumentSymbolSupport: false,
					SymbolKind: &lsp.SymbolKindCapability{
						ValueSet: []lsp.SymbolKind{
							lsp.SymbolKindFile,
							lsp.SymbolKindModule,
							lsp.SymbolKindNamespace,
							lsp.SymbolKindPackage,
							lsp.SymbolKindClass,
							lsp.SymbolKindMethod,
							lsp.SymbolKindProperty,
							lsp.SymbolKindField,
							lsp.SymbolKindConstructor,
							lsp.SymbolKindEnum,
							lsp.SymbolKindInterface,
							lsp.SymbolKindFunction,
							lsp.SymbolKindVariable,
							lsp.SymbolKindConstant,
						},
					},
				},
			},
		},
	}
}

func panicHandler() {
	if panicPayload := recover(); panicPayload != nil {
		stack := string(rdebug.Stack())
		fmt.Fprintln(os.Stderr, "================================================================================")
		fmt.Fprintln(os.Stderr, "tsedit encountered a fatal error. This is a bug!")
		fmt.Fprintln(os.Stderr, "We would appreciate a report: https://github.com/corymhall/tsedit/issues/")
		fmt.Fprintln(os.Stderr, "Please provide all of the below text in your report.")
		fmt.Fprintln(os.Stderr, "================================================================================")
		fmt.Fprintf(os.Stderr, "tsedit Version:       %s\n", "0.0.0")
		fmt.Fprintf(os.Stderr, "Go Version:           %s\n", runtime.Version())
		fmt.Fprintf(os.Stderr, "Go Compiler:          %s\n", runtime.Compiler)
		fmt.Fprintf(os.Stderr, "Architecture:         %s\n", runtime.GOARCH)
		fmt.Fprintf(os.Stderr, "Operating System:     %s\n", runtime.GOOS)
		fmt.Fprintf(os.Stderr, "Panic:                %s\n\n", panicPayload)
		fmt.Fprintln(os.Stderr, stack)
		os.Exit(1)
	}
}
