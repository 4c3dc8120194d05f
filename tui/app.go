// Package tui runs the terminal editor: a single update loop that owns the
// cursor, the completion menu and the screen, consuming one message at a
// time from terminal events and background task results.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/corymhall/tsedit/debug"
	"github.com/corymhall/tsedit/editor"
	"github.com/corymhall/tsedit/lsp"
	"github.com/corymhall/tsedit/parser"
	"github.com/corymhall/tsedit/session"
	"github.com/corymhall/tsedit/text"
	"github.com/corymhall/tsedit/xcontext"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Messages consumed by the update loop. Background tasks produce at most one
// message each; nothing outside the loop mutates editor state.
type (
	termEventMsg struct{ event tcell.Event }

	completionsMsg struct {
		tag   editor.CompletionSession
		items []lsp.CompletionItem
	}

	diagnosticsMsg struct{ params *lsp.PublishDiagnosticsParams }

	statusMsg struct{ text string }
)

// App wires the session store and the screen together. The language server
// proxy is carried on the context (lsp.WithServer); contexts that never saw
// the handshake fail fast with ErrNoConnection. All fields are owned by the
// Run goroutine once Run starts; concurrent producers only touch the message
// channel via Post.
type App struct {
	screen     tcell.Screen
	store      *session.Store
	analyzer   *parser.Analyzer
	caps       editor.Capabilities
	translator *editor.Translator
	policy     *editor.TriggerPolicy

	uri  lsp.DocumentURI
	area editor.TextArea
	menu *MenuState
	// inflight tags the most recent completion request; responses that no
	// longer match it are stale and dropped.
	inflight editor.CompletionSession
	diags    []lsp.Diagnostic
	status   string

	width  int
	height int
	scroll int

	msgs chan any
}

func NewApp(screen tcell.Screen, store *session.Store, analyzer *parser.Analyzer, caps editor.Capabilities, uri lsp.DocumentURI) *App {
	return &App{
		screen:     screen,
		store:      store,
		analyzer:   analyzer,
		caps:       caps,
		translator: editor.NewTranslator(caps),
		policy:     editor.NewTriggerPolicy(caps.TriggerCharacters),
		uri:        uri,
		menu:       NewMenuState(),
		msgs:       make(chan any, 64),
	}
}

// Post delivers a message into the update loop. It blocks when the loop is
// behind; producers tolerate the backpressure and delivery order is kept.
func (a *App) Post(msg any) {
	a.msgs <- msg
}

// Open registers the document locally and announces it to the server. The
// didOpen notification carries version 0; every later change gets a fresh,
// strictly larger version.
func (a *App) Open(ctx context.Context, initial string) error {
	ctx, done := debug.Start(ctx, "Open", "uri", a.uri)
	defer done()

	rope := text.NewRope(initial)
	docParser, err := a.analyzer.NewDocumentParser()
	if err != nil {
		return err
	}
	tree := a.analyzer.ParseFull(docParser, rope.Bytes())
	if tree == nil {
		debug.Warning.Log(ctx, "initial parse produced no tree; structural queries degrade")
	}
	if err := a.store.Open(a.uri, rope, docParser, tree); err != nil {
		docParser.Close()
		if tree != nil {
			tree.Close()
		}
		return err
	}
	version, err := a.store.Version(a.uri)
	if err != nil {
		return err
	}
	return lsp.GetServer(ctx).DidOpen(ctx, &lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{
			URI:        a.uri,
			LanguageID: "typescript",
			Version:    version,
			Text:       initial,
		},
	})
}

// Run is the update loop. It returns after Esc, after the context is
// canceled, or when the terminal event stream ends; the document is closed
// on the way out.
func (a *App) Run(ctx context.Context) error {
	a.width, a.height = a.screen.Size()

	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	a.draw()
	for {
		var msg any
		select {
		case <-ctx.Done():
			a.close(xcontext.Detach(ctx))
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				a.close(ctx)
				return nil
			}
			msg = termEventMsg{event: ev}
		case m := <-a.msgs:
			msg = m
		}
		quit, err := a.update(ctx, msg)
		if err != nil {
			a.close(ctx)
			return err
		}
		if quit {
			a.close(ctx)
			return nil
		}
		a.draw()
	}
}

func (a *App) update(ctx context.Context, msg any) (quit bool, err error) {
	switch msg := msg.(type) {
	case termEventMsg:
		switch ev := msg.event.(type) {
		case *tcell.EventKey:
			return a.handleKey(ctx, ev)
		case *tcell.EventResize:
			// A resize only changes geometry; the document is untouched.
			a.width, a.height = ev.Size()
			a.screen.Sync()
		}
	case completionsMsg:
		if a.inflight.Matches(msg.tag) {
			a.menu.SetItems(msg.items)
		} else {
			debug.Trace.Log(ctx, "dropping stale completion response",
				"prefix", msg.tag.Prefix, "version", msg.tag.Version)
		}
	case diagnosticsMsg:
		if msg.params.URI == a.uri {
			a.diags = msg.params.Diagnostics
		}
	case statusMsg:
		a.status = msg.text
	}
	return false, nil
}

func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyEscape:
		return true, nil
	case tcell.KeyTab:
		if !a.menu.IsEmpty() {
			return false, a.acceptCompletion(ctx)
		}
		return false, a.applyEdit(ctx, func(rope *text.Rope) (editor.Edit, bool) {
			return a.area.InsertRune(rope, '\t'), true
		})
	case tcell.KeyDown, tcell.KeyCtrlN:
		if !a.menu.IsEmpty() {
			a.menu.Next()
			return false, nil
		}
		return false, a.moveCursor(ctx, (*editor.TextArea).MoveDown)
	case tcell.KeyUp, tcell.KeyCtrlP:
		if !a.menu.IsEmpty() {
			a.menu.Previous()
			return false, nil
		}
		return false, a.moveCursor(ctx, (*editor.TextArea).MoveUp)
	case tcell.KeyCtrlO:
		return false, a.jumpToSymbol(ctx)
	case tcell.KeyLeft:
		return false, a.moveCursor(ctx, (*editor.TextArea).MoveLeft)
	case tcell.KeyRight:
		return false, a.moveCursor(ctx, (*editor.TextArea).MoveRight)
	case tcell.KeyEnter:
		return false, a.applyEdit(ctx, func(rope *text.Rope) (editor.Edit, bool) {
			return a.area.InsertRune(rope, '\n'), true
		})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return false, a.applyEdit(ctx, func(rope *text.Rope) (editor.Edit, bool) {
			return a.area.Backspace(rope)
		})
	case tcell.KeyRune:
		r := ev.Rune()
		return false, a.applyEdit(ctx, func(rope *text.Rope) (editor.Edit, bool) {
			return a.area.InsertRune(rope, r), true
		})
	}
	return false, nil
}

// moveCursor runs a plain cursor motion and re-evaluates the trigger policy
// at the new location.
func (a *App) moveCursor(ctx context.Context, move func(*editor.TextArea, *text.Rope) bool) error {
	var moved bool
	err := a.store.WithText(a.uri, func(rope *text.Rope) error {
		moved = move(&a.area, rope)
		return nil
	})
	if err != nil {
		return err
	}
	if moved {
		a.maybeComplete(ctx)
	}
	return nil
}

// applyEdit mutates the document under the store's text lock, then - outside
// the lock - sends the change event in version order, reparses, and
// re-evaluates completion gating.
func (a *App) applyEdit(ctx context.Context, apply func(*text.Rope) (editor.Edit, bool)) error {
	var (
		changed bool
		event   lsp.TextDocumentContentChangeEvent
	)
	err := a.store.WithMutText(a.uri, func(rope *text.Rope) error {
		var edit editor.Edit
		edit, changed = apply(rope)
		if changed {
			event = a.translator.ChangeEvent(rope, edit)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if changed {
		version, err := a.store.NextVersion(a.uri)
		if err != nil {
			return err
		}
		// Synchronous send: versions must hit the wire in increasing order,
		// and only the loop issuing them serially guarantees that.
		err = lsp.GetServer(ctx).DidChange(ctx, &lsp.DidChangeTextDocumentParams{
			TextDocument: lsp.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: a.uri},
				Version:                version,
			},
			ContentChanges: []lsp.TextDocumentContentChangeEvent{event},
		})
		if err != nil {
			return err
		}
		if err := a.reparse(ctx); err != nil {
			return err
		}
	}
	a.maybeComplete(ctx)
	return nil
}

// reparse re-runs the grammar over the current text, passing the previous
// tree as a reuse hint, and swaps the result into the store.
func (a *App) reparse(ctx context.Context) error {
	var content []byte
	if err := a.store.WithText(a.uri, func(rope *text.Rope) error {
		content = rope.Bytes()
		return nil
	}); err != nil {
		return err
	}
	var newTree *tree_sitter.Tree
	err := a.store.WithParser(a.uri, func(p *tree_sitter.Parser) error {
		return a.store.WithTree(a.uri, func(old *tree_sitter.Tree) error {
			newTree = a.analyzer.Reparse(p, old, content)
			return nil
		})
	})
	if err != nil {
		return err
	}
	if newTree == nil {
		debug.Warning.Log(ctx, "reparse produced no tree; keeping previous one")
		return nil
	}
	return a.store.SetTree(a.uri, newTree)
}

// maybeComplete evaluates the trigger policy at the cursor. Suppressed
// clears the menu and forgets the in-flight tag; Pending issues exactly one
// background completion request tagged with the current document state.
func (a *App) maybeComplete(ctx context.Context) {
	cursor := a.area.Cursor()
	var (
		decision  editor.TriggerDecision
		prefix    string
		triggered bool
		trigChar  string
		position  lsp.Position
	)
	err := a.store.WithText(a.uri, func(rope *text.Rope) error {
		line := rope.Line(cursor.Row)
		decision, prefix, triggered = a.policy.Evaluate(line, cursor.Col)
		if triggered {
			runes := []rune(line)
			trigChar = string(runes[cursor.Col-1])
		}
		position = lsp.Position{
			Line:      uint32(cursor.Row),
			Character: a.caps.Encoding.ColumnUnits(line, cursor.Col),
		}
		return nil
	})
	if err != nil {
		debug.LogError(ctx, "completion gate", err)
		return
	}
	if decision == editor.TriggerSuppressed {
		a.menu.Clear()
		a.inflight = editor.CompletionSession{}
		return
	}
	version, err := a.store.Version(a.uri)
	if err != nil {
		debug.LogError(ctx, "completion gate", err)
		return
	}
	tag := editor.CompletionSession{
		URI:       a.uri,
		Version:   version,
		Prefix:    prefix,
		Position:  position,
		Triggered: triggered,
	}
	a.inflight = tag

	cctx := &lsp.CompletionContext{TriggerKind: lsp.CompletionTriggeredInvoked}
	if triggered {
		cctx = &lsp.CompletionContext{
			TriggerKind:      lsp.CompletionTriggeredCharacter,
			TriggerCharacter: trigChar,
		}
	}
	params := &lsp.CompletionParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: a.uri},
			Position:     tag.Position,
		},
		Context: cctx,
	}
	// The response outlives whatever keystroke started it; staleness is
	// handled by tag comparison on arrival, never by canceling the request.
	ctx = xcontext.Detach(ctx)
	go func() {
		resp, err := lsp.GetServer(ctx).Completion(ctx, params)
		if err != nil {
			debug.LogError(ctx, "completion request", err)
			a.Post(completionsMsg{tag: tag})
			return
		}
		a.Post(completionsMsg{
			tag:   tag,
			items: editor.FilterCompletions(resp.Items, tag.Prefix),
		})
	}()
}

// jumpToSymbol moves the cursor to the first declaration after the current
// line, cycling back to the top past the last one. Symbols come from the
// stored syntax tree, so a document without a tree reports none.
func (a *App) jumpToSymbol(ctx context.Context) error {
	var symbols []lsp.SymbolInformation
	err := a.store.WithText(a.uri, func(rope *text.Rope) error {
		content := rope.Bytes()
		return a.store.WithTree(a.uri, func(tree *tree_sitter.Tree) error {
			symbols = a.analyzer.ExtractSymbols(tree, content, a.uri, a.caps.Encoding)
			return nil
		})
	})
	if err != nil {
		return err
	}
	if len(symbols) == 0 {
		a.status = "no symbols"
		return nil
	}
	cursor := a.area.Cursor()
	target := symbols[0]
	for _, sym := range symbols {
		if int(sym.Location.Range.Start.Line) > cursor.Row {
			target = sym
			break
		}
	}
	err = a.store.WithText(a.uri, func(rope *text.Rope) error {
		row := int(target.Location.Range.Start.Line)
		col := a.caps.Encoding.ColumnFor(rope.Line(row), target.Location.Range.Start.Character)
		a.area.SetCursor(rope, text.Loc{Row: row, Col: col})
		return nil
	})
	if err != nil {
		return err
	}
	a.status = fmt.Sprintf("%s %s", target.Kind, target.Name)
	a.maybeComplete(ctx)
	return nil
}

// acceptCompletion inserts the highlighted candidate's remaining text at the
// cursor and dismisses the menu.
func (a *App) acceptCompletion(ctx context.Context) error {
	item, ok := a.menu.Selected()
	if !ok {
		return nil
	}
	insert := item.InsertText
	if insert == "" {
		insert = item.Label
	}
	insert = strings.TrimPrefix(insert, a.inflight.Prefix)
	a.menu.Clear()
	a.inflight = editor.CompletionSession{}
	if insert == "" {
		return nil
	}
	return a.applyEdit(ctx, func(rope *text.Rope) (editor.Edit, bool) {
		return a.area.InsertString(rope, insert)
	})
}

// close tears down the document: the store entries go away first so late
// responses fail soft, then the server hears didClose and the local
// diagnostics are reset to empty.
func (a *App) close(ctx context.Context) {
	if _, err := a.store.Close(a.uri); err != nil {
		var notFound *session.ResourceNotFoundError
		if !errors.As(err, &notFound) {
			debug.LogError(ctx, "closing document", err)
		}
	}
	if err := lsp.GetServer(ctx).DidClose(ctx, &lsp.DidCloseTextDocumentParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: a.uri},
	}); err != nil {
		debug.LogError(ctx, "didClose", err)
	}
	a.diags = nil
	a.menu.Clear()
}
