package editor

import (
	"strings"

	"github.com/corymhall/tsedit/lsp"
	"github.com/corymhall/tsedit/text"
)

// lineTerminator is the canonical terminator sent on the wire for line
// splits, regardless of the rope's internal representation.
const lineTerminator = "\r\n"

// Translator maps applied edits to protocol change events. It always runs
// after the mutation, so every position is computed fresh against the new
// rope content; the protocol interprets the resulting range against the
// text as it was before the edit, which works out because the start
// position only ever spans the unchanged prefix.
//
// Translation is total over valid edits and cannot fail; the text area
// rejects out-of-range edits before they get here.
type Translator struct {
	caps Capabilities
}

func NewTranslator(caps Capabilities) *Translator {
	return &Translator{caps: caps}
}

// ChangeEvent builds the change event for an applied edit. When the server
// did not negotiate incremental sync the event carries the full document
// text instead of a range.
func (t *Translator) ChangeEvent(rope *text.Rope, edit Edit) lsp.TextDocumentContentChangeEvent {
	if !t.caps.Incremental {
		return t.FullChangeEvent(rope)
	}
	enc := t.caps.Encoding
	switch edit.Kind {
	case EditInsertChar, EditInsert:
		// A pure insertion point: both ends sit at the cursor column before
		// the edit, converted against the post-edit line (its prefix up to
		// that column is unchanged).
		at := lsp.Position{
			Line:      uint32(edit.Before.Row),
			Character: enc.ColumnUnits(rope.Line(edit.Before.Row), edit.Before.Col),
		}
		return lsp.TextDocumentContentChangeEvent{
			Range: &lsp.Range{Start: at, End: at},
			Text:  edit.Text,
		}
	case EditDeleteChar, EditRemove:
		// Both ends derive from the pre-edit location: the start is where
		// the cursor landed, the end is that plus the width of the removed
		// text.
		start := enc.ColumnUnits(rope.Line(edit.After.Row), edit.After.Col)
		return lsp.TextDocumentContentChangeEvent{
			Range: &lsp.Range{
				Start: lsp.Position{Line: uint32(edit.After.Row), Character: start},
				End:   lsp.Position{Line: uint32(edit.Before.Row), Character: start + enc.StringUnits(edit.Text)},
			},
			Text: "",
		}
	case EditInsertNewline:
		// A split is an insertion of the canonical terminator at the cursor.
		// The range must not reference the new line: it does not exist in the
		// text the other side is about to apply this event to.
		at := lsp.Position{
			Line:      uint32(edit.Before.Row),
			Character: enc.ColumnUnits(rope.Line(edit.Before.Row), edit.Before.Col),
		}
		return lsp.TextDocumentContentChangeEvent{
			Range: &lsp.Range{Start: at, End: at},
			Text:  lineTerminator,
		}
	case EditDeleteNewline:
		// The start is the merge point: the end of what the upper line held
		// before the merge, which is exactly where the cursor landed.
		return lsp.TextDocumentContentChangeEvent{
			Range: &lsp.Range{
				Start: lsp.Position{
					Line:      uint32(edit.After.Row),
					Character: enc.ColumnUnits(rope.Line(edit.After.Row), edit.After.Col),
				},
				End: lsp.Position{Line: uint32(edit.Before.Row), Character: 0},
			},
			Text: "",
		}
	}
	// Unreachable for the defined edit kinds; fall back to a full sync so a
	// future kind cannot silently desynchronize the server.
	return t.FullChangeEvent(rope)
}

// FullChangeEvent carries the entire document, lines joined with the
// canonical terminator.
func (t *Translator) FullChangeEvent(rope *text.Rope) lsp.TextDocumentContentChangeEvent {
	return lsp.TextDocumentContentChangeEvent{
		Text: strings.Join(rope.Lines(), lineTerminator),
	}
}
