package editor

import (
	"fmt"

	"github.com/corymhall/tsedit/text"
)

// EditKind discriminates the atomic local mutations the text area emits.
type EditKind int

const (
	// EditInsertChar - a single character typed at the cursor.
	EditInsertChar EditKind = iota
	// EditDeleteChar - a single character removed before the cursor.
	EditDeleteChar
	// EditInsertNewline - a line split at the cursor.
	EditInsertNewline
	// EditDeleteNewline - a line merged into the one above.
	EditDeleteNewline
	// EditInsert - an arbitrary substring inserted at the cursor.
	EditInsert
	// EditRemove - an arbitrary substring removed before the cursor.
	EditRemove
)

func (k EditKind) String() string {
	switch k {
	case EditInsertChar:
		return "InsertChar"
	case EditDeleteChar:
		return "DeleteChar"
	case EditInsertNewline:
		return "InsertNewline"
	case EditDeleteNewline:
		return "DeleteNewline"
	case EditInsert:
		return "Insert"
	case EditRemove:
		return "Remove"
	}
	return fmt.Sprintf("(unknown edit kind: %d)", int(k))
}

// Edit is one applied mutation, carrying the affected text and the cursor
// location on both sides so the translator can derive an exact protocol
// range without consulting stale offsets.
type Edit struct {
	Kind EditKind
	// Text is the inserted or removed text. Empty for the newline kinds,
	// whose replacement is the canonical line terminator.
	Text string
	// Before and After are the cursor locations around the mutation, in
	// character units.
	Before text.Loc
	After  text.Loc
}
