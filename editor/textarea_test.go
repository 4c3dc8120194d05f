package editor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corymhall/tsedit/text"
)

func TestInsertRune(t *testing.T) {
	rope := text.NewRope("")
	var ta TextArea

	edit := ta.InsertRune(rope, 'h')
	require.Equal(t, EditInsertChar, edit.Kind)
	require.Equal(t, "h", edit.Text)
	require.Equal(t, text.Loc{Row: 0, Col: 0}, edit.Before)
	require.Equal(t, text.Loc{Row: 0, Col: 1}, edit.After)
	require.Equal(t, "h", rope.String())

	ta.InsertRune(rope, 'i')
	edit = ta.InsertRune(rope, '\n')
	require.Equal(t, EditInsertNewline, edit.Kind)
	require.Equal(t, text.Loc{Row: 0, Col: 2}, edit.Before)
	require.Equal(t, text.Loc{Row: 1, Col: 0}, edit.After)
	require.Equal(t, "hi\n", rope.String())
	require.Equal(t, text.Loc{Row: 1, Col: 0}, ta.Cursor())
}

func TestBackspace(t *testing.T) {
	rope := text.NewRope("ab\ncd")
	var ta TextArea

	// Document start: nothing to remove.
	_, ok := ta.Backspace(rope)
	require.False(t, ok)

	ta.SetCursor(rope, text.Loc{Row: 1, Col: 1})
	edit, ok := ta.Backspace(rope)
	require.True(t, ok)
	require.Equal(t, EditDeleteChar, edit.Kind)
	require.Equal(t, "c", edit.Text)
	require.Equal(t, "ab\nd", rope.String())

	// At a line start the lines merge; the cursor lands at the end of what
	// was the upper line.
	edit, ok = ta.Backspace(rope)
	require.True(t, ok)
	require.Equal(t, EditDeleteNewline, edit.Kind)
	require.Equal(t, text.Loc{Row: 1, Col: 0}, edit.Before)
	require.Equal(t, text.Loc{Row: 0, Col: 2}, edit.After)
	require.Equal(t, "abd", rope.String())
}

func TestBackspaceMultibyte(t *testing.T) {
	rope := text.NewRope("a𝔘b")
	var ta TextArea
	ta.SetCursor(rope, text.Loc{Row: 0, Col: 2})
	edit, ok := ta.Backspace(rope)
	require.True(t, ok)
	require.Equal(t, "𝔘", edit.Text)
	require.Equal(t, "ab", rope.String())
	require.Equal(t, text.Loc{Row: 0, Col: 1}, ta.Cursor())
}

func TestInsertString(t *testing.T) {
	rope := text.NewRope("ab")
	var ta TextArea
	ta.SetCursor(rope, text.Loc{Row: 0, Col: 1})

	edit, ok := ta.InsertString(rope, "x\r\ny")
	require.True(t, ok)
	require.Equal(t, EditInsert, edit.Kind)
	require.Equal(t, "x\ny", edit.Text)
	require.Equal(t, "ax\nyb", rope.String())
	require.Equal(t, text.Loc{Row: 1, Col: 1}, ta.Cursor())

	_, ok = ta.InsertString(rope, "")
	require.False(t, ok)
}

func TestRemoveBefore(t *testing.T) {
	rope := text.NewRope("hello")
	var ta TextArea
	ta.SetCursor(rope, text.Loc{Row: 0, Col: 4})

	edit, ok := ta.RemoveBefore(rope, 2)
	require.True(t, ok)
	require.Equal(t, EditRemove, edit.Kind)
	require.Equal(t, "ll", edit.Text)
	require.Equal(t, "heo", rope.String())
	require.Equal(t, text.Loc{Row: 0, Col: 2}, ta.Cursor())

	// Removal never crosses the line start.
	edit, ok = ta.RemoveBefore(rope, 10)
	require.True(t, ok)
	require.Equal(t, "he", edit.Text)
	_, ok = ta.RemoveBefore(rope, 1)
	require.False(t, ok)
}

func TestCursorMovement(t *testing.T) {
	rope := text.NewRope("ab\ncdef")
	var ta TextArea

	require.False(t, ta.MoveLeft(rope))
	require.True(t, ta.MoveRight(rope))
	require.True(t, ta.MoveRight(rope))
	// Right at line end wraps to the next line.
	require.True(t, ta.MoveRight(rope))
	require.Equal(t, text.Loc{Row: 1, Col: 0}, ta.Cursor())
	// Left at line start wraps back.
	require.True(t, ta.MoveLeft(rope))
	require.Equal(t, text.Loc{Row: 0, Col: 2}, ta.Cursor())

	ta.SetCursor(rope, text.Loc{Row: 1, Col: 4})
	// Moving up clamps the column to the shorter line.
	require.True(t, ta.MoveUp(rope))
	require.Equal(t, text.Loc{Row: 0, Col: 2}, ta.Cursor())
	require.True(t, ta.MoveDown(rope))
	require.False(t, ta.MoveDown(rope))
}

func TestSetCursorClamps(t *testing.T) {
	rope := text.NewRope("ab\ncd")
	var ta TextArea
	ta.SetCursor(rope, text.Loc{Row: 99, Col: 99})
	require.Equal(t, text.Loc{Row: 1, Col: 2}, ta.Cursor())
	ta.SetCursor(rope, text.Loc{Row: -1, Col: -1})
	require.Equal(t, text.Loc{Row: 0, Col: 0}, ta.Cursor())
}
