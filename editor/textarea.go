package editor

import (
	"strings"

	"github.com/corymhall/tsedit/text"
)

// TextArea owns the cursor and applies local edits to a document rope.
// Out-of-range operations (backspace at document start, movement past line
// ends) are rejected or clamped here, before an Edit is ever constructed,
// so the translator only sees valid edits.
type TextArea struct {
	cursor text.Loc
}

func (ta *TextArea) Cursor() text.Loc { return ta.cursor }

// SetCursor moves the cursor, clamping to the document.
func (ta *TextArea) SetCursor(rope *text.Rope, loc text.Loc) {
	if loc.Row < 0 {
		loc.Row = 0
	}
	if last := rope.LineCount() - 1; loc.Row > last {
		loc.Row = last
	}
	if loc.Col < 0 {
		loc.Col = 0
	}
	if n := text.RuneLen(rope.Line(loc.Row)); loc.Col > n {
		loc.Col = n
	}
	ta.cursor = loc
}

func (ta *TextArea) MoveLeft(rope *text.Rope) bool {
	switch {
	case ta.cursor.Col > 0:
		ta.cursor.Col--
	case ta.cursor.Row > 0:
		ta.cursor.Row--
		ta.cursor.Col = text.RuneLen(rope.Line(ta.cursor.Row))
	default:
		return false
	}
	return true
}

func (ta *TextArea) MoveRight(rope *text.Rope) bool {
	switch {
	case ta.cursor.Col < text.RuneLen(rope.Line(ta.cursor.Row)):
		ta.cursor.Col++
	case ta.cursor.Row < rope.LineCount()-1:
		ta.cursor.Row++
		ta.cursor.Col = 0
	default:
		return false
	}
	return true
}

func (ta *TextArea) MoveUp(rope *text.Rope) bool {
	if ta.cursor.Row == 0 {
		return false
	}
	ta.SetCursor(rope, text.Loc{Row: ta.cursor.Row - 1, Col: ta.cursor.Col})
	return true
}

func (ta *TextArea) MoveDown(rope *text.Rope) bool {
	if ta.cursor.Row >= rope.LineCount()-1 {
		return false
	}
	ta.SetCursor(rope, text.Loc{Row: ta.cursor.Row + 1, Col: ta.cursor.Col})
	return true
}

// byteOffsetAt resolves a character location to a byte offset in the rope.
func byteOffsetAt(rope *text.Rope, loc text.Loc) int {
	return rope.OffsetOfLine(loc.Row) + runePrefixBytes(rope.Line(loc.Row), loc.Col)
}

// runePrefixBytes returns the byte length of the first col characters of
// line.
func runePrefixBytes(line string, col int) int {
	if col <= 0 {
		return 0
	}
	n := 0
	for i := range line {
		if n == col {
			return i
		}
		n++
	}
	return len(line)
}

// InsertRune types one character at the cursor. A newline rune becomes a
// line split edit.
func (ta *TextArea) InsertRune(rope *text.Rope, r rune) Edit {
	before := ta.cursor
	if r == '\n' {
		rope.Insert(byteOffsetAt(rope, before), "\n")
		ta.cursor = text.Loc{Row: before.Row + 1, Col: 0}
		return Edit{Kind: EditInsertNewline, Before: before, After: ta.cursor}
	}
	rope.Insert(byteOffsetAt(rope, before), string(r))
	ta.cursor = text.Loc{Row: before.Row, Col: before.Col + 1}
	return Edit{Kind: EditInsertChar, Text: string(r), Before: before, After: ta.cursor}
}

// Backspace removes the character before the cursor, merging lines when the
// cursor sits at a line start. At the document start there is nothing to
// remove and no edit is produced.
func (ta *TextArea) Backspace(rope *text.Rope) (Edit, bool) {
	before := ta.cursor
	if before.Col == 0 {
		if before.Row == 0 {
			return Edit{}, false
		}
		prev := rope.Line(before.Row - 1)
		off := rope.OffsetOfLine(before.Row)
		rope.Delete(off-1, off)
		ta.cursor = text.Loc{Row: before.Row - 1, Col: text.RuneLen(prev)}
		return Edit{Kind: EditDeleteNewline, Before: before, After: ta.cursor}, true
	}
	line := rope.Line(before.Row)
	start := rope.OffsetOfLine(before.Row) + runePrefixBytes(line, before.Col-1)
	end := rope.OffsetOfLine(before.Row) + runePrefixBytes(line, before.Col)
	removed := rope.Slice(start, end)
	rope.Delete(start, end)
	ta.cursor = text.Loc{Row: before.Row, Col: before.Col - 1}
	return Edit{Kind: EditDeleteChar, Text: removed, Before: before, After: ta.cursor}, true
}

// InsertString pastes s at the cursor. Line terminators in s are
// normalized to the rope's internal representation before insertion.
func (ta *TextArea) InsertString(rope *text.Rope, s string) (Edit, bool) {
	if s == "" {
		return Edit{}, false
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	before := ta.cursor
	rope.Insert(byteOffsetAt(rope, before), s)
	segments := strings.Split(s, "\n")
	if len(segments) == 1 {
		ta.cursor = text.Loc{Row: before.Row, Col: before.Col + text.RuneLen(s)}
	} else {
		ta.cursor = text.Loc{
			Row: before.Row + len(segments) - 1,
			Col: text.RuneLen(segments[len(segments)-1]),
		}
	}
	return Edit{Kind: EditInsert, Text: s, Before: before, After: ta.cursor}, true
}

// RemoveBefore removes up to n characters before the cursor within the
// current line and returns the removed substring with the edit. Nothing
// happens when the cursor is at a line start.
func (ta *TextArea) RemoveBefore(rope *text.Rope, n int) (Edit, bool) {
	before := ta.cursor
	if n <= 0 || before.Col == 0 {
		return Edit{}, false
	}
	if n > before.Col {
		n = before.Col
	}
	line := rope.Line(before.Row)
	start := rope.OffsetOfLine(before.Row) + runePrefixBytes(line, before.Col-n)
	end := rope.OffsetOfLine(before.Row) + runePrefixBytes(line, before.Col)
	removed := rope.Slice(start, end)
	rope.Delete(start, end)
	ta.cursor = text.Loc{Row: before.Row, Col: before.Col - n}
	return Edit{Kind: EditRemove, Text: removed, Before: before, After: ta.cursor}, true
}
