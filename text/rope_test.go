package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRopeEmpty(t *testing.T) {
	r := NewRope("")
	require.Equal(t, 0, r.Len())
	require.Equal(t, 1, r.LineCount())
	require.Equal(t, "", r.String())
	require.Equal(t, []string{""}, r.Lines())
	require.Equal(t, "", r.Line(0))
}

func TestRopeInsertDelete(t *testing.T) {
	r := NewRope("hello\nworld")
	require.Equal(t, 2, r.LineCount())
	require.Equal(t, "world", r.Line(1))

	r.Insert(5, "!")
	require.Equal(t, "hello!\nworld", r.String())

	r.Delete(5, 6)
	require.Equal(t, "hello\nworld", r.String())

	r.Delete(5, 6) // the newline
	require.Equal(t, "helloworld", r.String())
	require.Equal(t, 1, r.LineCount())
}

func TestRopeInsertClamps(t *testing.T) {
	r := NewRope("ab")
	r.Insert(-5, "x")
	r.Insert(100, "y")
	require.Equal(t, "xaby", r.String())
}

func TestRopeTrailingNewline(t *testing.T) {
	r := NewRope("a\n")
	require.Equal(t, 2, r.LineCount())
	require.Equal(t, "a", r.Line(0))
	require.Equal(t, "", r.Line(1))
	require.Equal(t, []string{"a", ""}, r.Lines())
	require.Equal(t, 2, r.OffsetOfLine(1))
	// Rows past the last newline resolve to the end of the document.
	require.Equal(t, 2, r.OffsetOfLine(5))
}

func TestRopeOffsetOfLine(t *testing.T) {
	r := NewRope("ab\ncde\n\nf")
	require.Equal(t, 4, r.LineCount())
	require.Equal(t, 0, r.OffsetOfLine(0))
	require.Equal(t, 3, r.OffsetOfLine(1))
	require.Equal(t, 7, r.OffsetOfLine(2))
	require.Equal(t, 8, r.OffsetOfLine(3))
	require.Equal(t, "", r.Line(2))
	require.Equal(t, "f", r.Line(3))
}

func TestRopeSlice(t *testing.T) {
	r := NewRope("hello\nworld")
	require.Equal(t, "lo\nwo", r.Slice(3, 8))
	require.Equal(t, "", r.Slice(4, 4))
	require.Equal(t, "hello\nworld", r.Slice(-1, 100))
}

// Edits against a document large enough to span several chunks must behave
// exactly like the same edits against one flat string.
func TestRopeLargeDocument(t *testing.T) {
	line := strings.Repeat("abcdefghij", 100) // 1000 bytes per line
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString(line)
		b.WriteString("\n")
	}
	content := b.String()

	r := NewRope(content)
	require.Equal(t, len(content), r.Len())
	require.Equal(t, 21, r.LineCount())

	// Insert in the middle of line 10.
	off := r.OffsetOfLine(10) + 500
	r.Insert(off, "XYZ\n")
	want := content[:off] + "XYZ\n" + content[off:]
	require.Equal(t, want, r.String())
	require.Equal(t, 22, r.LineCount())

	// Delete across the inserted newline.
	r.Delete(off, off+4)
	require.Equal(t, content, r.String())
	require.Equal(t, 21, r.LineCount())

	for row := 0; row < 20; row++ {
		require.Equal(t, line, r.Line(row))
	}
}

func TestRopeManySmallEdits(t *testing.T) {
	r := NewRope("")
	var want strings.Builder
	for i := 0; i < 2000; i++ {
		r.Insert(r.Len(), "ab")
		want.WriteString("ab")
	}
	require.Equal(t, want.String(), r.String())
	require.Equal(t, 4000, r.Len())
}
