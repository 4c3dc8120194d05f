// Package text implements the rope-backed document buffer and the
// conversion from character columns to protocol offsets in the position
// encoding negotiated for the session.
package text

import (
	"strings"
)

const (
	// maxChunk is the split threshold for a single chunk, in bytes.
	maxChunk = 4096
	// minChunk is the merge threshold: adjacent chunks smaller than this
	// are coalesced after an edit.
	minChunk = 512
)

// Rope is a chunked sequence of bytes with a per-chunk newline count, giving
// line lookups that skip whole chunks. Offsets are byte offsets; callers
// produce them from line starts plus rune-boundary prefixes, so chunk
// boundaries never need to respect rune boundaries themselves.
//
// The zero value is an empty document with a single empty line.
type Rope struct {
	chunks   []chunk
	size     int
	newlines int
}

type chunk struct {
	data     string
	newlines int
}

func newChunk(data string) chunk {
	return chunk{data: data, newlines: strings.Count(data, "\n")}
}

func splitChunks(data string) []chunk {
	if data == "" {
		return nil
	}
	var out []chunk
	for len(data) > maxChunk {
		out = append(out, newChunk(data[:maxChunk]))
		data = data[maxChunk:]
	}
	return append(out, newChunk(data))
}

// NewRope builds a rope holding s.
func NewRope(s string) *Rope {
	r := &Rope{}
	r.chunks = splitChunks(s)
	r.size = len(s)
	r.newlines = strings.Count(s, "\n")
	return r
}

// Len returns the total size in bytes.
func (r *Rope) Len() int { return r.size }

// LineCount returns the number of lines. An empty document has one line;
// a trailing newline opens one more.
func (r *Rope) LineCount() int { return r.newlines + 1 }

// String materializes the full content.
func (r *Rope) String() string {
	var b strings.Builder
	b.Grow(r.size)
	for _, c := range r.chunks {
		b.WriteString(c.data)
	}
	return b.String()
}

// Bytes materializes the full content as a byte slice, the form the parser
// consumes.
func (r *Rope) Bytes() []byte {
	return []byte(r.String())
}

// Lines splits the content into lines without terminators. The result always
// has LineCount entries.
func (r *Rope) Lines() []string {
	return strings.Split(r.String(), "\n")
}

// locate returns the chunk index and the local byte offset for a global
// offset. An offset equal to Len addresses the end of the last chunk.
func (r *Rope) locate(off int) (int, int) {
	for i, c := range r.chunks {
		if off <= len(c.data) {
			if off == len(c.data) && i+1 < len(r.chunks) {
				return i + 1, 0
			}
			return i, off
		}
		off -= len(c.data)
	}
	return len(r.chunks), 0
}

// Insert splices s in at byte offset off. Offsets outside [0, Len] are
// clamped; the caller validates edits before they reach the rope.
func (r *Rope) Insert(off int, s string) {
	if s == "" {
		return
	}
	if off < 0 {
		off = 0
	}
	if off > r.size {
		off = r.size
	}
	if len(r.chunks) == 0 {
		r.chunks = splitChunks(s)
	} else {
		i, lo := r.locate(off)
		if i == len(r.chunks) {
			i, lo = len(r.chunks)-1, len(r.chunks[len(r.chunks)-1].data)
		}
		data := r.chunks[i].data
		merged := data[:lo] + s + data[lo:]
		r.chunks = append(r.chunks[:i], append(splitChunks(merged), r.chunks[i+1:]...)...)
	}
	r.size += len(s)
	r.newlines += strings.Count(s, "\n")
	r.compact()
}

// Delete removes the byte range [start, end).
func (r *Rope) Delete(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > r.size {
		end = r.size
	}
	if start >= end {
		return
	}
	removed := 0
	removedNewlines := 0
	var out []chunk
	off := 0
	for _, c := range r.chunks {
		clen := len(c.data)
		lo := max(start-off, 0)
		hi := min(end-off, clen)
		if lo >= clen || hi <= 0 {
			out = append(out, c)
		} else {
			kept := c.data[:lo] + c.data[hi:]
			cut := c.data[lo:hi]
			removed += len(cut)
			removedNewlines += strings.Count(cut, "\n")
			if kept != "" {
				out = append(out, newChunk(kept))
			}
		}
		off += clen
	}
	r.chunks = out
	r.size -= removed
	r.newlines -= removedNewlines
	r.compact()
}

// compact merges runs of undersized neighbors so edit-heavy sessions do not
// accumulate chunk fragments.
func (r *Rope) compact() {
	if len(r.chunks) < 2 {
		return
	}
	out := r.chunks[:0]
	for _, c := range r.chunks {
		if n := len(out); n > 0 && len(out[n-1].data) < minChunk && len(out[n-1].data)+len(c.data) <= maxChunk {
			merged := out[n-1].data + c.data
			out[n-1] = chunk{data: merged, newlines: out[n-1].newlines + c.newlines}
		} else {
			out = append(out, c)
		}
	}
	r.chunks = out
}

// OffsetOfLine returns the byte offset of the first character of the given
// row. Row 0 is offset 0; row == LineCount (the synthetic trailing line)
// maps to Len.
func (r *Rope) OffsetOfLine(row int) int {
	if row <= 0 {
		return 0
	}
	if row > r.newlines {
		return r.size
	}
	remaining := row
	off := 0
	for _, c := range r.chunks {
		if c.newlines < remaining {
			remaining -= c.newlines
			off += len(c.data)
			continue
		}
		data := c.data
		for remaining > 0 {
			i := strings.IndexByte(data, '\n')
			off += i + 1
			data = data[i+1:]
			remaining--
		}
		return off
	}
	return r.size
}

// Slice returns the byte range [start, end) as a string.
func (r *Rope) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > r.size {
		end = r.size
	}
	if start >= end {
		return ""
	}
	var b strings.Builder
	b.Grow(end - start)
	off := 0
	for _, c := range r.chunks {
		clen := len(c.data)
		lo := max(start-off, 0)
		hi := min(end-off, clen)
		if lo < clen && hi > 0 {
			b.WriteString(c.data[lo:hi])
		}
		off += clen
		if off >= end {
			break
		}
	}
	return b.String()
}

// Line returns the content of a row without its terminator. Rows outside
// the document yield the empty string rather than an out of range access.
func (r *Rope) Line(row int) string {
	if row < 0 || row >= r.LineCount() {
		return ""
	}
	start := r.OffsetOfLine(row)
	var end int
	if row == r.newlines {
		end = r.size
	} else {
		end = r.OffsetOfLine(row+1) - 1
	}
	return r.Slice(start, end)
}
