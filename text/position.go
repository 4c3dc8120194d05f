package text

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Loc is a cursor location in character (rune) units: zero-based row and
// column.
type Loc struct {
	Row int
	Col int
}

// Encoding selects the code unit the protocol counts character offsets in.
// It is negotiated once per session and then threaded, immutable, into every
// component doing position math.
type Encoding int

const (
	// EncodingUTF8 counts bytes.
	EncodingUTF8 Encoding = iota
	// EncodingUTF16 counts UTF-16 code units.
	EncodingUTF16
	// EncodingUTF32 counts code points, so protocol columns equal character
	// columns.
	EncodingUTF32
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf-8"
	case EncodingUTF16:
		return "utf-16"
	case EncodingUTF32:
		return "utf-32"
	}
	return "unknown"
}

// ColumnUnits converts the character column col within line into code units
// of the encoding: the byte length, UTF-16 length, or rune count of the
// first col characters. Columns past the end of the line clamp to the whole
// line. The result is always computed from the supplied line content; prior
// offsets are invalidated by every edit, so nothing here is cached.
func (e Encoding) ColumnUnits(line string, col int) uint32 {
	if col <= 0 {
		return 0
	}
	var units uint32
	n := 0
	for _, r := range line {
		if n >= col {
			break
		}
		switch e {
		case EncodingUTF8:
			units += uint32(utf8.RuneLen(r))
		case EncodingUTF16:
			units += uint32(utf16.RuneLen(r))
		default:
			units++
		}
		n++
	}
	return units
}

// ColumnFor is the inverse of ColumnUnits: it recovers the character column
// whose prefix spans the given number of code units. Offsets that land
// inside a character, or past the end of the line, clamp to the nearest
// valid column.
func (e Encoding) ColumnFor(line string, units uint32) int {
	var seen uint32
	col := 0
	for _, r := range line {
		var width uint32
		switch e {
		case EncodingUTF8:
			width = uint32(utf8.RuneLen(r))
		case EncodingUTF16:
			width = uint32(utf16.RuneLen(r))
		default:
			width = 1
		}
		// Check before consuming: an offset inside this character's units
		// must not step past it.
		if seen+width > units {
			return col
		}
		seen += width
		col++
	}
	return col
}

// StringUnits returns the total width of s in code units of the encoding.
func (e Encoding) StringUnits(s string) uint32 {
	return e.ColumnUnits(s, RuneLen(s))
}

// ColumnUnitsAt resolves a location against the rope and converts its column.
// Row == LineCount (end of document) is valid and resolves against the
// synthetic empty trailing line.
func (r *Rope) ColumnUnitsAt(loc Loc, enc Encoding) uint32 {
	return enc.ColumnUnits(r.Line(loc.Row), loc.Col)
}

// RuneLen returns the number of characters in s.
func RuneLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
