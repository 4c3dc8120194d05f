package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/corymhall/tsedit/text"
)

var (
	styleText    = tcell.StyleDefault
	styleStatus  = tcell.StyleDefault.Reverse(true)
	styleMenu    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray).Background(tcell.ColorDarkCyan)
	styleMenuSel = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan).Background(tcell.ColorDarkGray)
)

// draw renders the whole frame: document lines, status bar, cursor and the
// completion overlay. Rendering reads a snapshot of the document under the
// shared lock and never mutates editor state.
func (a *App) draw() {
	lines := []string{""}
	var version int32
	if err := a.store.WithText(a.uri, func(rope *text.Rope) error {
		lines = rope.Lines()
		v, err := a.store.Version(a.uri)
		if err != nil {
			return err
		}
		version = v
		return nil
	}); err != nil {
		return
	}

	a.screen.Clear()
	contentHeight := a.height - 1
	if contentHeight < 1 {
		contentHeight = 1
	}

	cursor := a.area.Cursor()
	if cursor.Row < a.scroll {
		a.scroll = cursor.Row
	}
	if cursor.Row >= a.scroll+contentHeight {
		a.scroll = cursor.Row - contentHeight + 1
	}

	for y := 0; y < contentHeight; y++ {
		row := a.scroll + y
		if row >= len(lines) {
			break
		}
		a.drawText(0, y, a.width, lines[row], styleText)
	}

	a.drawStatus(contentHeight, version)

	cursorX := cellWidth(runePrefix(lines[cursor.Row], cursor.Col))
	cursorY := cursor.Row - a.scroll
	a.screen.ShowCursor(cursorX, cursorY)

	if !a.menu.IsEmpty() {
		a.drawMenu(cursorX, cursorY, contentHeight)
	}
	a.screen.Show()
}

func (a *App) drawStatus(y int, version int32) {
	status := fmt.Sprintf(" %s  v%d", a.uri, version)
	if n := len(a.diags); n > 0 {
		status += fmt.Sprintf("  %d diagnostics", n)
	}
	if a.status != "" {
		status += "  " + a.status
	}
	x := a.drawText(0, y, a.width, status, styleStatus)
	for ; x < a.width; x++ {
		a.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
}

// drawMenu paints the completion overlay anchored under the cursor, above it
// when there is no room below. At most menuMaxRows items are visible; the
// window slides to keep the selection in view.
func (a *App) drawMenu(cursorX, cursorY, contentHeight int) {
	items := a.menu.Items()
	rows := len(items)
	if rows > menuMaxRows {
		rows = menuMaxRows
	}
	y := cursorY + 1
	if y+rows > contentHeight {
		y = cursorY - rows
		if y < 0 {
			y = 0
		}
	}
	x := cursorX
	if x+menuWidth > a.width {
		x = a.width - menuWidth
		if x < 0 {
			x = 0
		}
	}

	offset := 0
	if a.menu.selected >= rows {
		offset = a.menu.selected - rows + 1
	}
	for i := 0; i < rows; i++ {
		item := items[offset+i]
		style := styleMenu
		if offset+i == a.menu.selected {
			style = styleMenuSel
		}
		end := a.drawText(x, y+i, x+menuWidth, item.Label, style)
		for ; end < x+menuWidth && end < a.width; end++ {
			a.screen.SetContent(end, y+i, ' ', nil, style)
		}
	}
}

// drawText writes s starting at (x, y), clipping at maxX, and returns the
// first unused column. Grapheme clusters are placed whole so wide characters
// and combining marks occupy the right cells.
func (a *App) drawText(x, y, maxX int, s string, style tcell.Style) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		width := uniseg.StringWidth(g.Str())
		if x+width > maxX {
			break
		}
		runes := g.Runes()
		a.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += width
	}
	return x
}

// cellWidth is the display width of s in terminal cells.
func cellWidth(s string) int {
	return uniseg.StringWidth(s)
}

// runePrefix returns the first col characters of line.
func runePrefix(line string, col int) string {
	if col <= 0 {
		return ""
	}
	n := 0
	for i := range line {
		if n == col {
			return line[:i]
		}
		n++
	}
	return line
}
