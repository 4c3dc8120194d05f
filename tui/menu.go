package tui

import "github.com/corymhall/tsedit/lsp"

const (
	// menuMaxRows caps the completion overlay height.
	menuMaxRows = 6
	// menuWidth is the fixed cell width of the completion overlay.
	menuWidth = 20
)

// MenuState holds the completion overlay's items and selection. It is owned
// by the update loop and never touched from another goroutine.
type MenuState struct {
	items    []lsp.CompletionItem
	selected int
}

func NewMenuState() *MenuState {
	return &MenuState{selected: -1}
}

// SetItems replaces the menu content. A non-empty list selects the first
// item; an empty list leaves nothing selected and hides the menu.
func (m *MenuState) SetItems(items []lsp.CompletionItem) {
	m.items = items
	if len(items) == 0 {
		m.selected = -1
	} else {
		m.selected = 0
	}
}

func (m *MenuState) Clear() {
	m.SetItems(nil)
}

func (m *MenuState) IsEmpty() bool {
	return len(m.items) == 0
}

func (m *MenuState) Items() []lsp.CompletionItem {
	return m.items
}

// Selected returns the highlighted item, if any.
func (m *MenuState) Selected() (lsp.CompletionItem, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		return lsp.CompletionItem{}, false
	}
	return m.items[m.selected], true
}

// Next advances the selection, wrapping to the top past the last item.
func (m *MenuState) Next() {
	if m.selected < 0 {
		return
	}
	if m.selected < len(m.items)-1 {
		m.selected++
	} else {
		m.selected = 0
	}
}

// Previous moves the selection back, wrapping to the bottom past the first
// item.
func (m *MenuState) Previous() {
	if m.selected < 0 {
		return
	}
	if m.selected > 0 {
		m.selected--
	} else {
		m.selected = len(m.items) - 1
	}
}
