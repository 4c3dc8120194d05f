package editor

import (
	"sort"
	"strings"

	"github.com/corymhall/tsedit/lsp"
)

// CompletionSession tags one in-flight completion request. Responses are
// matched against the tag that is current when they arrive; a response
// whose tag no longer matches is stale and is dropped. There is no network
// cancellation.
type CompletionSession struct {
	// URI of the document the request was issued against. A close does not
	// cancel in-flight requests, so a late response can name an absent
	// document and must be safely ignorable.
	URI lsp.DocumentURI
	// Version of the document when the request was issued.
	Version int32
	// Prefix is the identifier prefix under the cursor at issue time.
	Prefix string
	// Position is the cursor's protocol position carried by the request.
	Position lsp.Position
	// Triggered records whether a declared trigger character fired this
	// session.
	Triggered bool
}

// Matches reports whether a response tagged with other still corresponds to
// the currently tracked session.
func (s CompletionSession) Matches(other CompletionSession) bool {
	return s.URI == other.URI && s.Version == other.Version && s.Prefix == other.Prefix
}

// FilterCompletions keeps candidates whose filter text (falling back to the
// label) starts with the tracked prefix and orders them by the
// server-provided sort key, lexicographic, falling back to the label.
func FilterCompletions(items []lsp.CompletionItem, prefix string) []lsp.CompletionItem {
	kept := make([]lsp.CompletionItem, 0, len(items))
	for _, item := range items {
		filter := item.FilterText
		if filter == "" {
			filter = item.Label
		}
		if strings.HasPrefix(filter, prefix) {
			kept = append(kept, item)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return sortKey(kept[i]) < sortKey(kept[j])
	})
	return kept
}

func sortKey(item lsp.CompletionItem) string {
	if item.SortText != "" {
		return item.SortText
	}
	return item.Label
}
