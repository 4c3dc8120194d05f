package lsp

import "encoding/json"

type CompletionTriggerKind int32

const (
	// CompletionTriggeredInvoked - completion was triggered by typing an
	// identifier or via explicit request.
	CompletionTriggeredInvoked CompletionTriggerKind = 1
	// CompletionTriggeredCharacter - completion was triggered by one of the
	// server's declared trigger characters.
	CompletionTriggeredCharacter CompletionTriggerKind = 2
)

type CompletionContext struct {
	TriggerKind      CompletionTriggerKind `json:"triggerKind"`
	TriggerCharacter string                `json:"triggerCharacter,omitempty"`
}

type CompletionParams struct {
	TextDocumentPositionParams
	Context *CompletionContext `json:"context,omitempty"`
}

type CompletionItem struct {
	Label      string `json:"label"`
	Kind       int32  `json:"kind,omitempty"`
	Detail     string `json:"detail,omitempty"`
	SortText   string `json:"sortText,omitempty"`
	FilterText string `json:"filterText,omitempty"`
	InsertText string `json:"insertText,omitempty"`
}

type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

// CompletionResponse covers both wire shapes of a completion result: a bare
// item array or a CompletionList object.
type CompletionResponse struct {
	IsIncomplete bool
	Items        []CompletionItem
}

func (r *CompletionResponse) UnmarshalJSON(data []byte) error {
	*r = CompletionResponse{}
	var items []CompletionItem
	if err := json.Unmarshal(data, &items); err == nil {
		r.Items = items
		return nil
	}
	var list CompletionList
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	r.IsIncomplete = list.IsIncomplete
	r.Items = list.Items
	return nil
}
