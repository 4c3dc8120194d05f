package rpc

import (
	"encoding/json"
	"fmt"
)

// ID is a Request identifier. The language servers we talk to use both
// string and number forms, so both are preserved through a round trip.
type ID struct {
	name   string
	number int64
}

// wireRequest is sent over the wire for a Call or Notify operation.
type wireRequest struct {
	// VersionTag is always encoded as the string "2.0"
	VersionTag wireVersionTag `json:"jsonrpc"`
	// Method is a string containing the method name to invoke.
	Method string `json:"method"`
	// Params is either a struct or an array with the parameters of the method.
	Params *json.RawMessage `json:"params,omitempty"`
	// The id of this request, used to tie the Response back to the request.
	// If not set, the Request is a notify and no response is possible.
	ID *ID `json:"id,omitempty"`
}

// wireResponse is a reply to a Call. Exactly one of Result or Error is set.
type wireResponse struct {
	VersionTag wireVersionTag   `json:"jsonrpc"`
	Result     *json.RawMessage `json:"result,omitempty"`
	Error      *WireError       `json:"error,omitempty"`
	ID         *ID              `json:"id,omitempty"`
}

// wireCombined has all the fields of both Request and Response.
// We decode this and then work out which it is.
type wireCombined struct {
	VersionTag wireVersionTag   `json:"jsonrpc"`
	ID         *ID              `json:"id,omitempty"`
	Method     string           `json:"method"`
	Params     *json.RawMessage `json:"params,omitempty"`
	Result     *json.RawMessage `json:"result,omitempty"`
	Error      *WireError       `json:"error,omitempty"`
}

// WireError is the JSON-RPC error object, used both for decoding failures
// reported by the remote side and for building replies of our own.
type WireError struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *WireError) Error() string {
	return e.Message
}

// NewError builds a WireError for the supplied code and message.
func NewError(code int64, message string) *WireError {
	return &WireError{Code: code, Message: message}
}

// wireVersionTag is a special 0 sized struct that encodes as the jsonrpc
// version tag. It fails during decode if the stream carries any other version.
type wireVersionTag struct{}

func (wireVersionTag) MarshalJSON() ([]byte, error) {
	return json.Marshal("2.0")
}

func (wireVersionTag) UnmarshalJSON(data []byte) error {
	version := ""
	if err := json.Unmarshal(data, &version); err != nil {
		return err
	}
	if version != "2.0" {
		return fmt.Errorf("invalid RPC version %v", version)
	}
	return nil
}

func (id *ID) MarshalJSON() ([]byte, error) {
	if id.name != "" {
		return json.Marshal(id.name)
	}
	return json.Marshal(id.number)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	*id = ID{}
	if err := json.Unmarshal(data, &id.number); err == nil {
		return nil
	}
	return json.Unmarshal(data, &id.name)
}
