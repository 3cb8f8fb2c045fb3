// Package mcp implements the server side of the Model Context Protocol:
// JSON-RPC 2.0 messages framed with Content-Length headers over stdio. The
// server publishes the tool catalog and dispatches tools/call requests to the
// registry; it never initiates messages of its own.
package mcp

import "encoding/json"

// ProtocolVersion is the MCP protocol revision this server speaks.
const ProtocolVersion = "2024-11-05"

// Message is a JSON-RPC 2.0 request, response, or notification. A request has
// Method and ID; a notification has Method and no ID; a response has ID and
// exactly one of Result or Error.
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// IsNotification reports whether the message expects no response.
func (m *Message) IsNotification() bool {
	return m.Method != "" && m.ID == nil
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Standard JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// errorResponse builds an error reply for the given request id.
func errorResponse(id any, code int, message string) *Message {
	return &Message{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &Error{Code: code, Message: message},
	}
}

// resultResponse builds a success reply for the given request id.
func resultResponse(id any, result any) *Message {
	return &Message{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}
