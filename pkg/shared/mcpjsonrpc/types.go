package mcpjsonrpc

// Based on JSON-RPC 2.0 Specification: https://www.jsonrpc.org/specification

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// Version is the only JSON-RPC version spoken by the gateway.
const Version = mcp.JSONRPC_VERSION

// MCP methods used by the client.
const (
	MethodToolsCall = string(mcp.MethodToolsCall)
	MethodToolsList = string(mcp.MethodToolsList)
)

// Request represents a JSON-RPC request object.
type Request struct {
	Version string `json:"jsonrpc"` // MUST be "2.0"
	ID      string `json:"id"`      // Fresh per call, never reused
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

// Response represents a JSON-RPC response object.
// Result is kept raw so the client can hand it back untouched.
type Response struct {
	Version string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error represents a JSON-RPC error object. Code and Message are pointers so a
// missing field can be told apart from a zero value.
type Error struct {
	Code    *int            `json:"code,omitempty"`
	Message *string         `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error codes (subset, based on JSON-RPC spec)
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// ToolCallParams defines the structure for the "params" field
// when the method is "tools/call".
type ToolCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ListToolsResult is the part of a "tools/list" result the client reads.
type ListToolsResult struct {
	Tools []json.RawMessage `json:"tools"`
}
