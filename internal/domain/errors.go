package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrClientClosed is returned by every call made after the client was closed.
	ErrClientClosed = errors.New("mcp client is closed")
	// ErrMalformedResponse wraps bodies that are not a JSON-RPC response object.
	ErrMalformedResponse = errors.New("malformed gateway response")
)

// TransportError reports a non-2xx HTTP status from an upstream service.
// The body is carried raw and never interpreted as JSON-RPC.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// RPCError is a JSON-RPC error object returned by the gateway, surfaced verbatim.
type RPCError struct {
	Code    int
	Message string
	Data    json.RawMessage
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("MCP Error %d: %s", e.Code, e.Message)
}

// ValidationError reports arguments rejected before any request was sent.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid arguments: " + e.Err.Error()
	}
	return fmt.Sprintf("invalid argument %q: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ArgsValidator is implemented by argument records with constraints the JSON
// encoding alone cannot express, such as a required list being nil.
type ArgsValidator interface {
	Validate() error
}

func requireField(field string, missing bool) error {
	if missing {
		return &ValidationError{Field: field, Err: errors.New("is required")}
	}
	return nil
}
