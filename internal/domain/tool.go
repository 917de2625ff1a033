package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ToolDescriptor is one entry of a gateway "tools/list" result.
// The client does not validate its shape; callers interpret it.
// Based on MCP Spec 2025-03-26: https://modelcontextprotocol.io/specification/2025-03-26
type ToolDescriptor map[string]any

// Name returns the descriptor's "name" field, or "" when it is missing or not a string.
func (d ToolDescriptor) Name() string {
	name, _ := d["name"].(string)
	return name
}

// DecodeToolDescriptor decodes a single descriptor, keeping numbers as json.Number
// so the content round-trips exactly.
func DecodeToolDescriptor(raw json.RawMessage) (ToolDescriptor, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var d ToolDescriptor
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode tool descriptor: %w", err)
	}
	if d == nil {
		return nil, fmt.Errorf("decode tool descriptor: got %s", string(raw))
	}
	return d, nil
}

// ToArguments converts a typed argument record into the generic "arguments"
// mapping of a tools/call request. Fields omitted through omitempty/omitzero
// tags are absent from the result, never null. A nil record yields an empty map.
func ToArguments(v any) (map[string]any, error) {
	if v == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal arguments: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	args := map[string]any{}
	if err := dec.Decode(&args); err != nil {
		return nil, fmt.Errorf("arguments must encode to a JSON object: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
