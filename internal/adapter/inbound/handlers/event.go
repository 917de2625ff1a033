package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Event is an HTTP-triggered invocation. Body holds either a JSON object or a
// JSON string whose contents are the encoded object.
type Event struct {
	Body json.RawMessage `json:"body,omitempty"`
}

// Response is what a Handler returns: an HTTP status plus a JSON body string.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}

// EventFromString builds an Event whose body is the given JSON text.
func EventFromString(body string) Event {
	if body == "" {
		return Event{}
	}
	return Event{Body: json.RawMessage(body)}
}

// decodeBody returns the event body as a generic object. Empty, null and ""
// bodies decode to an empty object. Top-level null values are dropped so they
// read as absent.
func decodeBody(ev Event) (map[string]any, error) {
	raw := bytes.TrimSpace(ev.Body)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return map[string]any{}, nil
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("body: %w", err)
		}
		raw = bytes.TrimSpace([]byte(inner))
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			return map[string]any{}, nil
		}
	}

	if raw[0] != '{' {
		return nil, errors.New("body must be a JSON object")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("body: %w", err)
	}
	if dec.More() {
		return nil, errors.New("body: unexpected data after JSON object")
	}

	for k, v := range body {
		if v == nil {
			delete(body, k)
		}
	}
	return body, nil
}
