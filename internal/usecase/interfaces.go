package usecase

import (
	"context"
	"encoding/json"

	"github.com/i2y/mcpgw/internal/domain"
)

// ToolCaller is the port to the MCP gateway. rpcclient.Client implements it.
type ToolCaller interface {
	// CallTool invokes a remote tool with a generic argument mapping and
	// returns the raw "result" value.
	CallTool(ctx context.Context, name string, args map[string]any) (json.RawMessage, error)

	// ListTools returns the tool descriptors the gateway advertises.
	ListTools(ctx context.Context) ([]domain.ToolDescriptor, error)
}

// WebSearcher runs a web search and returns the provider's JSON response.
// It shares nothing with ToolCaller.
type WebSearcher interface {
	Search(ctx context.Context, query string) (json.RawMessage, error)
}
