package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	mcpGoServer "github.com/mark3labs/mcp-go/server"

	"github.com/i2y/mcpgw/internal/adapter/inbound/handlers"
)

// New creates an mcp-go server exposing every registry entry as an MCP tool.
// The tool's input schema is the entry's body schema.
func New(registry *handlers.Registry, name, version string, logger *slog.Logger) *mcpGoServer.MCPServer {
	logger = logger.With("component", "mcpserver")
	srv := mcpGoServer.NewMCPServer(name, version, mcpGoServer.WithToolCapabilities(false))

	for _, entry := range registry.Entries() {
		tool := mcp.NewToolWithRawSchema(entry.Name, entry.Description, entry.InputSchema())
		srv.AddTool(tool, ToolHandler(entry, logger))
	}
	logger.Info("Registered MCP tools", slog.Int("count", len(registry.Names())))
	return srv
}

// ToolHandler adapts a handler entry to an mcp-go tool handler. The shim's body
// becomes the text content; any non-200 status marks the result as an error.
func ToolHandler(entry *handlers.Entry, logger *slog.Logger) mcpGoServer.ToolHandlerFunc {
	log := logger.With(slog.String("tool_name", entry.Name))
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var body json.RawMessage
		if request.Params.Arguments != nil {
			raw, err := json.Marshal(request.Params.Arguments)
			if err != nil {
				log.Warn("Failed to encode tool arguments", slog.Any("error", err))
				return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
			}
			body = raw
		}

		resp := entry.Handle(ctx, handlers.Event{Body: body})
		if resp.StatusCode != http.StatusOK {
			log.Debug("Tool call failed", slog.Int("status", resp.StatusCode))
			return mcp.NewToolResultError(resp.Body), nil
		}
		return mcp.NewToolResultText(resp.Body), nil
	}
}
