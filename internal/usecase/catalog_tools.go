package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/i2y/mcpgw/internal/domain"
)

// CatalogTools manages the gateway's MCP server catalog and session.
type CatalogTools struct {
	invoke *InvokeToolUseCase
}

// NewCatalogTools creates CatalogTools on top of caller.
func NewCatalogTools(caller ToolCaller, logger *slog.Logger) *CatalogTools {
	return &CatalogTools{invoke: NewInvokeToolUseCase(caller, logger.With("toolset", "catalog"))}
}

// Add adds a server to the session. The server must exist in the catalog.
func (c *CatalogTools) Add(ctx context.Context, args domain.AddServerArgs) (json.RawMessage, error) {
	return c.invoke.Execute(ctx, domain.ToolCatalogAdd, args)
}

// Remove removes a server from the registry.
func (c *CatalogTools) Remove(ctx context.Context, args domain.RemoveServerArgs) (json.RawMessage, error) {
	return c.invoke.Execute(ctx, domain.ToolCatalogRemove, args)
}

// Find searches the catalog by name, title or description.
func (c *CatalogTools) Find(ctx context.Context, args domain.FindServersArgs) (json.RawMessage, error) {
	return c.invoke.Execute(ctx, domain.ToolCatalogFind, args)
}

// Exec executes a tool that exists in the current session.
func (c *CatalogTools) Exec(ctx context.Context, args domain.ExecArgs) (json.RawMessage, error) {
	return c.invoke.Execute(ctx, domain.ToolCatalogExec, args)
}

// ConfigSet sets the configuration of a server.
func (c *CatalogTools) ConfigSet(ctx context.Context, args domain.ConfigSetArgs) (json.RawMessage, error) {
	return c.invoke.Execute(ctx, domain.ToolCatalogConfigSet, args)
}

// CreateProfile creates or updates a profile with the current gateway state.
func (c *CatalogTools) CreateProfile(ctx context.Context, args domain.CreateProfileArgs) (json.RawMessage, error) {
	return c.invoke.Execute(ctx, domain.ToolCatalogCreateProfile, args)
}

// CodeMode creates a JavaScript-enabled tool combining the tools of several servers.
func (c *CatalogTools) CodeMode(ctx context.Context, args domain.CodeModeArgs) (json.RawMessage, error) {
	return c.invoke.Execute(ctx, domain.ToolCodeMode, args)
}

// ListTools lists every tool the gateway advertises.
func (c *CatalogTools) ListTools(ctx context.Context) ([]domain.ToolDescriptor, error) {
	return c.invoke.ListTools(ctx)
}
