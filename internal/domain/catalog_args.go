package domain

// Catalog management tool names. These are the gateway's own tools for
// managing which MCP servers are active in the session.
const (
	ToolCatalogAdd           = "mcp-add"
	ToolCatalogRemove        = "mcp-remove"
	ToolCatalogFind          = "mcp-find"
	ToolCatalogExec          = "mcp-exec"
	ToolCatalogConfigSet     = "mcp-config-set"
	ToolCatalogCreateProfile = "mcp-create-profile"
	ToolCodeMode             = "code-mode"
)

// AddServerArgs adds a catalog server to the session.
type AddServerArgs struct {
	Name     string `json:"name" jsonschema:"required"`
	Activate *bool  `json:"activate,omitempty"`
}

// RemoveServerArgs removes a server from the session.
type RemoveServerArgs struct {
	Name string `json:"name" jsonschema:"required"`
}

// FindServersArgs searches the catalog by name, title or description.
type FindServersArgs struct {
	Query string `json:"query" jsonschema:"required"`
	Limit *int   `json:"limit,omitempty"`
}

// ExecArgs executes a tool that exists in the current session.
type ExecArgs struct {
	Name      string         `json:"name" jsonschema:"required"`
	Arguments map[string]any `json:"arguments,omitzero"`
}

// ConfigSetArgs sets the configuration of a server. Config must not be nil.
type ConfigSetArgs struct {
	Server string         `json:"server" jsonschema:"required"`
	Config map[string]any `json:"config" jsonschema:"required"`
}

func (a ConfigSetArgs) Validate() error { return requireField("config", a.Config == nil) }

// CreateProfileArgs names the profile to create or update.
type CreateProfileArgs struct {
	Name string `json:"name" jsonschema:"required"`
}

// CodeModeArgs creates a JavaScript tool combining tools of several servers.
type CodeModeArgs struct {
	Servers []string `json:"servers" jsonschema:"required"`
	Name    string   `json:"name" jsonschema:"required"`
}

func (a CodeModeArgs) Validate() error { return requireField("servers", a.Servers == nil) }
