package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/i2y/mcpgw/internal/domain"
	"github.com/i2y/mcpgw/internal/usecase"
)

// Handler turns one Event into one Response. It never panics on bad input and
// never returns an error; failures are encoded in the Response.
type Handler func(ctx context.Context, ev Event) Response

// Entry is one named handler with the schema of the body it accepts.
type Entry struct {
	Name        string
	Description string
	Handle      Handler

	schema *argSchema
}

// InputSchema returns the JSON Schema of the handler's body.
func (e *Entry) InputSchema() json.RawMessage {
	return e.schema.raw
}

// Registry holds the handlers by name.
type Registry struct {
	entries map[string]*Entry
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns the registered handler names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns every entry ordered by name.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, 0, len(r.entries))
	for _, name := range r.Names() {
		out = append(out, r.entries[name])
	}
	return out
}

// Invoke runs the handler registered under name. ok is false for unknown names.
func (r *Registry) Invoke(ctx context.Context, name string, ev Event) (resp Response, ok bool) {
	e, ok := r.entries[name]
	if !ok {
		return Response{}, false
	}
	return e.Handle(ctx, ev), true
}

func (r *Registry) add(e *Entry, err error) error {
	if err != nil {
		return err
	}
	if _, dup := r.entries[e.Name]; dup {
		return fmt.Errorf("handler %s registered twice", e.Name)
	}
	r.entries[e.Name] = e
	return nil
}

// bind builds the handler for a typed tool function: decode the body, drop
// nulls, validate against A's schema, decode into A, call fn.
func bind[A any](logger *slog.Logger, name, description string, fn func(context.Context, A) (json.RawMessage, error)) (*Entry, error) {
	schema, err := reflectArgSchema[A]()
	if err != nil {
		return nil, fmt.Errorf("handler %s: %w", name, err)
	}
	log := logger.With(slog.String("handler", name))

	handle := func(ctx context.Context, ev Event) Response {
		args, err := decodeArgs[A](schema, ev)
		if err != nil {
			log.Warn("Rejected handler input", slog.Any("error", err))
			return failure(err)
		}
		result, err := fn(ctx, args)
		if err != nil {
			status, kind := StatusFor(err)
			log.Error("Handler failed", slog.Int("status", status), slog.String("kind", kind), slog.Any("error", err))
			return failure(err)
		}
		return success(result)
	}
	return &Entry{Name: name, Description: description, Handle: handle, schema: schema}, nil
}

func bindNoArgs(logger *slog.Logger, name, description string, fn func(context.Context) (json.RawMessage, error)) (*Entry, error) {
	return bind(logger, name, description, func(ctx context.Context, _ domain.NoArgs) (json.RawMessage, error) {
		return fn(ctx)
	})
}

func decodeArgs[A any](schema *argSchema, ev Event) (A, error) {
	var args A
	body, err := decodeBody(ev)
	if err != nil {
		return args, &domain.ValidationError{Err: err}
	}
	if err := schema.validate(body); err != nil {
		return args, &domain.ValidationError{Err: err}
	}
	data, err := json.Marshal(body)
	if err != nil {
		return args, &domain.ValidationError{Err: err}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&args); err != nil {
		return args, &domain.ValidationError{Err: err}
	}
	return args, nil
}

// NewRegistry registers the browser and catalog handlers. A non-nil searcher
// also registers web_search.
func NewRegistry(browser *usecase.BrowserTools, catalog *usecase.CatalogTools, searcher usecase.WebSearcher, logger *slog.Logger) (*Registry, error) {
	logger = logger.With("component", "handlers")
	r := &Registry{entries: map[string]*Entry{}}

	var firstErr error
	reg := func(e *Entry, err error) {
		if firstErr == nil {
			firstErr = r.add(e, err)
		}
	}

	reg(bind(logger, "browser_navigate", "Navigate to a URL.", browser.Navigate))
	reg(bindNoArgs(logger, "browser_navigate_back", "Go back to the previous page.", browser.NavigateBack))
	reg(bindNoArgs(logger, "browser_close", "Close the page.", browser.Close))
	reg(bind(logger, "browser_tabs", "List, create, close, or select a browser tab.", browser.Tabs))
	reg(bind(logger, "browser_click", "Perform click on a web page.", browser.Click))
	reg(bind(logger, "browser_type", "Type text into editable element.", browser.Type))
	reg(bind(logger, "browser_hover", "Hover over element on page.", browser.Hover))
	reg(bind(logger, "browser_drag", "Perform drag and drop between two elements.", browser.Drag))
	reg(bind(logger, "browser_fill_form", "Fill multiple form fields.", browser.FillForm))
	reg(bind(logger, "browser_select_option", "Select an option in a dropdown.", browser.SelectOption))
	reg(bind(logger, "browser_press_key", "Press a key on the keyboard.", browser.PressKey))
	reg(bindNoArgs(logger, "browser_snapshot", "Capture accessibility snapshot of the current page.", browser.Snapshot))
	reg(bind(logger, "browser_take_screenshot", "Take a screenshot of the current page.", browser.TakeScreenshot))
	reg(bind(logger, "browser_evaluate", "Evaluate JavaScript expression on page or element.", browser.Evaluate))
	reg(bind(logger, "browser_run_code", "Run a Playwright code snippet.", browser.RunCode))
	reg(bind(logger, "browser_resize", "Resize the browser window.", browser.Resize))
	reg(bind(logger, "browser_console_messages", "Returns all console messages.", browser.ConsoleMessages))
	reg(bindNoArgs(logger, "browser_network_requests", "Returns all network requests since loading the page.", browser.NetworkRequests))
	reg(bind(logger, "browser_wait_for", "Wait for text to appear or disappear or a specified time to pass.", browser.WaitFor))
	reg(bind(logger, "browser_handle_dialog", "Handle a dialog.", browser.HandleDialog))
	reg(bind(logger, "browser_file_upload", "Upload one or multiple files.", browser.FileUpload))
	reg(bindNoArgs(logger, "browser_install", "Install the browser specified in the config.", browser.Install))

	reg(bind(logger, "mcp_add", "Add a catalog server to the session.", catalog.Add))
	reg(bind(logger, "mcp_remove", "Remove a server from the session.", catalog.Remove))
	reg(bind(logger, "mcp_find", "Find servers in the catalog.", catalog.Find))
	reg(bind(logger, "mcp_exec", "Execute a tool in the current session.", catalog.Exec))
	reg(bind(logger, "mcp_config_set", "Set the configuration of a server.", catalog.ConfigSet))
	reg(bind(logger, "mcp_create_profile", "Create or update a profile from the current gateway state.", catalog.CreateProfile))
	reg(bind(logger, "code_mode", "Create a JavaScript tool that combines tools from several servers.", catalog.CodeMode))

	if searcher != nil {
		reg(bind(logger, "web_search", "Search the web.", func(ctx context.Context, args domain.WebSearchArgs) (json.RawMessage, error) {
			return searcher.Search(ctx, args.Query)
		}))
	}

	if firstErr != nil {
		return nil, firstErr
	}
	logger.Info("Handler registry ready", slog.Int("count", len(r.entries)))
	return r, nil
}
