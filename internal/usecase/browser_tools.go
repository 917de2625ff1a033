package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/i2y/mcpgw/internal/domain"
)

// BrowserTools exposes the gateway's browser automation tools as typed calls.
type BrowserTools struct {
	invoke *InvokeToolUseCase
}

// NewBrowserTools creates BrowserTools on top of caller.
func NewBrowserTools(caller ToolCaller, logger *slog.Logger) *BrowserTools {
	return &BrowserTools{invoke: NewInvokeToolUseCase(caller, logger.With("toolset", "browser"))}
}

// Navigate opens url in the current page.
func (b *BrowserTools) Navigate(ctx context.Context, args domain.NavigateArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserNavigate, args)
}

// NavigateBack goes back to the previous page.
func (b *BrowserTools) NavigateBack(ctx context.Context) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserNavigateBack, domain.NoArgs{})
}

// Close closes the current page.
func (b *BrowserTools) Close(ctx context.Context) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserClose, domain.NoArgs{})
}

// Tabs lists, creates, closes or selects a tab.
func (b *BrowserTools) Tabs(ctx context.Context, args domain.TabsArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserTabs, args)
}

// Click clicks an element, optionally with a modifier or a double click.
func (b *BrowserTools) Click(ctx context.Context, args domain.ClickArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserClick, args)
}

// Type types text into an editable element.
func (b *BrowserTools) Type(ctx context.Context, args domain.TypeArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserType, args)
}

// Hover hovers over an element.
func (b *BrowserTools) Hover(ctx context.Context, args domain.HoverArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserHover, args)
}

// Drag drags from one element and drops on another.
func (b *BrowserTools) Drag(ctx context.Context, args domain.DragArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserDrag, args)
}

// FillForm fills several form fields in one call.
func (b *BrowserTools) FillForm(ctx context.Context, args domain.FillFormArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserFillForm, args)
}

// SelectOption selects values in a dropdown.
func (b *BrowserTools) SelectOption(ctx context.Context, args domain.SelectOptionArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserSelectOption, args)
}

// PressKey presses a key on the keyboard.
func (b *BrowserTools) PressKey(ctx context.Context, args domain.PressKeyArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserPressKey, args)
}

// Snapshot captures the accessibility snapshot of the current page.
func (b *BrowserTools) Snapshot(ctx context.Context) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserSnapshot, domain.NoArgs{})
}

// TakeScreenshot captures the page, or one element when Element/Ref are set.
func (b *BrowserTools) TakeScreenshot(ctx context.Context, args domain.TakeScreenshotArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserTakeScreenshot, args)
}

// Evaluate runs a JavaScript function on the page or on one element.
func (b *BrowserTools) Evaluate(ctx context.Context, args domain.EvaluateArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserEvaluate, args)
}

// RunCode runs a Playwright snippet against the current page.
func (b *BrowserTools) RunCode(ctx context.Context, args domain.RunCodeArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserRunCode, args)
}

// Resize resizes the browser window.
func (b *BrowserTools) Resize(ctx context.Context, args domain.ResizeArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserResize, args)
}

// ConsoleMessages returns the page's console messages.
func (b *BrowserTools) ConsoleMessages(ctx context.Context, args domain.ConsoleMessagesArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserConsoleMessages, args)
}

// NetworkRequests returns every network request since the page loaded.
func (b *BrowserTools) NetworkRequests(ctx context.Context) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserNetworkRequests, domain.NoArgs{})
}

// WaitFor waits for text to appear or disappear, or for a number of seconds.
func (b *BrowserTools) WaitFor(ctx context.Context, args domain.WaitForArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserWaitFor, args)
}

// HandleDialog accepts or dismisses an alert, confirm or prompt.
func (b *BrowserTools) HandleDialog(ctx context.Context, args domain.HandleDialogArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserHandleDialog, args)
}

// FileUpload uploads files to the open chooser, or cancels it when no paths are given.
func (b *BrowserTools) FileUpload(ctx context.Context, args domain.FileUploadArgs) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserFileUpload, args)
}

// Install installs the browser named in the gateway's configuration.
func (b *BrowserTools) Install(ctx context.Context) (json.RawMessage, error) {
	return b.invoke.Execute(ctx, domain.ToolBrowserInstall, domain.NoArgs{})
}

// ListTools lists every tool the gateway advertises.
func (b *BrowserTools) ListTools(ctx context.Context) ([]domain.ToolDescriptor, error) {
	return b.invoke.ListTools(ctx)
}
