package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/i2y/mcpgw/internal/domain"
	"github.com/i2y/mcpgw/internal/usecase"
)

func ptr[T any](v T) *T { return &v }

// toolCase is one typed call and the request it must produce.
type toolCase struct {
	name     string
	call     func(ctx context.Context) (json.RawMessage, error)
	wantTool string
	wantArgs map[string]any
}

func runToolCases(t *testing.T, caller *MockToolCaller, cases []toolCase) {
	t.Helper()
	result := json.RawMessage(`{"ok":true}`)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			caller.ExpectedCalls = nil
			caller.Calls = nil
			caller.On("CallTool", mock.Anything, tc.wantTool, mock.Anything).Return(result, nil).Once()

			got, err := tc.call(context.Background())
			require.NoError(t, err)
			assert.JSONEq(t, string(result), string(got))

			caller.AssertExpectations(t)
			require.Len(t, caller.Calls, 1)
			assert.Equal(t, tc.wantArgs, caller.Calls[0].Arguments.Get(2))
		})
	}
}

func TestBrowserTools(t *testing.T) {
	caller := new(MockToolCaller)
	b := usecase.NewBrowserTools(caller, testLogger)

	cases := []toolCase{
		{
			name:     "navigate",
			call:     func(ctx context.Context) (json.RawMessage, error) { return b.Navigate(ctx, domain.NavigateArgs{URL: "https://example.com"}) },
			wantTool: "browser_navigate",
			wantArgs: map[string]any{"url": "https://example.com"},
		},
		{
			name:     "navigate back",
			call:     b.NavigateBack,
			wantTool: "browser_navigate_back",
			wantArgs: map[string]any{},
		},
		{
			name:     "close",
			call:     b.Close,
			wantTool: "browser_close",
			wantArgs: map[string]any{},
		},
		{
			name:     "tabs without index",
			call:     func(ctx context.Context) (json.RawMessage, error) { return b.Tabs(ctx, domain.TabsArgs{Action: "list"}) },
			wantTool: "browser_tabs",
			wantArgs: map[string]any{"action": "list"},
		},
		{
			name:     "tabs with index zero",
			call:     func(ctx context.Context) (json.RawMessage, error) { return b.Tabs(ctx, domain.TabsArgs{Action: "select", Index: ptr(0)}) },
			wantTool: "browser_tabs",
			wantArgs: map[string]any{"action": "select", "index": json.Number("0")},
		},
		{
			name: "click with all options",
			call: func(ctx context.Context) (json.RawMessage, error) {
				return b.Click(ctx, domain.ClickArgs{
					Element: "Submit", Ref: "e3", Button: ptr("right"), DoubleClick: ptr(true), Modifiers: []string{"Shift"},
				})
			},
			wantTool: "browser_click",
			wantArgs: map[string]any{"element": "Submit", "ref": "e3", "button": "right", "doubleClick": true, "modifiers": []any{"Shift"}},
		},
		{
			name:     "click minimal",
			call:     func(ctx context.Context) (json.RawMessage, error) { return b.Click(ctx, domain.ClickArgs{Element: "Submit", Ref: "e3"}) },
			wantTool: "browser_click",
			wantArgs: map[string]any{"element": "Submit", "ref": "e3"},
		},
		{
			name: "type",
			call: func(ctx context.Context) (json.RawMessage, error) {
				return b.Type(ctx, domain.TypeArgs{Element: "Search", Ref: "e1", Text: "golang", Submit: ptr(true)})
			},
			wantTool: "browser_type",
			wantArgs: map[string]any{"element": "Search", "ref": "e1", "text": "golang", "submit": true},
		},
		{
			name:     "hover",
			call:     func(ctx context.Context) (json.RawMessage, error) { return b.Hover(ctx, domain.HoverArgs{Element: "Menu", Ref: "e9"}) },
			wantTool: "browser_hover",
			wantArgs: map[string]any{"element": "Menu", "ref": "e9"},
		},
		{
			name: "drag",
			call: func(ctx context.Context) (json.RawMessage, error) {
				return b.Drag(ctx, domain.DragArgs{StartElement: "Card", StartRef: "e1", EndElement: "Done", EndRef: "e2"})
			},
			wantTool: "browser_drag",
			wantArgs: map[string]any{"startElement": "Card", "startRef": "e1", "endElement": "Done", "endRef": "e2"},
		},
		{
			name: "fill form",
			call: func(ctx context.Context) (json.RawMessage, error) {
				return b.FillForm(ctx, domain.FillFormArgs{Fields: []domain.FormField{
					{Name: "Email", Ref: "e4", Type: "textbox", Value: "a@b.c"},
				}})
			},
			wantTool: "browser_fill_form",
			wantArgs: map[string]any{"fields": []any{
				map[string]any{"name": "Email", "ref": "e4", "type": "textbox", "value": "a@b.c"},
			}},
		},
		{
			name: "select option",
			call: func(ctx context.Context) (json.RawMessage, error) {
				return b.SelectOption(ctx, domain.SelectOptionArgs{Element: "Country", Ref: "e5", Values: []string{"MX"}})
			},
			wantTool: "browser_select_option",
			wantArgs: map[string]any{"element": "Country", "ref": "e5", "values": []any{"MX"}},
		},
		{
			name:     "press key",
			call:     func(ctx context.Context) (json.RawMessage, error) { return b.PressKey(ctx, domain.PressKeyArgs{Key: "Enter"}) },
			wantTool: "browser_press_key",
			wantArgs: map[string]any{"key": "Enter"},
		},
		{
			name:     "snapshot",
			call:     b.Snapshot,
			wantTool: "browser_snapshot",
			wantArgs: map[string]any{},
		},
		{
			name:     "screenshot without options",
			call:     func(ctx context.Context) (json.RawMessage, error) { return b.TakeScreenshot(ctx, domain.TakeScreenshotArgs{}) },
			wantTool: "browser_take_screenshot",
			wantArgs: map[string]any{},
		},
		{
			name: "screenshot full page jpeg",
			call: func(ctx context.Context) (json.RawMessage, error) {
				return b.TakeScreenshot(ctx, domain.TakeScreenshotArgs{Filename: ptr("page.jpg"), FullPage: ptr(true), ImageType: ptr("jpeg")})
			},
			wantTool: "browser_take_screenshot",
			wantArgs: map[string]any{"filename": "page.jpg", "fullPage": true, "type": "jpeg"},
		},
		{
			name: "evaluate",
			call: func(ctx context.Context) (json.RawMessage, error) {
				return b.Evaluate(ctx, domain.EvaluateArgs{Function: "() => document.title"})
			},
			wantTool: "browser_evaluate",
			wantArgs: map[string]any{"function": "() => document.title"},
		},
		{
			name:     "run code",
			call:     func(ctx context.Context) (json.RawMessage, error) { return b.RunCode(ctx, domain.RunCodeArgs{Code: "await page.reload()"}) },
			wantTool: "browser_run_code",
			wantArgs: map[string]any{"code": "await page.reload()"},
		},
		{
			name:     "resize",
			call:     func(ctx context.Context) (json.RawMessage, error) { return b.Resize(ctx, domain.ResizeArgs{Width: 1280, Height: 720}) },
			wantTool: "browser_resize",
			wantArgs: map[string]any{"width": json.Number("1280"), "height": json.Number("720")},
		},
		{
			name: "console messages only errors false",
			call: func(ctx context.Context) (json.RawMessage, error) {
				return b.ConsoleMessages(ctx, domain.ConsoleMessagesArgs{OnlyErrors: ptr(false)})
			},
			wantTool: "browser_console_messages",
			wantArgs: map[string]any{"onlyErrors": false},
		},
		{
			name:     "network requests",
			call:     b.NetworkRequests,
			wantTool: "browser_network_requests",
			wantArgs: map[string]any{},
		},
		{
			name: "wait for",
			call: func(ctx context.Context) (json.RawMessage, error) {
				return b.WaitFor(ctx, domain.WaitForArgs{TextGone: ptr("Loading"), Time: ptr(1.5)})
			},
			wantTool: "browser_wait_for",
			wantArgs: map[string]any{"textGone": "Loading", "time": json.Number("1.5")},
		},
		{
			name: "handle dialog",
			call: func(ctx context.Context) (json.RawMessage, error) {
				return b.HandleDialog(ctx, domain.HandleDialogArgs{Accept: false})
			},
			wantTool: "browser_handle_dialog",
			wantArgs: map[string]any{"accept": false},
		},
		{
			name:     "file upload cancel",
			call:     func(ctx context.Context) (json.RawMessage, error) { return b.FileUpload(ctx, domain.FileUploadArgs{}) },
			wantTool: "browser_file_upload",
			wantArgs: map[string]any{},
		},
		{
			name: "file upload paths",
			call: func(ctx context.Context) (json.RawMessage, error) {
				return b.FileUpload(ctx, domain.FileUploadArgs{Paths: []string{"/tmp/a.txt"}})
			},
			wantTool: "browser_file_upload",
			wantArgs: map[string]any{"paths": []any{"/tmp/a.txt"}},
		},
		{
			name:     "install",
			call:     b.Install,
			wantTool: "browser_install",
			wantArgs: map[string]any{},
		},
	}

	runToolCases(t, caller, cases)
}

func TestBrowserTools_PropagatesErrors(t *testing.T) {
	caller := new(MockToolCaller)
	transportErr := &domain.TransportError{StatusCode: 503, Body: "down"}
	caller.On("CallTool", mock.Anything, "browser_snapshot", map[string]any{}).Return(nil, transportErr).Once()

	_, err := usecase.NewBrowserTools(caller, testLogger).Snapshot(context.Background())
	var got *domain.TransportError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 503, got.StatusCode)
}
