package domain

// Argument records for the browser automation tools exposed by the gateway.
// Optional scalars are pointers with omitempty; optional lists use omitzero so
// an explicitly empty list is still sent. Keys match the gateway's names.

// Browser tool names.
const (
	ToolBrowserNavigate        = "browser_navigate"
	ToolBrowserNavigateBack    = "browser_navigate_back"
	ToolBrowserClose           = "browser_close"
	ToolBrowserTabs            = "browser_tabs"
	ToolBrowserClick           = "browser_click"
	ToolBrowserType            = "browser_type"
	ToolBrowserHover           = "browser_hover"
	ToolBrowserDrag            = "browser_drag"
	ToolBrowserFillForm        = "browser_fill_form"
	ToolBrowserSelectOption    = "browser_select_option"
	ToolBrowserPressKey        = "browser_press_key"
	ToolBrowserSnapshot        = "browser_snapshot"
	ToolBrowserTakeScreenshot  = "browser_take_screenshot"
	ToolBrowserEvaluate        = "browser_evaluate"
	ToolBrowserRunCode         = "browser_run_code"
	ToolBrowserResize          = "browser_resize"
	ToolBrowserConsoleMessages = "browser_console_messages"
	ToolBrowserNetworkRequests = "browser_network_requests"
	ToolBrowserWaitFor         = "browser_wait_for"
	ToolBrowserHandleDialog    = "browser_handle_dialog"
	ToolBrowserFileUpload      = "browser_file_upload"
	ToolBrowserInstall         = "browser_install"
)

// NoArgs is the argument record of tools that take no parameters.
type NoArgs struct{}

// NavigateArgs opens URL in the current page.
type NavigateArgs struct {
	URL string `json:"url" jsonschema:"required,description=URL to navigate to"`
}

// TabsArgs lists, creates, closes or selects a tab. Index is used by close/select.
type TabsArgs struct {
	Action string `json:"action" jsonschema:"required,enum=list,enum=new,enum=close,enum=select"`
	Index  *int   `json:"index,omitempty"`
}

// ClickArgs clicks an element identified by its snapshot ref.
type ClickArgs struct {
	Element     string   `json:"element" jsonschema:"required,description=Human-readable element description"`
	Ref         string   `json:"ref" jsonschema:"required,description=Exact target element reference from the page snapshot"`
	Button      *string  `json:"button,omitempty" jsonschema:"enum=left,enum=right,enum=middle"`
	DoubleClick *bool    `json:"doubleClick,omitempty"`
	Modifiers   []string `json:"modifiers,omitzero"`
}

// TypeArgs types Text into an editable element. Submit presses Enter afterwards.
type TypeArgs struct {
	Element string `json:"element" jsonschema:"required"`
	Ref     string `json:"ref" jsonschema:"required"`
	Text    string `json:"text" jsonschema:"required"`
	Slowly  *bool  `json:"slowly,omitempty"`
	Submit  *bool  `json:"submit,omitempty"`
}

// HoverArgs hovers over an element.
type HoverArgs struct {
	Element string `json:"element" jsonschema:"required"`
	Ref     string `json:"ref" jsonschema:"required"`
}

// DragArgs drags the start element and drops it on the end element.
type DragArgs struct {
	StartElement string `json:"startElement" jsonschema:"required"`
	StartRef     string `json:"startRef" jsonschema:"required"`
	EndElement   string `json:"endElement" jsonschema:"required"`
	EndRef       string `json:"endRef" jsonschema:"required"`
}

// FormField is one entry of FillFormArgs.
type FormField struct {
	Name  string `json:"name" jsonschema:"required"`
	Ref   string `json:"ref" jsonschema:"required"`
	Type  string `json:"type" jsonschema:"required,enum=textbox,enum=checkbox,enum=radio,enum=combobox,enum=slider"`
	Value string `json:"value" jsonschema:"required"`
}

// FillFormArgs fills several form fields at once. Fields must not be nil.
type FillFormArgs struct {
	Fields []FormField `json:"fields" jsonschema:"required"`
}

func (a FillFormArgs) Validate() error { return requireField("fields", a.Fields == nil) }

// SelectOptionArgs selects Values in a dropdown. Values must not be nil.
type SelectOptionArgs struct {
	Element string   `json:"element" jsonschema:"required"`
	Ref     string   `json:"ref" jsonschema:"required"`
	Values  []string `json:"values" jsonschema:"required"`
}

func (a SelectOptionArgs) Validate() error { return requireField("values", a.Values == nil) }

// PressKeyArgs presses a key such as "ArrowLeft", "Enter" or "a".
type PressKeyArgs struct {
	Key string `json:"key" jsonschema:"required"`
}

// TakeScreenshotArgs captures the viewport, the full page, or one element.
type TakeScreenshotArgs struct {
	Element   *string `json:"element,omitempty"`
	Ref       *string `json:"ref,omitempty"`
	Filename  *string `json:"filename,omitempty"`
	FullPage  *bool   `json:"fullPage,omitempty"`
	ImageType *string `json:"type,omitempty" jsonschema:"enum=png,enum=jpeg"`
}

// EvaluateArgs runs Function, e.g. "() => { ... }" or "(element) => { ... }".
type EvaluateArgs struct {
	Function string  `json:"function" jsonschema:"required"`
	Element  *string `json:"element,omitempty"`
	Ref      *string `json:"ref,omitempty"`
}

// RunCodeArgs runs a Playwright snippet that accesses the page object.
type RunCodeArgs struct {
	Code string `json:"code" jsonschema:"required"`
}

// ResizeArgs sets the browser window size in pixels.
type ResizeArgs struct {
	Width  int `json:"width" jsonschema:"required"`
	Height int `json:"height" jsonschema:"required"`
}

// ConsoleMessagesArgs filters console output.
type ConsoleMessagesArgs struct {
	OnlyErrors *bool `json:"onlyErrors,omitempty"`
}

// WaitForArgs waits for text to appear or disappear, or for Time seconds.
type WaitForArgs struct {
	Text     *string  `json:"text,omitempty"`
	TextGone *string  `json:"textGone,omitempty"`
	Time     *float64 `json:"time,omitempty"`
}

// HandleDialogArgs accepts or dismisses the open dialog. PromptText answers a prompt.
type HandleDialogArgs struct {
	Accept     bool    `json:"accept" jsonschema:"required"`
	PromptText *string `json:"promptText,omitempty"`
}

// FileUploadArgs uploads Paths. Omitting Paths cancels the file chooser.
type FileUploadArgs struct {
	Paths []string `json:"paths,omitzero"`
}
