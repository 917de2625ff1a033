package httpapi_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i2y/mcpgw/internal/adapter/inbound/handlers"
	"github.com/i2y/mcpgw/internal/adapter/inbound/httpapi"
	"github.com/i2y/mcpgw/internal/domain"
	"github.com/i2y/mcpgw/internal/usecase"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

type stubCaller struct {
	lastTool string
	lastArgs map[string]any
	err      error
}

func (s *stubCaller) CallTool(_ context.Context, name string, args map[string]any) (json.RawMessage, error) {
	s.lastTool, s.lastArgs = name, args
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(`{"content":[]}`), nil
}

func (s *stubCaller) ListTools(context.Context) ([]domain.ToolDescriptor, error) {
	return nil, nil
}

func newRouter(t *testing.T, caller *stubCaller) http.Handler {
	t.Helper()
	reg, err := handlers.NewRegistry(
		usecase.NewBrowserTools(caller, testLogger),
		usecase.NewCatalogTools(caller, testLogger),
		nil,
		testLogger,
	)
	require.NoError(t, err)
	return httpapi.NewRouter(reg, testLogger)
}

func TestRouter_Health(t *testing.T) {
	router := newRouter(t, &stubCaller{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(httpapi.RequestIDHeader))
}

func TestRouter_ListHandlers(t *testing.T) {
	router := newRouter(t, &stubCaller{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/handlers", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Handlers []struct {
			Name        string         `json:"name"`
			InputSchema map[string]any `json:"inputSchema"`
		} `json:"handlers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Handlers, 29)
	assert.Equal(t, "browser_click", out.Handlers[0].Name)
	assert.Equal(t, "object", out.Handlers[0].InputSchema["type"])
}

func TestRouter_InvokeHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		callerErr  error
		wantStatus int
		wantBody   string
		wantTool   string
	}{
		{
			name:       "success",
			path:       "/handlers/browser_navigate",
			body:       `{"url":"https://example.com"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"content":[]}`,
			wantTool:   "browser_navigate",
		},
		{
			name:       "validation failure",
			path:       "/handlers/browser_navigate",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "remote failure",
			path:       "/handlers/mcp_remove",
			body:       `{"name":"github"}`,
			callerErr:  &domain.RPCError{Code: -32000, Message: "server not found"},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"error":"MCP Error -32000: server not found","kind":"remote","code":-32000}`,
			wantTool:   "mcp-remove",
		},
		{
			name:       "unknown handler",
			path:       "/handlers/browser_teleport",
			body:       `{}`,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller := &stubCaller{err: tt.callerErr}
			router := newRouter(t, caller)

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set(httpapi.RequestIDHeader, "req-123")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, "req-123", rec.Header().Get(httpapi.RequestIDHeader))
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			assert.Equal(t, tt.wantTool, caller.lastTool)
		})
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := newRouter(t, &stubCaller{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/handlers/browser_snapshot", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRecovery(t *testing.T) {
	h := httpapi.Recovery(testLogger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error","kind":"internal"}`, rec.Body.String())
}

func TestRequestID_Generated(t *testing.T) {
	var seen string
	h := httpapi.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = httpapi.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(httpapi.RequestIDHeader))
}
