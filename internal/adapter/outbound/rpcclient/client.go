package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/i2y/mcpgw/configs"
	"github.com/i2y/mcpgw/internal/domain"
	"github.com/i2y/mcpgw/pkg/shared/mcpjsonrpc"
)

const (
	// DefaultEndpoint is used when Config.Endpoint is empty.
	DefaultEndpoint = "http://localhost:8811"
	// DefaultTimeout is used when Config.Timeout is not positive.
	DefaultTimeout = 30 * time.Second

	toolsPath = "/mcp"
)

// Config is the gateway endpoint configuration. It is copied at construction
// and never changes afterwards.
type Config struct {
	Endpoint string
	Timeout  time.Duration
	// Headers are static headers sent with every request (e.g. auth).
	Headers map[string]string
}

// ToolsURL is the JSON-RPC endpoint: the configured endpoint plus "/mcp".
func (c Config) ToolsURL() string {
	return strings.TrimRight(c.Endpoint, "/") + toolsPath
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Endpoint) == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	headers := make(map[string]string, len(c.Headers))
	for k, v := range c.Headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		headers[k] = v
	}
	c.Headers = headers
	return c
}

// Client issues JSON-RPC "tools/call" and "tools/list" requests to an MCP gateway.
//
// A Client is Open from construction until Close; after that every call fails
// with domain.ErrClientClosed. It is safe for concurrent use.
type Client struct {
	cfg     Config
	http    *http.Client
	closed  atomic.Bool
	logger  *slog.Logger
	metrics *instruments
}

// Option configures optional Client dependencies.
type Option func(*options)

type options struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithTracerProvider sets the provider for client spans. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithMeterProvider sets the provider for call metrics. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// New creates a Client. When httpClient is nil the Client builds its own
// transport. Every call is bounded by cfg.Timeout whichever client is used.
// Close releases idle connections of the client in use, supplied or not.
func New(cfg Config, httpClient *http.Client, logger *slog.Logger, opts ...Option) *Client {
	cfg = cfg.withDefaults()
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		httpClient = &http.Client{Transport: transport, Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	o := options{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{
		cfg:     cfg,
		http:    httpClient,
		logger:  logger.With("component", "rpc_client", slog.String("url", cfg.ToolsURL())),
		metrics: newInstruments(o.tracerProvider, o.meterProvider),
	}
}

// NewFromEnv creates a Client configured from MCP_GATEWAY_URL and MCP_TIMEOUT.
func NewFromEnv(logger *slog.Logger) (*Client, error) {
	gw, err := configs.LoadGateway()
	if err != nil {
		return nil, err
	}
	return New(Config{Endpoint: gw.URL, Timeout: gw.Timeout(), Headers: gw.Headers}, nil, logger), nil
}

// Config returns the client's configuration.
func (c *Client) Config() Config { return c.cfg }

// CallTool invokes a remote tool and returns its "result" untouched.
//
// A response carrying neither "result" nor "error" is an empty success and
// yields {}. Failures are *domain.TransportError for non-2xx statuses,
// *domain.RPCError for JSON-RPC error objects, and domain.ErrMalformedResponse
// for bodies that are not a JSON-RPC response object.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &domain.ValidationError{Field: "name", Err: errors.New("tool name is required")}
	}
	if args == nil {
		args = map[string]any{}
	}
	resp, err := c.do(ctx, mcpjsonrpc.MethodToolsCall, name, mcpjsonrpc.ToolCallParams{Name: name, Arguments: args})
	if err != nil {
		return nil, err
	}
	if len(resp.Result) == 0 {
		return json.RawMessage(`{}`), nil
	}
	return resp.Result, nil
}

// ListTools returns the descriptors found at result.tools, in gateway order.
func (c *Client) ListTools(ctx context.Context) ([]domain.ToolDescriptor, error) {
	resp, err := c.do(ctx, mcpjsonrpc.MethodToolsList, "", map[string]any{})
	if err != nil {
		return nil, err
	}
	tools := []domain.ToolDescriptor{}
	if len(resp.Result) == 0 {
		return tools, nil
	}
	var result mcpjsonrpc.ListToolsResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, fmt.Errorf("%w: tools/list result: %w", domain.ErrMalformedResponse, err)
	}
	for i, raw := range result.Tools {
		d, err := domain.DecodeToolDescriptor(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: tool %d: %w", domain.ErrMalformedResponse, i, err)
		}
		tools = append(tools, d)
	}
	return tools, nil
}

// Close releases the transport. It is one-way; calling it again is a no-op.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.http.CloseIdleConnections()
	c.logger.Debug("Client closed")
	return nil
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool { return c.closed.Load() }

func (c *Client) do(ctx context.Context, method, tool string, params any) (resp *mcpjsonrpc.Response, err error) {
	if c.closed.Load() {
		return nil, domain.ErrClientClosed
	}

	id := uuid.NewString()
	log := c.logger.With(slog.String("method", method), slog.String("id", id))
	if tool != "" {
		log = log.With(slog.String("tool", tool))
	}

	ctx, finish := c.metrics.start(ctx, method, tool, id)
	defer func() { finish(err) }()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	payload, err := json.Marshal(mcpjsonrpc.Request{
		Version: mcpjsonrpc.Version,
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		log.Error("Failed to marshal request", slog.Any("error", err))
		return nil, fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ToolsURL(), bytes.NewReader(payload))
	if err != nil {
		log.Error("Failed to create HTTP request", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	injectTraceHeaders(ctx, req.Header)

	log.Debug("Sending JSON-RPC request", slog.Int("size", len(payload)))
	httpResp, err := c.http.Do(req)
	if err != nil {
		log.Error("HTTP request failed", slog.Any("error", err))
		return nil, fmt.Errorf("request execution failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		log.Error("Failed to read response body", slog.Any("error", err))
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log = log.With(slog.Int("status_code", httpResp.StatusCode))
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		log.Warn("Received non-success status code", slog.String("response_body", string(body)))
		return nil, &domain.TransportError{StatusCode: httpResp.StatusCode, Body: string(body)}
	}

	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || trimmed[0] != '{' {
		log.Error("Response body is not a JSON object", slog.String("response_body", string(body)))
		return nil, fmt.Errorf("%w: expected a JSON object, got %q", domain.ErrMalformedResponse, truncate(body, 64))
	}
	var out mcpjsonrpc.Response
	if err := json.Unmarshal(body, &out); err != nil {
		log.Error("Failed to decode JSON-RPC response", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}

	if out.Error != nil {
		rpcErr := &domain.RPCError{Code: -1, Message: "Unknown error", Data: out.Error.Data}
		if out.Error.Code != nil {
			rpcErr.Code = *out.Error.Code
		}
		if out.Error.Message != nil {
			rpcErr.Message = *out.Error.Message
		}
		log.Warn("Gateway returned JSON-RPC error", slog.Int("code", rpcErr.Code), slog.String("message", rpcErr.Message))
		return nil, rpcErr
	}

	log.Debug("Received JSON-RPC result", slog.Int("size", len(out.Result)))
	return &out, nil
}
