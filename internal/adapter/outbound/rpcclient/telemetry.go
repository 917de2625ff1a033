package rpcclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/i2y/mcpgw/internal/domain"
)

const instrumentationName = "github.com/i2y/mcpgw/internal/adapter/outbound/rpcclient"

// Outcome labels recorded on the calls counter.
const (
	outcomeOK        = "ok"
	outcomeTransport = "transport_error"
	outcomeRPC       = "rpc_error"
	outcomeMalformed = "malformed"
	outcomeError     = "error"
)

type instruments struct {
	tracer   trace.Tracer
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

// newInstruments builds the client's tracer and instruments. The global
// providers are no-ops unless the process installed an SDK.
func newInstruments(tp trace.TracerProvider, mp metric.MeterProvider) *instruments {
	meter := mp.Meter(instrumentationName)
	calls, err := meter.Int64Counter("mcpgw.rpc.calls",
		metric.WithDescription("JSON-RPC calls issued to the MCP gateway"))
	if err != nil {
		otel.Handle(err)
	}
	duration, err := meter.Float64Histogram("mcpgw.rpc.duration",
		metric.WithDescription("Duration of JSON-RPC calls to the MCP gateway"),
		metric.WithUnit("s"))
	if err != nil {
		otel.Handle(err)
	}
	return &instruments{
		tracer:   tp.Tracer(instrumentationName),
		calls:    calls,
		duration: duration,
	}
}

// start opens a client span for one call and returns a func that records the
// outcome and ends the span.
func (in *instruments) start(ctx context.Context, method, tool, id string) (context.Context, func(error)) {
	attrs := []attribute.KeyValue{
		attribute.String("rpc.system", "jsonrpc"),
		attribute.String("rpc.method", method),
	}
	if tool != "" {
		attrs = append(attrs, attribute.String("mcp.tool.name", tool))
	}
	ctx, span := in.tracer.Start(ctx, "mcp "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(append(attrs, attribute.String("rpc.jsonrpc.request_id", id))...))
	began := time.Now()

	return ctx, func(err error) {
		outcome := classify(err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		var rpcErr *domain.RPCError
		if errors.As(err, &rpcErr) {
			span.SetAttributes(attribute.Int("rpc.jsonrpc.error_code", rpcErr.Code))
		}
		span.End()

		opt := metric.WithAttributes(append(attrs, attribute.String("outcome", outcome))...)
		if in.calls != nil {
			in.calls.Add(ctx, 1, opt)
		}
		if in.duration != nil {
			in.duration.Record(ctx, time.Since(began).Seconds(), opt)
		}
	}
}

func classify(err error) string {
	var transportErr *domain.TransportError
	var rpcErr *domain.RPCError
	switch {
	case err == nil:
		return outcomeOK
	case errors.As(err, &transportErr):
		return outcomeTransport
	case errors.As(err, &rpcErr):
		return outcomeRPC
	case errors.Is(err, domain.ErrMalformedResponse):
		return outcomeMalformed
	default:
		return outcomeError
	}
}

func injectTraceHeaders(ctx context.Context, header http.Header) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(header))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
