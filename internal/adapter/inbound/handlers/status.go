package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/i2y/mcpgw/internal/domain"
)

// Error kinds reported in failure bodies.
const (
	KindValidation  = "validation"
	KindRemote      = "remote"
	KindTransport   = "transport"
	KindTimeout     = "timeout"
	KindUnavailable = "unavailable"
	KindInternal    = "internal"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Code  *int   `json:"code,omitempty"`
}

// StatusFor maps an error to its HTTP status and kind. This is the only place
// where error kinds become status codes.
func StatusFor(err error) (int, string) {
	var valErr *domain.ValidationError
	var rpcErr *domain.RPCError
	var transportErr *domain.TransportError
	var netErr net.Error

	switch {
	case errors.As(err, &valErr):
		return http.StatusBadRequest, KindValidation
	case errors.As(err, &rpcErr):
		return http.StatusUnprocessableEntity, KindRemote
	case errors.As(err, &transportErr):
		return http.StatusBadGateway, KindTransport
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return http.StatusGatewayTimeout, KindTimeout
	case errors.Is(err, domain.ErrClientClosed):
		return http.StatusServiceUnavailable, KindUnavailable
	default:
		return http.StatusInternalServerError, KindInternal
	}
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

func success(result json.RawMessage) Response {
	body := string(result)
	if len(result) == 0 {
		body = "{}"
	}
	return Response{StatusCode: http.StatusOK, Headers: jsonHeaders(), Body: body}
}

func failure(err error) Response {
	status, kind := StatusFor(err)
	eb := errorBody{Error: err.Error(), Kind: kind}
	var rpcErr *domain.RPCError
	if errors.As(err, &rpcErr) {
		code := rpcErr.Code
		eb.Code = &code
	}
	body, mErr := json.Marshal(eb)
	if mErr != nil {
		body = []byte(`{"error":"internal error","kind":"internal"}`)
	}
	return Response{StatusCode: status, Headers: jsonHeaders(), Body: string(body)}
}
