package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/i2y/mcpgw/internal/adapter/inbound/handlers"
)

// maxBodyBytes bounds handler request bodies.
const maxBodyBytes = 1 << 20

// NewRouter exposes the handler registry over plain HTTP.
func NewRouter(registry *handlers.Registry, logger *slog.Logger) *chi.Mux {
	logger = logger.With("component", "httpapi")
	h := &handlerAPI{registry: registry, logger: logger}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	r.Get("/health", h.health)
	r.Route("/handlers", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/{name}", h.invoke)
	})
	return r
}

type handlerAPI struct {
	registry *handlers.Registry
	logger   *slog.Logger
}

type handlerInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// health handles GET /health
func (h *handlerAPI) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// list handles GET /handlers
func (h *handlerAPI) list(w http.ResponseWriter, _ *http.Request) {
	entries := h.registry.Entries()
	out := make([]handlerInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, handlerInfo{Name: e.Name, Description: e.Description, InputSchema: e.InputSchema()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"handlers": out})
}

// invoke handles POST /handlers/{name}
func (h *handlerAPI) invoke(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	entry, ok := h.registry.Lookup(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown handler: " + name, "kind": "not_found"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("Failed to read request body", slog.String("handler", name), slog.Any("error", err))
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error(), "kind": handlers.KindValidation})
		return
	}

	resp := entry.Handle(r.Context(), handlers.Event{Body: body})
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.WriteString(w, resp.Body)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
