// Package transport serves the ops listener: health, metrics and JSON-RPC
// access to the tool handler.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/projectboard/internal/state"
)

// ToolHandler dispatches tool calls by name.
type ToolHandler interface {
	Handle(ctx context.Context, method string, params json.RawMessage) (any, error)
}

// SnapshotSource reports the current controller state.
type SnapshotSource interface {
	Snapshot() state.Snapshot
}

// Options configures the router. Nil members disable their route.
type Options struct {
	Handler ToolHandler
	State   SnapshotSource
	Metrics http.Handler
	Token   string
	Logger  *slog.Logger
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Projects int    `json:"projects"`
	Loading  bool   `json:"loading"`
	Error    string `json:"error,omitempty"`
}

// Server wires HTTP handlers.
type Server struct {
	handler ToolHandler
	state   SnapshotSource
}

// NewServer creates the ops router. /health is always unauthenticated;
// /metrics and /rpc require the bearer token when one is configured.
func NewServer(opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	srv := &Server{handler: opts.Handler, state: opts.State}
	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(opts.Token))
		if opts.Metrics != nil {
			r.Method(http.MethodGet, "/metrics", opts.Metrics)
		}
		if opts.Handler != nil {
			r.Post("/rpc", srv.handleRPC)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if s.state != nil {
		snap := s.state.Snapshot()
		resp.Projects = len(snap.Projects)
		resp.Loading = snap.Loading
		if msg := snap.ErrorMessage(); msg != "" {
			resp.Status = "degraded"
			resp.Error = msg
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		WriteError(w, nil, ErrInvalidReq, "invalid request", nil)
		return
	}

	result, err := s.handler.Handle(r.Context(), req.Method, req.Params)
	if err != nil {
		WriteHandlerError(w, req.ID, err)
		return
	}

	WriteResult(w, req.ID, result)
}
