package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/bufkit-ingest-service/internal/catalog"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and parameter catalog HTTP endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /params routes.
func NewServer(addr string, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /params", handleParams)
	mux.HandleFunc("GET /params/{mnemonic}", handleParamLookup)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// paramSection is one section of the /params response.
type paramSection struct {
	Section    catalog.Section     `json:"section"`
	Parameters []catalog.Parameter `json:"parameters"`
}

// handleParams serves the full parameter catalog, grouped by section in
// file order.
func handleParams(w http.ResponseWriter, _ *http.Request) {
	sections := catalog.Sections()
	body := make([]paramSection, 0, len(sections))
	for _, sec := range sections {
		body = append(body, paramSection{Section: sec, Parameters: sec.Parameters()})
	}
	writeJSON(w, http.StatusOK, body)
}

// handleParamLookup serves a single parameter definition by mnemonic.
func handleParamLookup(w http.ResponseWriter, r *http.Request) {
	mnemonic := r.PathValue("mnemonic")
	param, section, ok := catalog.Lookup(mnemonic)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "unknown mnemonic: " + mnemonic,
		})
		return
	}
	writeJSON(w, http.StatusOK, struct {
		catalog.Parameter
		Section catalog.Section `json:"section"`
	}{Parameter: param, Section: section})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
