// Package controller wires the daemon's HTTP API.
package controller

import (
	"context"
	"net/http"
	"time"

	"runtimeplane/internal/config"
	"runtimeplane/internal/controller/handlers"
	"runtimeplane/internal/controller/middleware"
)

// Server is the HTTP server for the daemon API.
type Server struct {
	httpServer *http.Server
}

// New creates a new daemon server. metricsHandler may be nil when metrics
// are disabled.
func New(addr string, h *handlers.Handlers, cfg *config.Config, metricsHandler http.Handler) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	// Runtime lifecycle
	mux.HandleFunc("GET /runtimes", h.DetectRuntimes)
	mux.HandleFunc("POST /runtimes/validate", h.ValidateRuntime)
	mux.HandleFunc("POST /runtimes/{id}/start", h.StartRuntime)
	mux.HandleFunc("POST /runtimes/{id}/stop", h.StopRuntime)
	mux.HandleFunc("POST /runtimes/{id}/restart", h.RestartRuntime)
	mux.HandleFunc("GET /runtimes/{id}/status", h.RuntimeStatus)
	mux.HandleFunc("GET /runtimes/{id}/usage", h.RuntimeUsage)

	// Tracked processes
	mux.HandleFunc("POST /processes", h.SpawnProcess)
	mux.HandleFunc("POST /processes/{pid}/input", h.SendInput)
	mux.HandleFunc("DELETE /processes/{pid}", h.KillProcess)
	mux.HandleFunc("GET /processes/{pid}/output", h.ProcessOutput)
	mux.HandleFunc("GET /processes/{pid}/stream", h.StreamOutput)

	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(cfg.RateLimit, cfg.RateLimitBurst)(handler)
	handler = middleware.RequestIDMiddleware(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: handler,
			// Detection and probes shell out; give requests room beyond the
			// usual API timeouts.
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
	}
}

// Run starts the HTTP server. It blocks until the context is cancelled or
// the listener fails.
func (s *Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutDownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return s.Shutdown(shutDownCtx)
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
