// Package handlers contains HTTP handlers for the daemon API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"runtimeplane/internal/observability"
	"runtimeplane/internal/runtime"
	"runtimeplane/pkg/api"
)

// Manager is the slice of the lifecycle manager the handlers need.
type Manager interface {
	DetectAll(ctx context.Context) []runtime.DetectedRuntime
	Start(ctx context.Context, id, executablePath string, args []string, workDir string) (int, error)
	Stop(ctx context.Context, id string) error
	Restart(ctx context.Context, id string) (int, error)
	Status(ctx context.Context, id string) (runtime.Status, error)
	Usage(ctx context.Context, id string) (runtime.Usage, error)
	ValidateRuntimePath(ctx context.Context, path string) runtime.Info

	SpawnTracked(toolID, workDir string, args []string) int
	SendInput(pid int, input string) error
	Kill(pid int) error
	Output(pid int) (string, error)
	StreamOutput(pid int) []string
}

// Handlers holds all HTTP handlers and their dependencies.
type Handlers struct {
	manager Manager
	log     *slog.Logger
	ops     *observability.LifecycleCounter
}

// New creates a new Handlers instance. ops may be nil when metrics are not
// initialized.
func New(m Manager, log *slog.Logger, ops *observability.LifecycleCounter) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{manager: m, log: log, ops: ops}
}

// A helper function to write standard JSON responses.
func (h *Handlers) respondJson(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// A helper function to return consistent error messages.
func (h *Handlers) httpError(w http.ResponseWriter, message string, code int) {
	h.respondJson(w, code, api.ErrorResponse{
		Error: message,
		Code:  strconv.Itoa(code),
	})
}

// operationError maps the core error taxonomy onto HTTP statuses. Anything
// outside the sentinels is a failure of the external command or daemon the
// operation shelled out to.
func (h *Handlers) operationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, runtime.ErrNotFound):
		h.httpError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, runtime.ErrInvalidID):
		h.httpError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, runtime.ErrUnsupported):
		h.httpError(w, err.Error(), http.StatusNotImplemented)
	default:
		h.httpError(w, err.Error(), http.StatusBadGateway)
	}
}

// pidFromPath parses the {pid} path segment.
func pidFromPath(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("pid"))
}
