package handlers

import (
	"encoding/json"
	"net/http"

	"runtimeplane/internal/logger"
	"runtimeplane/pkg/api"
)

// DetectRuntimes handles GET /runtimes.
// It runs a full detection pass over the host and the Docker daemon.
func (h *Handlers) DetectRuntimes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	found := h.manager.DetectAll(ctx)

	resp := api.DetectResponse{Runtimes: make([]api.RuntimeResponse, 0, len(found))}
	for _, rt := range found {
		resp.Runtimes = append(resp.Runtimes, api.RuntimeResponse{
			ID:             rt.ID,
			Name:           rt.Name,
			RuntimeType:    string(rt.Kind),
			ExecutablePath: rt.ExecutablePath,
			Version:        rt.Version,
			AutoDetected:   rt.AutoDetected,
		})
	}

	logger.FromContext(ctx, h.log).Info("detection pass completed", "count", len(found))
	h.respondJson(w, http.StatusOK, resp)
}

// StartRuntime handles POST /runtimes/{id}/start.
func (h *Handlers) StartRuntime(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	var req api.StartRuntimeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.httpError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	pid, err := h.manager.Start(ctx, id, req.ExecutablePath, req.Args, req.WorkingDir)
	h.ops.Record(ctx, "start_runtime", err == nil)
	if err != nil {
		logger.FromContext(ctx, h.log).Error("start failed", "runtime_id", id, "error", err)
		h.operationError(w, err)
		return
	}

	h.respondJson(w, http.StatusOK, api.StartRuntimeResponse{PID: pid})
}

// StopRuntime handles POST /runtimes/{id}/stop.
func (h *Handlers) StopRuntime(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	err := h.manager.Stop(ctx, id)
	h.ops.Record(ctx, "stop_runtime", err == nil)
	if err != nil {
		h.operationError(w, err)
		return
	}

	h.respondJson(w, http.StatusOK, map[string]string{"status": "stopped"})
}

// RestartRuntime handles POST /runtimes/{id}/restart.
func (h *Handlers) RestartRuntime(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	pid, err := h.manager.Restart(ctx, id)
	h.ops.Record(ctx, "restart_runtime", err == nil)
	if err != nil {
		logger.FromContext(ctx, h.log).Error("restart failed", "runtime_id", id, "error", err)
		h.operationError(w, err)
		return
	}

	h.respondJson(w, http.StatusOK, api.StartRuntimeResponse{PID: pid})
}

// RuntimeStatus handles GET /runtimes/{id}/status.
func (h *Handlers) RuntimeStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	status, err := h.manager.Status(ctx, id)
	if err != nil {
		h.operationError(w, err)
		return
	}

	h.respondJson(w, http.StatusOK, api.StatusResponse{
		Status:        status.State,
		Version:       status.Version,
		UptimeSeconds: status.UptimeSeconds,
		Port:          status.Port,
		Error:         status.Error,
	})
}

// RuntimeUsage handles GET /runtimes/{id}/usage.
func (h *Handlers) RuntimeUsage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	usage, err := h.manager.Usage(ctx, id)
	if err != nil {
		h.operationError(w, err)
		return
	}

	h.respondJson(w, http.StatusOK, api.UsageResponse{
		MemoryMB:   usage.MemoryMB,
		VRAMMB:     usage.VRAMMB,
		CPUPercent: usage.CPUPercent,
	})
}

// ValidateRuntime handles POST /runtimes/validate.
func (h *Handlers) ValidateRuntime(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ValidatePathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		h.httpError(w, "Path is required", http.StatusBadRequest)
		return
	}

	info := h.manager.ValidateRuntimePath(ctx, req.Path)
	h.respondJson(w, http.StatusOK, api.ValidatePathResponse{
		Valid:        info.Valid,
		Version:      info.Version,
		Capabilities: info.Capabilities,
	})
}
