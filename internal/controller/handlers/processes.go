package handlers

import (
	"encoding/json"
	"net/http"

	"runtimeplane/internal/logger"
	"runtimeplane/pkg/api"
)

// SpawnProcess handles POST /processes.
// It registers a tracked process slot and returns its handle.
func (h *Handlers) SpawnProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SpawnProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ToolID == "" {
		h.httpError(w, "tool_id is required", http.StatusBadRequest)
		return
	}

	pid := h.manager.SpawnTracked(req.ToolID, req.WorkingDir, req.Args)
	logger.FromContext(ctx, h.log).Info("tracked process registered",
		"pid", pid, "tool_id", req.ToolID)

	h.respondJson(w, http.StatusCreated, api.SpawnProcessResponse{PID: pid})
}

// SendInput handles POST /processes/{pid}/input.
func (h *Handlers) SendInput(w http.ResponseWriter, r *http.Request) {
	pid, err := pidFromPath(r)
	if err != nil {
		h.httpError(w, "Invalid pid", http.StatusBadRequest)
		return
	}

	var req api.SendInputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.manager.SendInput(pid, req.Input); err != nil {
		h.operationError(w, err)
		return
	}
	h.respondJson(w, http.StatusOK, map[string]string{"status": "sent"})
}

// KillProcess handles DELETE /processes/{pid}.
func (h *Handlers) KillProcess(w http.ResponseWriter, r *http.Request) {
	pid, err := pidFromPath(r)
	if err != nil {
		h.httpError(w, "Invalid pid", http.StatusBadRequest)
		return
	}

	if err := h.manager.Kill(pid); err != nil {
		h.operationError(w, err)
		return
	}
	h.respondJson(w, http.StatusOK, map[string]string{"status": "killed"})
}

// ProcessOutput handles GET /processes/{pid}/output.
// An unknown handle is an error here, unlike StreamOutput below.
func (h *Handlers) ProcessOutput(w http.ResponseWriter, r *http.Request) {
	pid, err := pidFromPath(r)
	if err != nil {
		h.httpError(w, "Invalid pid", http.StatusBadRequest)
		return
	}

	output, err := h.manager.Output(pid)
	if err != nil {
		h.operationError(w, err)
		return
	}
	h.respondJson(w, http.StatusOK, api.OutputResponse{Output: output})
}

// StreamOutput handles GET /processes/{pid}/stream.
// An unknown handle yields an empty line list rather than an error; both
// behaviors are part of the contract.
func (h *Handlers) StreamOutput(w http.ResponseWriter, r *http.Request) {
	pid, err := pidFromPath(r)
	if err != nil {
		h.httpError(w, "Invalid pid", http.StatusBadRequest)
		return
	}

	h.respondJson(w, http.StatusOK, api.StreamResponse{Lines: h.manager.StreamOutput(pid)})
}
