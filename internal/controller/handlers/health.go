package handlers

import "net/http"

// Healthz is a liveness probe.
// It returns 200 OK if the daemon is running.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	h.respondJson(w, http.StatusOK, map[string]string{"status": "healthy"})
}
