package handler

import "net/http"

// Health answers liveness probes without touching the upstream
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
