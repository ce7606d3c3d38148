package web

import (
	"net/http"
	"time"
)

// handleDiagnostics returns aggregated request and fetch timings as JSON
// (GET /diagnostics). Data comes from the in-process ring buffer.
func handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if perfCollector == nil {
		writeJSON(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}
	snap := perfCollector.Snapshot(time.Now().Add(-15*time.Minute), 10)
	writeJSON(w, http.StatusOK, snap)
}
