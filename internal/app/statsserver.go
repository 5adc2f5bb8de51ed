package app

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// healthHandler answers liveness probes.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// statsHandler reports the engine's cache-tier sizes. Diagnostics only.
func (a *App) statsHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Stats endpoint hit.", "remote_addr", r.RemoteAddr)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.engine.Stats()); err != nil {
		a.logger.Error("Failed to encode engine stats.", "error", err)
	}
}

// startStatsServer initializes and runs the stats/health HTTP server.
func (a *App) startStatsServer(port int) {
	a.logger.Debug("Configuring stats server.")
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/stats", a.statsHandler)

	addr := fmt.Sprintf(":%d", port)

	go func() {
		a.logger.Info("🩺 Stats server starting", "address", fmt.Sprintf("http://localhost%s/stats", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			a.logger.Error("Stats server failed", "error", err)
		}
	}()
}
