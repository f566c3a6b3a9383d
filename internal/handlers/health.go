package handlers

import (
	"net/http"
	"runtime"
	"time"

	"file-indexer/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusIndexing = "indexing"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	Indexing    bool   `json:"indexing"`
	LastIndexed string `json:"lastIndexed,omitempty"`

	// Progress of the running or last job
	FilesIndexed   int64 `json:"filesIndexed"`
	FoldersIndexed int64 `json:"foldersIndexed"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`

	// Current generation
	TotalFiles      int    `json:"totalFiles"`
	TotalExtensions int    `json:"totalExtensions"`
	TotalBytes      int64  `json:"totalBytes"`
	Generation      uint64 `json:"generation"`
}

// HealthCheck returns the health status of the indexer
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	progress := h.source.Progress()
	stats := h.source.GetStats()
	indexing := h.source.IsIndexing()

	response := HealthResponse{
		Status:          statusHealthy,
		Version:         startup.Version,
		Uptime:          time.Since(h.startTime).Round(time.Second).String(),
		Indexing:        indexing,
		FilesIndexed:    progress.FilesIndexed,
		FoldersIndexed:  progress.FoldersIndexed,
		GoVersion:       runtime.Version(),
		NumCPU:          runtime.NumCPU(),
		NumGoroutine:    runtime.NumGoroutine(),
		TotalFiles:      stats.TotalFiles,
		TotalExtensions: stats.TotalExtensions,
		TotalBytes:      stats.TotalBytes,
		Generation:      stats.Generation,
	}

	if indexing {
		response.Status = statusIndexing
	}

	if last := h.source.IndexedAt(); !last.IsZero() {
		response.LastIndexed = last.Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if the listener is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}

// ReadinessCheck returns 200 once a catalog generation has been produced
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !h.source.IndexedAt().IsZero() {
		w.WriteHeader(http.StatusOK)
		writeJSON(w, map[string]string{
			"status": "ready",
		})
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, map[string]string{
			"status": "not_ready",
		})
	}
}

// GetVersion returns the build information as JSON
func (h *Handlers) GetVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, startup.GetBuildInfo())
}
