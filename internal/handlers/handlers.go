package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"file-indexer/internal/indexer"
	"file-indexer/internal/metrics"
)

// Source reports the state of the index for health checks.
type Source interface {
	IsIndexing() bool
	Progress() indexer.Progress
	IndexedAt() time.Time
	GetStats() metrics.Stats
}

// Handlers serves the observability endpoints of the driver.
type Handlers struct {
	source    Source
	startTime time.Time
}

// New creates Handlers reporting on source.
func New(source Source) *Handlers {
	return &Handlers{
		source:    source,
		startTime: time.Now(),
	}
}

// Router returns a router serving health, version and metrics endpoints.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.Use(logRequests)

	return r
}

// NewServer wraps handler in an http.Server listening on addr.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
