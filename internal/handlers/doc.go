// Package handlers serves the observability endpoints of the file-indexer
// driver: Prometheus metrics, health probes and build information.
//
// The listener is optional and only started when --metrics-addr is set.
//
//	GET /metrics   Prometheus exposition
//	GET /health    indexing state and current generation totals
//	GET /livez     liveness probe
//	GET /readyz    200 once a catalog generation exists
//	GET /version   build information
package handlers
