// Package metrics provides Prometheus metrics for the file indexer.
//
// All metrics are registered with the default registry through promauto and
// carry the file_indexer_ prefix.
//
// # Metric Categories
//
//   - Indexer: job counts by outcome, rejected jobs, files and directories
//     traversed, skipped entries by reason, last run time and duration
//   - Search: queries by mode and status, latency, result counts, content
//     previews read
//   - Codec: index file saves and loads, bytes written and read
//   - Catalog: size of the current catalog, refreshed by the Collector
//   - Filesystem: per-operation latency, errors, and NFS retry counters,
//     recorded through the filesystem.Observer implementation in this package
//
// # Usage
//
// Call InitializeMetrics once at startup so every label combination is
// exported from the first scrape, then register the observer:
//
//	metrics.InitializeMetrics()
//	filesystem.SetObserver(metrics.NewFilesystemObserver())
//
//	collector := metrics.NewCollector(finder, time.Minute)
//	collector.Start()
//	defer collector.Stop()
package metrics
