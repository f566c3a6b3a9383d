package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Indexer metrics
var (
	IndexerRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_indexer_indexer_runs_total",
			Help: "Total number of indexing jobs by outcome",
		},
		[]string{"outcome"}, // "completed", "cancelled"
	)

	IndexerRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "file_indexer_indexer_rejected_total",
			Help: "Total number of indexing jobs rejected because another job was running",
		},
	)

	IndexerLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_indexer_indexer_last_run_timestamp",
			Help: "Timestamp of the last indexing job",
		},
	)

	IndexerLastRunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_indexer_indexer_last_run_duration_seconds",
			Help: "Duration of the last indexing job in seconds",
		},
	)

	IndexerFilesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "file_indexer_indexer_files_processed_total",
			Help: "Total number of files recorded by the indexer",
		},
	)

	IndexerFoldersProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "file_indexer_indexer_folders_processed_total",
			Help: "Total number of directories traversed by the indexer",
		},
	)

	IndexerEntriesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_indexer_indexer_entries_skipped_total",
			Help: "Total number of entries skipped by the indexer",
		},
		[]string{"reason"}, // "unreadable", "filtered", "excluded", "hidden", "irregular", "duplicate"
	)

	IndexerIsRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_indexer_indexer_running",
			Help: "Whether the indexer is currently running (1 = running, 0 = idle)",
		},
	)
)

// Search metrics
var (
	SearchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_indexer_search_queries_total",
			Help: "Total number of search queries",
		},
		[]string{"mode", "status"}, // mode: "literal", "regex"; status: "success", "error"
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "file_indexer_search_duration_seconds",
			Help:    "Search duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"mode"},
	)

	SearchResultsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "file_indexer_search_results",
			Help:    "Number of records returned per search",
			Buckets: []float64{0, 1, 10, 100, 1000, 10000, 100000},
		},
	)

	SearchContentPreviews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_indexer_search_content_previews_total",
			Help: "Total number of content previews read during search",
		},
		[]string{"status"}, // "success", "error"
	)
)

// Index file metrics
var (
	CodecOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_indexer_codec_operations_total",
			Help: "Total number of index file save and load operations",
		},
		[]string{"operation", "status"}, // operation: "save", "load"
	)

	CodecBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_indexer_codec_bytes_total",
			Help: "Total bytes written or read as index files",
		},
		[]string{"operation"},
	)
)

// Catalog metrics (updated by the collector)
var (
	CatalogFilesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_indexer_catalog_files",
			Help: "Number of records in the current catalog",
		},
	)

	CatalogExtensionsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_indexer_catalog_extensions",
			Help: "Number of distinct extensions in the current catalog",
		},
	)

	CatalogBytesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_indexer_catalog_bytes",
			Help: "Sum of file sizes in the current catalog",
		},
	)

	CatalogGeneration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_indexer_catalog_generation",
			Help: "Generation counter of the current catalog",
		},
	)

	CatalogFilesByCategory = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "file_indexer_catalog_files_by_category",
			Help: "Number of records in the current catalog per extension category",
		},
		[]string{"category"},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "file_indexer_filesystem_operation_duration_seconds",
			Help:    "Duration of filesystem operations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_indexer_filesystem_operation_errors_total",
			Help: "Total number of failed filesystem operations",
		},
		[]string{"operation"},
	)

	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_indexer_filesystem_retry_attempts_total",
			Help: "Total number of retries after NFS stale file handle errors",
		},
		[]string{"operation"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_indexer_filesystem_retry_success_total",
			Help: "Total number of operations that succeeded after retrying",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_indexer_filesystem_retry_failures_total",
			Help: "Total number of operations that exhausted their retries",
		},
		[]string{"operation"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_indexer_filesystem_stale_errors_total",
			Help: "Total number of NFS stale file handle errors observed",
		},
		[]string{"operation"},
	)
)

// Application info
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "file_indexer_app_info",
			Help: "Application build information",
		},
		[]string{"version", "commit", "go_version"},
	)
)
