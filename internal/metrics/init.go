package metrics

import "file-indexer/internal/filesystem"

// Skip reasons reported by the indexer.
const (
	SkipUnreadable = "unreadable"
	SkipFiltered   = "filtered"
	SkipExcluded   = "excluded"
	SkipHidden     = "hidden"
	SkipIrregular  = "irregular"
	SkipDuplicate  = "duplicate"
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, outcome := range []string{"completed", "cancelled"} {
		IndexerRunsTotal.WithLabelValues(outcome)
	}

	for _, reason := range []string{SkipUnreadable, SkipFiltered, SkipExcluded, SkipHidden, SkipIrregular, SkipDuplicate} {
		IndexerEntriesSkipped.WithLabelValues(reason)
	}

	for _, mode := range []string{"literal", "regex"} {
		SearchQueriesTotal.WithLabelValues(mode, "success")
		SearchQueriesTotal.WithLabelValues(mode, "error")
		SearchDuration.WithLabelValues(mode)
	}
	SearchContentPreviews.WithLabelValues("success")
	SearchContentPreviews.WithLabelValues("error")

	for _, op := range []string{"save", "load"} {
		CodecOperationsTotal.WithLabelValues(op, "success")
		CodecOperationsTotal.WithLabelValues(op, "error")
		CodecBytes.WithLabelValues(op)
	}

	for _, op := range filesystem.Operations {
		FilesystemOperationDuration.WithLabelValues(op)
		FilesystemOperationErrors.WithLabelValues(op)
		FilesystemRetryAttempts.WithLabelValues(op)
		FilesystemRetrySuccess.WithLabelValues(op)
		FilesystemRetryFailures.WithLabelValues(op)
		FilesystemStaleErrors.WithLabelValues(op)
	}
}
