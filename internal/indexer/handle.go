package indexer

import (
	"sync/atomic"
	"time"

	"file-indexer/internal/catalog"
)

// Handle controls one running job.
type Handle struct {
	catalog   *catalog.Catalog
	startedAt time.Time
	stopped   atomic.Bool
	finished  atomic.Bool
	done      chan struct{}
	summary   Summary

	filesIndexed   atomic.Int64
	foldersIndexed atomic.Int64
}

func newHandle(c *catalog.Catalog) *Handle {
	return &Handle{
		catalog:   c,
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}
}

// Stop requests cancellation. It is idempotent and never blocks; the walk
// observes the flag before the next entry.
func (h *Handle) Stop() {
	h.stopped.Store(true)
}

// Stopped reports whether Stop was called.
func (h *Handle) Stopped() bool {
	return h.stopped.Load()
}

// Done is closed after OnFinished has returned.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the job finishes and returns its summary.
func (h *Handle) Wait() Summary {
	<-h.done
	return h.summary
}

// Catalog returns the catalog the job writes into.
func (h *Handle) Catalog() *catalog.Catalog {
	return h.catalog
}

// Snapshot returns a point-in-time view of the records emitted so far.
func (h *Handle) Snapshot() *catalog.Snapshot {
	return h.catalog.Snapshot()
}

// Progress returns live counters for the job.
func (h *Handle) Progress() Progress {
	return Progress{
		FilesIndexed:   h.filesIndexed.Load(),
		FoldersIndexed: h.foldersIndexed.Load(),
		IsIndexing:     !h.finished.Load(),
		StartedAt:      h.startedAt,
	}
}

func (h *Handle) finish(summary Summary, listener Listener) {
	h.summary = summary
	h.finished.Store(true)
	listener.OnFinished(summary)
	close(h.done)
}
