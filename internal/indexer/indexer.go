package indexer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"file-indexer/internal/catalog"
	"file-indexer/internal/filesystem"
	"file-indexer/internal/logging"
	"file-indexer/internal/metrics"
)

// ErrBusy is returned by Start while another job is running.
var ErrBusy = errors.New("indexing already in progress")

// ErrInvalidExclude is returned by Start for a malformed exclusion pattern.
var ErrInvalidExclude = errors.New("invalid exclude pattern")

const (
	// Records between two progress reports
	defaultProgressEvery = 100

	// Records between two INFO progress log lines
	logEvery = 5000
)

var log = logging.ForComponent("indexer")

// Config controls traversal behaviour.
type Config struct {
	// ProgressEvery is the number of emitted records between OnProgress calls.
	ProgressEvery int
	// SkipHidden prunes files and directories whose names start with '.'.
	SkipHidden bool
	// Retry is applied to every lstat and directory read.
	Retry filesystem.RetryConfig
}

// DefaultConfig returns the default traversal settings.
func DefaultConfig() Config {
	return Config{
		ProgressEvery: defaultProgressEvery,
		SkipHidden:    false,
		Retry:         filesystem.DefaultRetryConfig(),
	}
}

// Job describes one indexing run.
type Job struct {
	// Roots are walked in order.
	Roots []string
	// Filters restrict files by extension (".txt"); empty means no filtering.
	Filters []string
	// Exclude holds doublestar patterns matched case-insensitively against
	// the slash-separated path relative to its root.
	Exclude []string
	// Catalog receives the records. It is cleared before the walk starts;
	// a new catalog is created when nil.
	Catalog *catalog.Catalog
}

// Progress reports the state of the running or last job.
type Progress struct {
	FilesIndexed   int64     `json:"filesIndexed"`
	FoldersIndexed int64     `json:"foldersIndexed"`
	IsIndexing     bool      `json:"isIndexing"`
	StartedAt      time.Time `json:"startedAt,omitempty"`
}

// Summary describes a finished job.
type Summary struct {
	Files      int
	Extensions int
	Folders    int64
	Bytes      int64
	Skipped    int64
	Cancelled  bool
	StartedAt  time.Time
	Duration   time.Duration
}

// Indexer runs at most one Job at a time on a background goroutine.
type Indexer struct {
	config Config

	indexMu       sync.Mutex
	isIndexing    bool
	active        *Handle
	lastIndexTime time.Time
	lastSummary   Summary
}

// New creates an Indexer. Zero config fields fall back to defaults.
func New(config Config) *Indexer {
	if config.ProgressEvery <= 0 {
		config.ProgressEvery = defaultProgressEvery
	}
	return &Indexer{config: config}
}

// Start validates job, clears its catalog and begins the walk in the
// background. listener may be nil.
func (idx *Indexer) Start(job Job, listener Listener) (*Handle, error) {
	for _, pattern := range job.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidExclude, pattern)
		}
	}

	if !idx.tryStartIndexing() {
		metrics.IndexerRejectedTotal.Inc()
		log.Info("Index already in progress, rejecting new job")
		return nil, ErrBusy
	}

	if job.Catalog == nil {
		job.Catalog = catalog.New()
	} else {
		job.Catalog.Clear()
	}
	if listener == nil {
		listener = Callbacks{}
	}

	h := newHandle(job.Catalog)

	idx.indexMu.Lock()
	idx.active = h
	idx.indexMu.Unlock()

	go idx.run(h, job, listener)

	return h, nil
}

// Stop cancels the running job, if any. It does not wait.
func (idx *Indexer) Stop() {
	idx.indexMu.Lock()
	h := idx.active
	idx.indexMu.Unlock()

	if h != nil {
		h.Stop()
	}
}

// IsIndexing returns whether a job is currently in progress.
func (idx *Indexer) IsIndexing() bool {
	idx.indexMu.Lock()
	defer idx.indexMu.Unlock()
	return idx.isIndexing
}

// LastIndexTime returns when the last job finished.
func (idx *Indexer) LastIndexTime() time.Time {
	idx.indexMu.Lock()
	defer idx.indexMu.Unlock()
	return idx.lastIndexTime
}

// LastSummary returns the summary of the last finished job.
func (idx *Indexer) LastSummary() Summary {
	idx.indexMu.Lock()
	defer idx.indexMu.Unlock()
	return idx.lastSummary
}

// GetProgress returns the progress of the running job, or of the last one.
func (idx *Indexer) GetProgress() Progress {
	idx.indexMu.Lock()
	h := idx.active
	last := idx.lastSummary
	idx.indexMu.Unlock()

	if h != nil {
		return h.Progress()
	}
	return Progress{
		FilesIndexed:   int64(last.Files),
		FoldersIndexed: last.Folders,
		StartedAt:      last.StartedAt,
	}
}

// tryStartIndexing attempts to start indexing, returns false if already in progress.
func (idx *Indexer) tryStartIndexing() bool {
	idx.indexMu.Lock()
	defer idx.indexMu.Unlock()

	if idx.isIndexing {
		return false
	}
	idx.isIndexing = true
	return true
}

// finishIndexing marks indexing as complete.
func (idx *Indexer) finishIndexing(summary Summary) {
	idx.indexMu.Lock()
	defer idx.indexMu.Unlock()

	idx.isIndexing = false
	idx.active = nil
	idx.lastIndexTime = time.Now()
	idx.lastSummary = summary
}

func (idx *Indexer) run(h *Handle, job Job, listener Listener) {
	metrics.IndexerIsRunning.Set(1)

	log.Info("Starting index of %d root(s)", len(job.Roots))

	w := newWalk(idx.config, job, h, listener)
	cancelled := w.run()

	summary := Summary{
		Files:      int(w.emitted),
		Extensions: job.Catalog.ExtensionCount(),
		Folders:    w.folders,
		Bytes:      w.bytes,
		Skipped:    w.skipped,
		Cancelled:  cancelled,
		StartedAt:  h.startedAt,
		Duration:   time.Since(h.startedAt),
	}

	outcome := "completed"
	if summary.Cancelled {
		outcome = "cancelled"
	}
	metrics.IndexerRunsTotal.WithLabelValues(outcome).Inc()
	metrics.IndexerLastRunTimestamp.Set(float64(time.Now().Unix()))
	metrics.IndexerLastRunDuration.Set(summary.Duration.Seconds())
	metrics.IndexerIsRunning.Set(0)

	log.Info("Index %s: %d files, %d folders, %d extensions, %d skipped in %v",
		outcome, summary.Files, summary.Folders, summary.Extensions, summary.Skipped, summary.Duration)

	idx.finishIndexing(summary)
	h.finish(summary, listener)
}
