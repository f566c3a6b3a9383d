package search

import (
	"context"
	"time"

	"file-indexer/internal/catalog"
	"file-indexer/internal/filesystem"
	"file-indexer/internal/logging"
	"file-indexer/internal/metrics"
	"file-indexer/internal/workers"
)

const (
	// Characters of file content considered by content search
	defaultPreviewChars = 1000

	// Upper bound on concurrent content reads
	maxWorkers = 16
)

var log = logging.ForComponent("search")

// Config controls content search.
type Config struct {
	PreviewChars int
	Workers      int
	Retry        filesystem.RetryConfig
}

// DefaultConfig returns the default search settings.
func DefaultConfig() Config {
	return Config{
		PreviewChars: defaultPreviewChars,
		Workers:      workers.ForIO(maxWorkers),
		Retry:        filesystem.DefaultRetryConfig(),
	}
}

// Engine evaluates queries against catalog snapshots. It never modifies
// the snapshot and is safe for concurrent use.
type Engine struct {
	config Config
	reader ContentReader
}

// NewEngine creates an Engine reading content from the local filesystem.
func NewEngine(config Config) *Engine {
	if config.PreviewChars <= 0 {
		config.PreviewChars = defaultPreviewChars
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	return &Engine{
		config: config,
		reader: FileContentReader{Retry: config.Retry},
	}
}

// SetContentReader replaces the source of content previews.
func (e *Engine) SetContentReader(r ContentReader) {
	e.reader = r
}

// Search returns every record of snap matching q, in catalog order. An
// invalid regular expression fails the whole search with ErrInvalidPattern.
func (e *Engine) Search(snap *catalog.Snapshot, q Query) (Result, error) {
	start := time.Now()
	mode := q.Mode()

	m, err := compile(q)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues(mode, "error").Inc()
		return Result{}, err
	}

	records := snap.Records()
	matched := make([]bool, len(records))

	var pending []int
	for i := range records {
		if m.Match(records[i].Name) {
			matched[i] = true
		} else if q.SearchContent {
			pending = append(pending, i)
		}
	}

	if len(pending) > 0 {
		// Background context: an in-flight search always runs to completion.
		hits, _ := workers.Map(context.Background(), e.config.Workers, pending, func(i int) bool {
			return m.Match(e.preview(records[i].Path))
		})
		for j, i := range pending {
			matched[i] = hits[j]
		}
	}

	out := make([]catalog.FileRecord, 0)
	for i, ok := range matched {
		if ok {
			out = append(out, records[i])
		}
	}

	elapsed := time.Since(start)
	metrics.SearchQueriesTotal.WithLabelValues(mode, "success").Inc()
	metrics.SearchDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	metrics.SearchResultsReturned.Observe(float64(len(out)))

	log.Debug("Query %q (%s, content=%v) matched %d of %d records in %v",
		q.Text, mode, q.SearchContent, len(out), len(records), elapsed)

	return Result{Records: out, Elapsed: elapsed}, nil
}

// Outcome is delivered by SearchAsync.
type Outcome struct {
	Result Result
	Err    error
}

// SearchAsync runs Search on its own goroutine and delivers the outcome on
// the returned channel, which is closed afterwards. Cancelling ctx abandons
// delivery; the scan itself still completes.
func (e *Engine) SearchAsync(ctx context.Context, snap *catalog.Snapshot, q Query) <-chan Outcome {
	out := make(chan Outcome)
	go func() {
		defer close(out)
		res, err := e.Search(snap, q)
		select {
		case out <- Outcome{Result: res, Err: err}:
		case <-ctx.Done():
			log.Debug("Abandoned result of query %q: %v", q.Text, ctx.Err())
		}
	}()
	return out
}

// preview returns the content target for path, or "" when it cannot be read.
func (e *Engine) preview(path string) string {
	text, err := e.reader.ReadPreview(path, e.config.PreviewChars)
	if err != nil {
		metrics.SearchContentPreviews.WithLabelValues("error").Inc()
		log.Debug("No content preview for %s: %v", path, err)
		return ""
	}
	metrics.SearchContentPreviews.WithLabelValues("success").Inc()
	return text
}
