package finder

import (
	"context"
	"sync"
	"time"

	"file-indexer/internal/catalog"
	"file-indexer/internal/codec"
	"file-indexer/internal/filetypes"
	"file-indexer/internal/indexer"
	"file-indexer/internal/logging"
	"file-indexer/internal/metrics"
	"file-indexer/internal/search"
)

var log = logging.ForComponent("finder")

// Finder owns the current catalog generation and routes index and search
// requests to the indexer and search engine.
type Finder struct {
	indexer *indexer.Indexer
	engine  *search.Engine

	mu         sync.RWMutex
	current    *catalog.Catalog
	indexedAt  time.Time
	generation uint64
}

var _ metrics.StatsProvider = (*Finder)(nil)

// New creates a Finder with an empty current generation.
func New(idx *indexer.Indexer, engine *search.Engine) *Finder {
	return &Finder{
		indexer: idx,
		engine:  engine,
		current: catalog.New(),
	}
}

// StartIndex indexes roots into a fresh catalog. filters are normalized
// before use, so "TXT", ".txt" and "*.txt" are equivalent.
func (f *Finder) StartIndex(roots, filters []string, listener indexer.Listener) (*indexer.Handle, error) {
	return f.StartJob(indexer.Job{
		Roots:   roots,
		Filters: filetypes.NormalizeFilters(filters),
	}, listener)
}

// StartJob starts job. When it finishes, cancelled or not, its catalog
// becomes the current generation before listener.OnFinished runs.
func (f *Finder) StartJob(job indexer.Job, listener indexer.Listener) (*indexer.Handle, error) {
	if listener == nil {
		listener = indexer.Callbacks{}
	}
	job.Filters = filetypes.NormalizeFilters(job.Filters)
	job.Catalog = catalog.New()

	target := job.Catalog
	return f.indexer.Start(job, installer{
		Listener: listener,
		install: func(summary indexer.Summary) {
			f.install(target, summary.StartedAt.Add(summary.Duration))
		},
	})
}

// StopIndex requests cancellation of h. A nil handle stops whatever job is
// running.
func (f *Finder) StopIndex(h *indexer.Handle) {
	if h == nil {
		f.indexer.Stop()
		return
	}
	h.Stop()
}

// IsIndexing reports whether a job is running.
func (f *Finder) IsIndexing() bool {
	return f.indexer.IsIndexing()
}

// Progress returns the running job's counters, or the last job's.
func (f *Finder) Progress() indexer.Progress {
	return f.indexer.GetProgress()
}

// Current returns a snapshot of the current generation.
func (f *Finder) Current() *catalog.Snapshot {
	f.mu.RLock()
	c := f.current
	f.mu.RUnlock()
	return c.Snapshot()
}

// IndexedAt returns when the current generation was produced, or the zero
// time when it never was.
func (f *Finder) IndexedAt() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.indexedAt
}

// Search runs q against the current generation.
func (f *Finder) Search(q search.Query) (search.Result, error) {
	return f.engine.Search(f.Current(), q)
}

// SearchSnapshot runs q against snap, typically a running job's
// Handle.Snapshot().
func (f *Finder) SearchSnapshot(snap *catalog.Snapshot, q search.Query) (search.Result, error) {
	return f.engine.Search(snap, q)
}

// SearchAsync runs q against the current generation in the background.
func (f *Finder) SearchAsync(ctx context.Context, q search.Query) <-chan search.Outcome {
	return f.engine.SearchAsync(ctx, f.Current(), q)
}

// Save writes the current generation to path and returns the path written,
// which always ends in .idx.
func (f *Finder) Save(path string) (string, error) {
	f.mu.RLock()
	snap := f.current.Snapshot()
	ts := f.indexedAt
	f.mu.RUnlock()

	if ts.IsZero() {
		ts = time.Now()
	}
	return codec.WriteFile(path, snap, ts)
}

// Load replaces the current generation with the index stored at path. On
// any error the current generation is left untouched.
func (f *Finder) Load(path string) error {
	c, ts, err := codec.ReadFile(codec.IndexPath(path))
	if err != nil {
		return err
	}
	f.install(c, ts)
	return nil
}

// Clear replaces the current generation with an empty one.
func (f *Finder) Clear() {
	f.install(catalog.New(), time.Time{})
	log.Info("Cleared current generation")
}

// GetStats implements metrics.StatsProvider.
func (f *Finder) GetStats() metrics.Stats {
	f.mu.RLock()
	c := f.current
	gen := f.generation
	f.mu.RUnlock()

	snap := c.Snapshot()
	byCategory := make(map[string]int)
	for _, r := range snap.Records() {
		byCategory[string(filetypes.CategoryOf(r.Extension))]++
	}
	return metrics.Stats{
		TotalFiles:      snap.Len(),
		TotalExtensions: len(snap.Extensions()),
		TotalBytes:      snap.TotalBytes(),
		Generation:      gen,
		ByCategory:      byCategory,
	}
}

func (f *Finder) install(c *catalog.Catalog, ts time.Time) {
	f.mu.Lock()
	f.current = c
	f.indexedAt = ts
	f.generation++
	gen := f.generation
	f.mu.Unlock()

	log.Debug("Installed generation %d with %d records", gen, c.Len())
}

// installer swaps in the finished catalog before forwarding OnFinished.
type installer struct {
	indexer.Listener
	install func(summary indexer.Summary)
}

func (i installer) OnFinished(summary indexer.Summary) {
	i.install(summary)
	i.Listener.OnFinished(summary)
}
