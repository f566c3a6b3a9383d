package metrics

import (
	"sync"
	"time"

	"file-indexer/internal/logging"
)

// StatsProvider reports the size of the current catalog.
type StatsProvider interface {
	GetStats() Stats
}

// Stats describes one catalog generation.
type Stats struct {
	TotalFiles      int
	TotalExtensions int
	TotalBytes      int64
	Generation      uint64
	// ByCategory counts records per extension category name.
	ByCategory map[string]int
}

// Collector copies StatsProvider figures into the catalog gauges on a fixed
// interval until stopped.
type Collector struct {
	provider StatsProvider
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once

	// only touched by the collect loop
	lastGeneration uint64
	seen           bool
}

// NewCollector creates a collector polling provider every interval.
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		provider: provider,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start runs the first collection immediately and then polls in the
// background.
func (c *Collector) Start() {
	go c.run()
}

// Stop ends polling. It may be called more than once.
func (c *Collector) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

func (c *Collector) run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		c.collect()
		select {
		case <-ticker.C:
		case <-c.done:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.provider == nil {
		return
	}
	stats := c.provider.GetStats()

	CatalogFilesTotal.Set(float64(stats.TotalFiles))
	CatalogExtensionsTotal.Set(float64(stats.TotalExtensions))
	CatalogBytesTotal.Set(float64(stats.TotalBytes))
	CatalogGeneration.Set(float64(stats.Generation))

	CatalogFilesByCategory.Reset()
	for category, n := range stats.ByCategory {
		CatalogFilesByCategory.WithLabelValues(category).Set(float64(n))
	}

	if c.seen && stats.Generation == c.lastGeneration {
		return
	}
	c.seen = true
	c.lastGeneration = stats.Generation
	logging.Debug("Catalog generation %d: files=%d, extensions=%d, bytes=%d",
		stats.Generation, stats.TotalFiles, stats.TotalExtensions, stats.TotalBytes)
}
