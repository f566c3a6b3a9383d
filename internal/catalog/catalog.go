package catalog

import (
	"sort"
	"sync"
)

// Catalog accumulates FileRecords for one generation. A single writer may
// Add while any number of readers take snapshots.
type Catalog struct {
	mu         sync.RWMutex
	records    []FileRecord
	extensions map[string]int
	totalBytes int64
	added      uint64
	generation uint64
}

// New returns an empty catalog at generation 1.
func New() *Catalog {
	return &Catalog{
		extensions: make(map[string]int),
		generation: 1,
	}
}

// FromRecords builds a catalog holding records in the given order.
func FromRecords(records []FileRecord) *Catalog {
	c := New()
	c.records = make([]FileRecord, 0, len(records))
	for _, r := range records {
		c.addLocked(r)
	}
	return c
}

// Add appends record and records its extension. Uniqueness is the caller's
// concern.
func (c *Catalog) Add(record FileRecord) {
	c.mu.Lock()
	c.addLocked(record)
	c.mu.Unlock()
}

func (c *Catalog) addLocked(record FileRecord) {
	c.records = append(c.records, record)
	c.extensions[record.Extension]++
	c.totalBytes += record.SizeBytes
	c.added++
}

// Clear starts a new empty generation. Snapshots taken before Clear keep
// their records; the backing array is never reused.
func (c *Catalog) Clear() {
	c.mu.Lock()
	c.records = nil
	c.extensions = make(map[string]int)
	c.totalBytes = 0
	c.added = 0
	c.generation++
	c.mu.Unlock()
}

// Len returns the number of records in the current generation.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// ExtensionCount returns the number of distinct extensions.
func (c *Catalog) ExtensionCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.extensions)
}

// Added returns how many records have been added since the last Clear.
func (c *Catalog) Added() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.added
}

// Generation returns the current generation number.
func (c *Catalog) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// Snapshot returns a point-in-time view. Records appended afterwards are
// not visible through it.
func (c *Catalog) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := len(c.records)
	exts := make([]string, 0, len(c.extensions))
	for ext := range c.extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	return &Snapshot{
		// Capping capacity makes any later append reallocate or write past n,
		// never into the snapshot's window.
		records:    c.records[:n:n],
		extensions: exts,
		totalBytes: c.totalBytes,
		generation: c.generation,
	}
}
