package catalog

// Snapshot is an immutable read view of a Catalog.
type Snapshot struct {
	records    []FileRecord
	extensions []string
	totalBytes int64
	generation uint64
}

// Empty returns a snapshot with no records.
func Empty() *Snapshot {
	return &Snapshot{extensions: []string{}}
}

// Records returns the records in catalog order. Callers must not modify the
// returned slice.
func (s *Snapshot) Records() []FileRecord {
	return s.records
}

// Extensions returns the distinct extensions, sorted.
func (s *Snapshot) Extensions() []string {
	out := make([]string, len(s.extensions))
	copy(out, s.extensions)
	return out
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// TotalBytes returns the sum of all record sizes.
func (s *Snapshot) TotalBytes() int64 {
	return s.totalBytes
}

// Generation returns the generation the snapshot was taken from.
func (s *Snapshot) Generation() uint64 {
	return s.generation
}
