package catalog

import (
	"time"
)

// FileRecord describes one indexed file. Records are immutable once built;
// a path seen again in a later generation becomes a new record.
type FileRecord struct {
	// Path is absolute and canonical; it is the record's key.
	Path string
	// Name is the base name of Path.
	Name      string
	SizeBytes int64
	// ModifiedAt and CreatedAt are zero when the platform does not report them.
	ModifiedAt time.Time
	CreatedAt  time.Time
	// Extension is lower-case without the leading dot, "" when absent.
	Extension string
}

// HasModifiedAt reports whether the modification time is known.
func (r FileRecord) HasModifiedAt() bool {
	return !r.ModifiedAt.IsZero()
}

// HasCreatedAt reports whether the creation time is known.
func (r FileRecord) HasCreatedAt() bool {
	return !r.CreatedAt.IsZero()
}

// Equal reports whether two records carry identical field values.
// Timestamps are compared as instants.
func (r FileRecord) Equal(o FileRecord) bool {
	return r.Path == o.Path &&
		r.Name == o.Name &&
		r.SizeBytes == o.SizeBytes &&
		r.ModifiedAt.Equal(o.ModifiedAt) &&
		r.CreatedAt.Equal(o.CreatedAt) &&
		r.Extension == o.Extension
}
