/*
Package catalog holds the in-memory index: FileRecord values, the Catalog
that accumulates them for one generation, and immutable Snapshots.

# Concurrency

A Catalog has one writer (the running index job) and any number of readers.
Add takes the write lock; Snapshot takes the read lock and captures a slice
header over the append-only record array with its capacity capped at the
current length. Records are values, so a snapshot never observes a record
being built and never sees records appended after it was taken.

Clear drops the backing array instead of truncating it, so snapshots from the
previous generation stay valid.

# Extensions

The extension set is kept as a reference count per extension, so it always
equals the set of extensions of the stored records.
*/
package catalog
