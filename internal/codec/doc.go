/*
Package codec persists a catalog snapshot and its save time to a
self-describing byte stream, and restores it with full validation.

# Stream Layout

	+--------+---------+-----------------+------------------+
	| "FIDX" | version | CBOR payload    | xxhash64(payload)|
	| 4 B    | u16 BE  | variable        | u64 BE           |
	+--------+---------+-----------------+------------------+

The payload is a CBOR array [count, records, extensions, savedAt] encoded
with deterministic core options. Each record is the array
[path, name, size, modified, created, extension]; timestamps are
[unix seconds, nanoseconds] pairs, or null when unknown.

# Validation

Load rejects, with an error wrapping ErrCorruptData: short streams, a wrong
magic or version, checksum mismatches, malformed or trailing CBOR, a record
count that disagrees with the records, empty paths or names, negative sizes,
timestamps with nanoseconds outside [0, 1e9), duplicate paths, and an
extension set that differs from the records' extensions. On failure no catalog is returned.

Index files use the .idx extension; WriteFile enforces it and replaces the
target atomically.
*/
package codec
