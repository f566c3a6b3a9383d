// Package indexer walks root directories and fills a catalog with one
// FileRecord per regular file.
//
// A job runs on its own goroutine; at most one job is active per Indexer and
// Start returns ErrBusy while one is running. The walk is depth-first over an
// explicit stack (github.com/kr/fs) with entries visited in name order.
// Cancellation is cooperative: Handle.Stop sets a flag that is checked before
// every entry at any depth.
//
// Traversal rules:
//   - Roots are made absolute and symlink-free; an unresolvable root is skipped
//   - Links to regular files are recorded under the link path with the
//     target's size and times; links to directories are never descended
//   - Directories are always descended unless excluded or hidden-and-skipped
//   - Entries that cannot be read are skipped and counted, never fatal
//   - A path is recorded at most once per job, even with overlapping roots
//
// Listener methods run on the job goroutine in traversal order. OnProgress
// fires after every Config.ProgressEvery records and OnFinished fires exactly
// once, whether the walk completed or was cancelled.
package indexer
