/*
Package filesystem provides resilient filesystem operations with automatic retry logic
for NFS stale file handle errors.

# Purpose

The indexer and the content previewer both touch every file under a root, which is
frequently an NFS mount. This package wraps os.Stat, os.Lstat, os.Open and os.ReadDir
with retry logic for ESTALE (stale file handle) errors, and adapts the result to the
github.com/kr/fs walker interface so a full traversal inherits the same policy.

# Key Features

  - Automatic retry with exponential backoff for NFS ESTALE errors (errno 116)
  - Configurable retry attempts (default: 3) and backoff timings
  - Other errors are returned immediately
  - RetryFS, a kr/fs FileSystem whose walks never follow symbolic links
  - WriteFileAtomic for index files (temp file plus rename)

# Usage

	info, err := filesystem.StatWithRetry("/nfs/mount/report.txt", filesystem.DefaultRetryConfig())

	walker := filesystem.NewRetryFS(filesystem.DefaultRetryConfig()).Walk(root)
	for walker.Step() {
	    if walker.Err() != nil {
	        continue
	    }
	    // walker.Path(), walker.Stat()
	}

# Metrics

Operations are reported through an Observer set with SetObserver. The metrics package
provides the implementation; when no observer is set, nothing is recorded.
*/
package filesystem
