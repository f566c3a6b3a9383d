package filesystem

import (
	"os"
	"path/filepath"

	"github.com/kr/fs"

	"file-indexer/internal/logging"
)

// RetryFS implements fs.FileSystem for github.com/kr/fs walkers on top of the
// local filesystem, retrying stale NFS handles on every call.
type RetryFS struct {
	Retry RetryConfig
}

var _ fs.FileSystem = RetryFS{}

// NewRetryFS returns a walker filesystem using the given retry policy.
func NewRetryFS(config RetryConfig) RetryFS {
	return RetryFS{Retry: config}
}

// ReadDir lists dirname sorted by name. Entries that vanish between the
// listing and their lstat are dropped rather than failing the directory.
func (r RetryFS) ReadDir(dirname string) ([]os.FileInfo, error) {
	entries, err := ReadDirWithRetry(dirname, r.Retry)
	if err != nil {
		return nil, err
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			logging.Debug("Dropping entry %s: %v", filepath.Join(dirname, entry.Name()), err)
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Lstat describes name without following symbolic links.
func (r RetryFS) Lstat(name string) (os.FileInfo, error) {
	return LstatWithRetry(name, r.Retry)
}

// Join joins path elements with the OS separator.
func (r RetryFS) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Walk returns a depth-first walker rooted at root. The walker keeps its
// pending entries on an explicit stack; callers drive it with Step.
func (r RetryFS) Walk(root string) *fs.Walker {
	return fs.WalkFS(root, r)
}
