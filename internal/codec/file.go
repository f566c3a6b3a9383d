package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"file-indexer/internal/catalog"
	"file-indexer/internal/filesystem"
	"file-indexer/internal/logging"
)

// FileExtension is appended to index paths that lack it.
const FileExtension = ".idx"

var log = logging.ForComponent("codec")

// IndexPath returns path with the .idx suffix enforced.
func IndexPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), FileExtension) {
		return path
	}
	return path + FileExtension
}

// WriteFile saves snap to path atomically and returns the path written.
func WriteFile(path string, snap *catalog.Snapshot, ts time.Time) (string, error) {
	path = IndexPath(path)

	data, err := Save(snap, ts)
	if err != nil {
		return "", err
	}
	if err := filesystem.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", err
	}

	log.Info("Saved %d records (%d bytes) to %s", snap.Len(), len(data), path)
	return path, nil
}

// ReadFile loads the index at path. I/O failures are returned as-is;
// validation failures wrap ErrCorruptData.
func ReadFile(path string) (*catalog.Catalog, time.Time, error) {
	f, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to open index %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read index %s: %w", path, err)
	}

	c, ts, err := Load(data)
	if err != nil {
		log.Warn("Rejected index %s: %v", path, err)
		return nil, time.Time{}, err
	}

	log.Info("Loaded %d records from %s", c.Len(), path)
	return c, ts, nil
}
