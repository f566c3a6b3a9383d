package indexer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"file-indexer/internal/catalog"
	"file-indexer/internal/filesystem"
	"file-indexer/internal/filetypes"
	"file-indexer/internal/metrics"
)

// walk holds the state of one job. It is owned by the job goroutine.
type walk struct {
	config   Config
	fs       filesystem.RetryFS
	catalog  *catalog.Catalog
	handle   *Handle
	listener Listener
	filters  filetypes.FilterSet
	exclude  []string
	roots    []string
	seen     map[string]struct{}

	emitted int64
	folders int64
	bytes   int64
	skipped int64
}

func newWalk(config Config, job Job, h *Handle, listener Listener) *walk {
	exclude := make([]string, len(job.Exclude))
	for i, p := range job.Exclude {
		exclude[i] = strings.ToLower(filepath.ToSlash(p))
	}
	return &walk{
		config:   config,
		fs:       filesystem.NewRetryFS(config.Retry),
		catalog:  job.Catalog,
		handle:   h,
		listener: listener,
		filters:  filetypes.NewFilterSet(job.Filters),
		exclude:  exclude,
		roots:    job.Roots,
		seen:     make(map[string]struct{}),
	}
}

// run walks every root and reports whether it stopped before the last entry.
func (w *walk) run() (cancelled bool) {
	for _, root := range w.roots {
		if w.handle.Stopped() {
			return true
		}
		canonical, ok := canonicalRoot(root)
		if !ok {
			continue
		}
		if !w.walkRoot(canonical) {
			return true
		}
	}
	return false
}

// canonicalRoot resolves root to an absolute path without symbolic links.
func canonicalRoot(root string) (string, bool) {
	abs, err := filepath.Abs(root)
	if err != nil {
		log.Warn("Skipping root %s: %v", root, err)
		return "", false
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		log.Warn("Skipping root %s: %v", root, err)
		return "", false
	}
	return resolved, true
}

// walkRoot traverses one root depth-first. It returns false when the job
// was cancelled.
func (w *walk) walkRoot(root string) bool {
	walker := w.fs.Walk(root)
	for walker.Step() {
		if w.handle.Stopped() {
			return false
		}

		path := walker.Path()
		if err := walker.Err(); err != nil {
			w.skip(metrics.SkipUnreadable)
			log.Debug("Skipping unreadable %s: %v", path, err)
			continue
		}

		info := walker.Stat()
		isRoot := path == root

		if !isRoot {
			if w.config.SkipHidden && strings.HasPrefix(info.Name(), ".") {
				w.skip(metrics.SkipHidden)
				if info.IsDir() {
					walker.SkipDir()
				}
				continue
			}
			if w.excluded(root, path) {
				w.skip(metrics.SkipExcluded)
				if info.IsDir() {
					walker.SkipDir()
				}
				continue
			}
		}

		if info.IsDir() {
			w.folders++
			w.handle.foldersIndexed.Add(1)
			metrics.IndexerFoldersProcessed.Inc()
			continue
		}

		if info.Mode()&os.ModeSymlink != 0 {
			target, ok := w.symlinkTarget(path)
			if !ok {
				continue
			}
			info = linkInfo{FileInfo: target, name: info.Name()}
		}

		if !info.Mode().IsRegular() {
			w.skip(metrics.SkipIrregular)
			continue
		}

		w.visitFile(path, info)
	}
	return true
}

// symlinkTarget stats the target of a link. Links to directories are never
// descended into, so only links to regular files are kept.
func (w *walk) symlinkTarget(path string) (os.FileInfo, bool) {
	target, err := filesystem.StatWithRetry(path, w.config.Retry)
	if err != nil {
		w.skip(metrics.SkipUnreadable)
		log.Debug("Skipping dangling link %s: %v", path, err)
		return nil, false
	}
	if !target.Mode().IsRegular() {
		w.skip(metrics.SkipIrregular)
		return nil, false
	}
	return target, true
}

// linkInfo reports the target's size and times under the link's own name.
type linkInfo struct {
	os.FileInfo
	name string
}

func (l linkInfo) Name() string { return l.name }

func (w *walk) visitFile(path string, info os.FileInfo) {
	ext := filetypes.ExtensionOf(info.Name())
	if !w.filters.Allows(ext) {
		w.skip(metrics.SkipFiltered)
		return
	}
	if _, dup := w.seen[path]; dup {
		w.skip(metrics.SkipDuplicate)
		return
	}
	w.seen[path] = struct{}{}

	record := catalog.FileRecord{
		Path:       path,
		Name:       info.Name(),
		SizeBytes:  info.Size(),
		ModifiedAt: info.ModTime(),
		CreatedAt:  createdAt(path, info),
		Extension:  ext,
	}
	if record.SizeBytes < 0 {
		record.SizeBytes = 0
	}

	w.catalog.Add(record)
	w.emitted++
	w.bytes += record.SizeBytes
	w.handle.filesIndexed.Add(1)
	metrics.IndexerFilesProcessed.Inc()

	w.listener.OnFileIndexed(record)

	if w.catalog.Added()%uint64(w.config.ProgressEvery) == 0 {
		w.listener.OnProgress(int(w.emitted), w.catalog.ExtensionCount())
	}
	if w.emitted%logEvery == 0 {
		log.Info("Indexed %d files, %d folders...", w.emitted, w.folders)
	}
}

// excluded reports whether path matches an exclusion pattern relative to root.
func (w *walk) excluded(root, path string) bool {
	if len(w.exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = strings.ToLower(filepath.ToSlash(rel))
	for _, pattern := range w.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (w *walk) skip(reason string) {
	w.skipped++
	metrics.IndexerEntriesSkipped.WithLabelValues(reason).Inc()
}
