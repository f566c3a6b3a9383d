package indexer

import "file-indexer/internal/catalog"

// Listener receives job events. All methods are called from the job's
// goroutine in traversal order and must not block for long.
type Listener interface {
	OnFileIndexed(record catalog.FileRecord)
	OnProgress(files, types int)
	OnFinished(summary Summary)
}

// Callbacks adapts optional functions to Listener. Nil fields are no-ops.
type Callbacks struct {
	FileIndexed func(record catalog.FileRecord)
	Progress    func(files, types int)
	Finished    func(summary Summary)
}

var _ Listener = Callbacks{}

// OnFileIndexed implements Listener.
func (c Callbacks) OnFileIndexed(record catalog.FileRecord) {
	if c.FileIndexed != nil {
		c.FileIndexed(record)
	}
}

// OnProgress implements Listener.
func (c Callbacks) OnProgress(files, types int) {
	if c.Progress != nil {
		c.Progress(files, types)
	}
}

// OnFinished implements Listener.
func (c Callbacks) OnFinished(summary Summary) {
	if c.Finished != nil {
		c.Finished(summary)
	}
}
