//go:build !linux && !darwin && !windows

package indexer

import (
	"os"
	"time"
)

// createdAt is unknown on platforms without a birth time.
func createdAt(string, os.FileInfo) time.Time {
	return time.Time{}
}
