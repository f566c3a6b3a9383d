//go:build windows

package indexer

import (
	"os"
	"syscall"
	"time"
)

func createdAt(_ string, info os.FileInfo) time.Time {
	d, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}
	}
	return time.Unix(0, d.CreationTime.Nanoseconds())
}
