package catalog

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func record(path, ext string, size int64) FileRecord {
	return FileRecord{
		Path:       path,
		Name:       filepath.Base(path),
		SizeBytes:  size,
		ModifiedAt: time.Unix(1700000000, 0),
		Extension:  ext,
	}
}

func TestNewCatalogIsEmpty(t *testing.T) {
	g := NewWithT(t)
	c := New()

	g.Expect(c.Len()).To(BeZero())
	g.Expect(c.ExtensionCount()).To(BeZero())
	g.Expect(c.Generation()).To(Equal(uint64(1)))

	snap := c.Snapshot()
	g.Expect(snap.Records()).To(BeEmpty())
	g.Expect(snap.Extensions()).To(BeEmpty())
}

func TestAddTracksExtensionsAndBytes(t *testing.T) {
	g := NewWithT(t)
	c := New()

	c.Add(record("/r/aaaaa.txt", "txt", 10))
	c.Add(record("/r/bbbbb.txt", "txt", 20))
	c.Add(record("/r/ccccc.pdf", "pdf", 5))
	c.Add(FileRecord{Path: "/r/Makefile", Name: "Makefile"})

	g.Expect(c.Len()).To(Equal(4))
	g.Expect(c.Added()).To(Equal(uint64(4)))
	g.Expect(c.ExtensionCount()).To(Equal(3))

	snap := c.Snapshot()
	g.Expect(snap.Extensions()).To(Equal([]string{"", "pdf", "txt"}))
	g.Expect(snap.TotalBytes()).To(Equal(int64(35)))
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	g := NewWithT(t)
	c := New()

	paths := []string{"/z/zzzzz.txt", "/a/aaaaa.txt", "/m/mmmmm.txt"}
	for _, p := range paths {
		c.Add(record(p, "txt", 1))
	}

	var got []string
	for _, r := range c.Snapshot().Records() {
		got = append(got, r.Path)
	}
	g.Expect(got).To(Equal(paths))
}

func TestSnapshotIsPointInTime(t *testing.T) {
	g := NewWithT(t)
	c := New()

	c.Add(record("/r/aaaaa.txt", "txt", 1))
	snap := c.Snapshot()

	c.Add(record("/r/bbbbb.pdf", "pdf", 1))

	g.Expect(snap.Len()).To(Equal(1))
	g.Expect(snap.Extensions()).To(Equal([]string{"txt"}))
	g.Expect(c.Snapshot().Len()).To(Equal(2))
}

func TestSnapshotExtensionsAreCopied(t *testing.T) {
	c := New()
	c.Add(record("/r/aaaaa.txt", "txt", 1))
	snap := c.Snapshot()

	exts := snap.Extensions()
	exts[0] = "mutated"

	if snap.Extensions()[0] != "txt" {
		t.Error("Extensions() must return a copy")
	}
}

func TestClearStartsNewGeneration(t *testing.T) {
	g := NewWithT(t)
	c := New()

	c.Add(record("/r/aaaaa.txt", "txt", 7))
	before := c.Snapshot()

	c.Clear()

	g.Expect(c.Len()).To(BeZero())
	g.Expect(c.ExtensionCount()).To(BeZero())
	g.Expect(c.Added()).To(BeZero())
	g.Expect(c.Generation()).To(Equal(before.Generation() + 1))

	c.Add(record("/r/bbbbb.pdf", "pdf", 1))

	g.Expect(before.Len()).To(Equal(1))
	g.Expect(before.Records()[0].Path).To(Equal("/r/aaaaa.txt"))
	g.Expect(c.Snapshot().Generation()).To(Equal(before.Generation() + 1))
}

func TestFromRecords(t *testing.T) {
	g := NewWithT(t)
	records := []FileRecord{
		record("/r/bbbbb.txt", "txt", 1),
		record("/r/aaaaa.log", "log", 2),
	}

	snap := FromRecords(records).Snapshot()

	g.Expect(snap.Len()).To(Equal(2))
	g.Expect(snap.Records()[0].Path).To(Equal("/r/bbbbb.txt"))
	g.Expect(snap.Extensions()).To(Equal([]string{"log", "txt"}))
	g.Expect(snap.TotalBytes()).To(Equal(int64(3)))
}

func TestEmptySnapshot(t *testing.T) {
	snap := Empty()
	if snap.Len() != 0 || len(snap.Extensions()) != 0 || snap.TotalBytes() != 0 {
		t.Errorf("Empty() = %+v, want no records", snap)
	}
}

func TestFileRecordTimestamps(t *testing.T) {
	g := NewWithT(t)

	r := FileRecord{Path: "/x", Name: "x"}
	g.Expect(r.HasModifiedAt()).To(BeFalse())
	g.Expect(r.HasCreatedAt()).To(BeFalse())

	r.ModifiedAt = time.Unix(0, 1)
	g.Expect(r.HasModifiedAt()).To(BeTrue())

	utc := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	a := FileRecord{Path: "/x", ModifiedAt: utc}
	b := FileRecord{Path: "/x", ModifiedAt: utc.In(time.FixedZone("X", 3600))}
	g.Expect(a.Equal(b)).To(BeTrue())
	b.SizeBytes = 1
	g.Expect(a.Equal(b)).To(BeFalse())
}

func TestConcurrentAddAndSnapshot(t *testing.T) {
	g := NewWithT(t)
	c := New()

	const total = 5000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			c.Add(FileRecord{
				Path:      fmt.Sprintf("/r/%05d.txt", i),
				Name:      fmt.Sprintf("%05d.txt", i),
				SizeBytes: int64(i),
				Extension: "txt",
			})
		}
	}()

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap := c.Snapshot()
			n := snap.Len()
			for j, r := range snap.Records() {
				if r.Path != fmt.Sprintf("/r/%05d.txt", j) {
					t.Errorf("torn record at %d: %+v", j, r)
					return
				}
			}
			if snap.Len() != n {
				t.Errorf("snapshot length changed from %d to %d", n, snap.Len())
			}
		}()
	}

	wg.Wait()
	g.Expect(c.Len()).To(Equal(total))
}
