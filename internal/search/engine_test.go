package search

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"file-indexer/internal/catalog"
	"file-indexer/internal/filesystem"
)

func snapshotOf(names ...string) *catalog.Snapshot {
	c := catalog.New()
	for _, n := range names {
		c.Add(catalog.FileRecord{Path: "/data/" + n, Name: n, Extension: filepath.Ext(n)})
	}
	return c.Snapshot()
}

func names(records []catalog.FileRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

// fakeReader serves previews from memory and records which paths were read.
type fakeReader struct {
	mu       sync.Mutex
	contents map[string]string
	reads    []string
}

func (f *fakeReader) ReadPreview(path string, maxChars int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, path)
	text, ok := f.contents[path]
	if !ok {
		return "", os.ErrNotExist
	}
	if r := []rune(text); len(r) > maxChars {
		return string(r[:maxChars]), nil
	}
	return text, nil
}

func (f *fakeReader) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reads)
}

func newTestEngine(reader ContentReader) *Engine {
	config := DefaultConfig()
	config.Workers = 4
	config.Retry = filesystem.NoRetry()
	e := NewEngine(config)
	if reader != nil {
		e.SetContentReader(reader)
	}
	return e
}

func TestLiteralCaseInsensitive(t *testing.T) {
	g := NewWithT(t)
	snap := snapshotOf("Report.txt", "annual_report.pdf", "x.log")

	res, err := newTestEngine(nil).Search(snap, Query{Text: "report"})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(names(res.Records)).To(Equal([]string{"Report.txt", "annual_report.pdf"}))
}

func TestLiteralCaseSensitive(t *testing.T) {
	g := NewWithT(t)
	snap := snapshotOf("Report.txt", "annual_report.pdf", "x.log")

	res, err := newTestEngine(nil).Search(snap, Query{Text: "report", CaseSensitive: true})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(names(res.Records)).To(Equal([]string{"annual_report.pdf"}))
}

func TestRegexMatching(t *testing.T) {
	tests := []struct {
		name          string
		pattern       string
		caseSensitive bool
		want          []string
	}{
		{
			name:    "date prefix",
			pattern: `^\d{4}-\d{2}-\d{2}`,
			want:    []string{"2024-01-01-notes.txt"},
		},
		{
			name:    "insensitive by default",
			pattern: `^NOTES`,
			want:    []string{"notes-2024.txt"},
		},
		{
			name:          "sensitive",
			pattern:       `^NOTES`,
			caseSensitive: true,
			want:          []string{},
		},
		{
			name:    "alternation",
			pattern: `\.(txt|md)$`,
			want:    []string{"2024-01-01-notes.txt", "notes-2024.txt", "README.md"},
		},
	}

	snap := snapshotOf("2024-01-01-notes.txt", "notes-2024.txt", "README.md")
	engine := newTestEngine(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			res, err := engine.Search(snap, Query{Text: tt.pattern, UseRegex: true, CaseSensitive: tt.caseSensitive})
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(names(res.Records)).To(Equal(tt.want))
		})
	}
}

func TestInvalidPattern(t *testing.T) {
	g := NewWithT(t)
	snap := snapshotOf("a.txt")

	for _, pattern := range []string{"(unbalanced", "[z-a]", "a**"} {
		res, err := newTestEngine(nil).Search(snap, Query{Text: pattern, UseRegex: true})
		g.Expect(errors.Is(err, ErrInvalidPattern)).To(BeTrue(), "pattern %q", pattern)
		g.Expect(res.Records).To(BeNil())
	}
}

func TestEmptyQueryMatchesEverything(t *testing.T) {
	g := NewWithT(t)
	snap := snapshotOf("a", "b", "c")

	res, err := newTestEngine(nil).Search(snap, Query{})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Records).To(HaveLen(3))
}

func TestNoMatchesIsEmptyNotError(t *testing.T) {
	g := NewWithT(t)

	res, err := newTestEngine(nil).Search(snapshotOf("a.txt"), Query{Text: "zzz"})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Records).NotTo(BeNil())
	g.Expect(res.Records).To(BeEmpty())
}

func TestContentNotReadWhenDisabled(t *testing.T) {
	g := NewWithT(t)
	reader := &fakeReader{contents: map[string]string{"/data/a.txt": "report"}}

	res, err := newTestEngine(reader).Search(snapshotOf("a.txt"), Query{Text: "report"})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Records).To(BeEmpty())
	g.Expect(reader.readCount()).To(BeZero())
}

func TestContentSearchSkipsNameMatches(t *testing.T) {
	g := NewWithT(t)
	reader := &fakeReader{contents: map[string]string{
		"/data/report.txt": "nothing here",
		"/data/notes.txt":  "quarterly REPORT attached",
		"/data/other.txt":  "unrelated",
	}}
	snap := snapshotOf("report.txt", "notes.txt", "other.txt", "missing.txt")

	res, err := newTestEngine(reader).Search(snap, Query{Text: "report", SearchContent: true})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(names(res.Records)).To(Equal([]string{"report.txt", "notes.txt"}))
	g.Expect(reader.reads).NotTo(ContainElement("/data/report.txt"))
	g.Expect(reader.reads).To(ContainElement("/data/missing.txt"))
}

func TestContentSearchPreservesCatalogOrder(t *testing.T) {
	g := NewWithT(t)
	contents := map[string]string{}
	var all []string
	for i := 0; i < 200; i++ {
		name := fmt.Sprintf("file-%03d.txt", i)
		all = append(all, name)
		if i%3 == 0 {
			contents["/data/"+name] = "needle"
		}
	}
	snap := snapshotOf(all...)

	res, err := newTestEngine(&fakeReader{contents: contents}).Search(snap, Query{Text: "needle", SearchContent: true})

	g.Expect(err).NotTo(HaveOccurred())
	var want []string
	for i, n := range all {
		if i%3 == 0 {
			want = append(want, n)
		}
	}
	g.Expect(names(res.Records)).To(Equal(want))
}

func TestContentRespectsPreviewLimit(t *testing.T) {
	g := NewWithT(t)
	long := make([]rune, 0, 1100)
	for i := 0; i < 1000; i++ {
		long = append(long, 'x')
	}
	long = append(long, []rune("needle")...)
	reader := &fakeReader{contents: map[string]string{"/data/big.txt": string(long)}}

	res, err := newTestEngine(reader).Search(snapshotOf("big.txt"), Query{Text: "needle", SearchContent: true})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Records).To(BeEmpty())
}

func TestSearchDoesNotMutateSnapshot(t *testing.T) {
	g := NewWithT(t)
	snap := snapshotOf("b.txt", "a.txt", "c.txt")
	before := append([]catalog.FileRecord{}, snap.Records()...)

	_, err := newTestEngine(nil).Search(snap, Query{Text: "a"})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(snap.Records()).To(Equal(before))
}

func TestSearchWhileCatalogGrows(t *testing.T) {
	g := NewWithT(t)
	c := catalog.New()
	for i := 0; i < 100; i++ {
		c.Add(catalog.FileRecord{Path: "/x/" + string(rune('a'+i%26)), Name: "match"})
	}
	snap := c.Snapshot()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			c.Add(catalog.FileRecord{Path: "/y", Name: "match"})
		}
	}()

	res, err := newTestEngine(nil).Search(snap, Query{Text: "match"})
	<-done

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Records).To(HaveLen(100))
}

func TestElapsedMillis(t *testing.T) {
	r := Result{Elapsed: 1500 * time.Microsecond}
	if r.ElapsedMillis() != 1 {
		t.Errorf("ElapsedMillis() = %d, want 1", r.ElapsedMillis())
	}
}

func TestSearchAsyncDelivers(t *testing.T) {
	g := NewWithT(t)

	ch := newTestEngine(nil).SearchAsync(context.Background(), snapshotOf("report.txt"), Query{Text: "report"})

	var outcome Outcome
	g.Eventually(ch).Should(Receive(&outcome))
	g.Expect(outcome.Err).NotTo(HaveOccurred())
	g.Expect(outcome.Result.Records).To(HaveLen(1))
	g.Eventually(ch).Should(BeClosed())
}

func TestSearchAsyncDeliversInvalidPattern(t *testing.T) {
	g := NewWithT(t)

	ch := newTestEngine(nil).SearchAsync(context.Background(), snapshotOf("a"), Query{Text: "(", UseRegex: true})

	var outcome Outcome
	g.Eventually(ch).Should(Receive(&outcome))
	g.Expect(errors.Is(outcome.Err, ErrInvalidPattern)).To(BeTrue())
}

func TestSearchAsyncAbandoned(t *testing.T) {
	g := NewWithT(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := newTestEngine(nil).SearchAsync(ctx, snapshotOf("a"), Query{Text: "a"})

	// Either the result raced in or the channel was closed without one.
	g.Eventually(func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}).Should(BeTrue())
}

func TestQueryMode(t *testing.T) {
	if (Query{}).Mode() != "literal" {
		t.Error("literal query should report literal mode")
	}
	if (Query{UseRegex: true}).Mode() != "regex" {
		t.Error("regex query should report regex mode")
	}
}
