package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", config.MaxRetries)
	}
	if config.InitialBackoff != 50*time.Millisecond {
		t.Errorf("InitialBackoff = %v, want 50ms", config.InitialBackoff)
	}
	if config.MaxBackoff != 500*time.Millisecond {
		t.Errorf("MaxBackoff = %v, want 500ms", config.MaxBackoff)
	}
}

func TestIsNFSStaleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "ESTALE error", err: syscall.ESTALE, want: true},
		{name: "wrapped ESTALE", err: &os.PathError{Op: "stat", Path: "/x", Err: syscall.ESTALE}, want: true},
		{name: "ENOENT error", err: syscall.ENOENT, want: false},
		{name: "generic error", err: os.ErrNotExist, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isNFSStaleError(tt.err)
			if got != tt.want {
				t.Errorf("isNFSStaleError() = %v, want %v", got, tt.want)
			}
		})
	}
}

// recordingObserver captures observer calls for assertions.
type recordingObserver struct {
	mu        sync.Mutex
	ops       []string
	errs      []error
	attempts  int
	successes int
	failures  int
	stale     int
}

func (r *recordingObserver) ObserveOperation(op string, _ float64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
	r.errs = append(r.errs, err)
}

func (r *recordingObserver) ObserveRetryAttempt(string) { r.mu.Lock(); r.attempts++; r.mu.Unlock() }
func (r *recordingObserver) ObserveRetrySuccess(string) { r.mu.Lock(); r.successes++; r.mu.Unlock() }
func (r *recordingObserver) ObserveRetryFailure(string) { r.mu.Lock(); r.failures++; r.mu.Unlock() }
func (r *recordingObserver) ObserveStaleError(string)   { r.mu.Lock(); r.stale++; r.mu.Unlock() }

func withObserver(t *testing.T) *recordingObserver {
	t.Helper()
	obs := &recordingObserver{}
	SetObserver(obs)
	t.Cleanup(func() { SetObserver(nil) })
	return obs
}

func fastRetry() RetryConfig {
	return RetryConfig{MaxRetries: 3, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}
}

func TestWithRetry_RecoversFromStaleHandle(t *testing.T) {
	g := NewWithT(t)
	obs := withObserver(t)

	calls := 0
	got, err := withRetry(OpStat, "/nfs/file", fastRetry(), func() (int, error) {
		calls++
		if calls < 3 {
			return 0, syscall.ESTALE
		}
		return 42, nil
	})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(Equal(42))
	g.Expect(calls).To(Equal(3))
	g.Expect(obs.stale).To(Equal(2))
	g.Expect(obs.attempts).To(Equal(2))
	g.Expect(obs.successes).To(Equal(1))
	g.Expect(obs.failures).To(Equal(0))
	g.Expect(obs.ops).To(Equal([]string{OpStat}))
}

func TestWithRetry_GivesUpAfterMaxRetries(t *testing.T) {
	g := NewWithT(t)
	obs := withObserver(t)

	calls := 0
	_, err := withRetry(OpOpen, "/nfs/file", fastRetry(), func() (string, error) {
		calls++
		return "", syscall.ESTALE
	})

	g.Expect(errors.Is(err, syscall.ESTALE)).To(BeTrue())
	g.Expect(calls).To(Equal(4))
	g.Expect(obs.stale).To(Equal(4))
	g.Expect(obs.attempts).To(Equal(3))
	g.Expect(obs.failures).To(Equal(1))
}

func TestWithRetry_DoesNotRetryOtherErrors(t *testing.T) {
	g := NewWithT(t)
	obs := withObserver(t)

	calls := 0
	_, err := withRetry(OpReadDir, "/missing", fastRetry(), func() (bool, error) {
		calls++
		return false, fmt.Errorf("boom: %w", os.ErrPermission)
	})

	g.Expect(errors.Is(err, os.ErrPermission)).To(BeTrue())
	g.Expect(calls).To(Equal(1))
	g.Expect(obs.stale).To(BeZero())
	g.Expect(obs.errs).To(HaveLen(1))
	g.Expect(obs.errs[0]).To(HaveOccurred())
}

func TestWithRetry_NoRetry(t *testing.T) {
	calls := 0
	_, err := withRetry(OpStat, "/x", NoRetry(), func() (int, error) {
		calls++
		return 0, syscall.ESTALE
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestStatAndOpenWithRetry(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	g.Expect(os.WriteFile(path, []byte("hello"), 0o600)).To(Succeed())

	info, err := StatWithRetry(path, DefaultRetryConfig())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(info.Size()).To(Equal(int64(5)))

	f, err := OpenWithRetry(path, DefaultRetryConfig())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(f.Close()).To(Succeed())

	_, err = StatWithRetry(filepath.Join(dir, "nope"), DefaultRetryConfig())
	g.Expect(os.IsNotExist(err)).To(BeTrue())
}

func TestLstatWithRetry_DoesNotFollowSymlinks(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link.txt")
	g.Expect(os.WriteFile(target, []byte("x"), 0o600)).To(Succeed())
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	info, err := LstatWithRetry(link, NoRetry())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(info.Mode() & os.ModeSymlink).NotTo(BeZero())
}

func TestRetryFS_WalksSorted(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()
	g.Expect(os.MkdirAll(filepath.Join(dir, "b"), 0o755)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(dir, "c.txt"), nil, 0o600)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o600)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(dir, "b", "inner.txt"), nil, 0o600)).To(Succeed())

	var seen []string
	walker := NewRetryFS(NoRetry()).Walk(dir)
	for walker.Step() {
		g.Expect(walker.Err()).NotTo(HaveOccurred())
		rel, err := filepath.Rel(dir, walker.Path())
		g.Expect(err).NotTo(HaveOccurred())
		seen = append(seen, filepath.ToSlash(rel))
	}

	g.Expect(seen).To(Equal([]string{".", "a.txt", "b", "b/inner.txt", "c.txt"}))
}

func TestRetryFS_Join(t *testing.T) {
	got := NewRetryFS(NoRetry()).Join("a", "b", "c")
	if got != filepath.Join("a", "b", "c") {
		t.Errorf("Join() = %q", got)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.idx")

	g.Expect(WriteFileAtomic(path, []byte("first"), 0o644)).To(Succeed())
	g.Expect(WriteFileAtomic(path, []byte("second"), 0o644)).To(Succeed())

	data, err := os.ReadFile(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(string(data)).To(Equal("second"))

	entries, err := os.ReadDir(filepath.Dir(path))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(entries).To(HaveLen(1), "temp files must not be left behind")
}
