// internal/report/report.go
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// Summary is the per-run analysis result: immutable once computed, written
// exactly once.
type Summary struct {
	Length    int
	GCContent float64
}

// String renders the fixed two-line textual form of the summary.
func (s Summary) String() string {
	return fmt.Sprintf("Length: %d\nGC Content: %f", s.Length, s.GCContent)
}

// PersistenceError wraps a codec- or filesystem-level failure while writing
// the result artifact.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Write streams the summary text gzip-compressed to path. The artifact is
// built in a temp sibling and renamed into place, so a failed write leaves no
// readable half-written file behind.
func Write(s Summary, path string) error {
	fail := func(err error) error {
		return &PersistenceError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".summary-*")
	if err != nil {
		return fail(err)
	}
	name := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(name)
	}

	gw := gzip.NewWriter(tmp)
	if _, err := gw.Write([]byte(s.String())); err != nil {
		cleanup()
		return fail(err)
	}
	if err := gw.Close(); err != nil {
		cleanup()
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return fail(err)
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return fail(err)
	}
	return nil
}
