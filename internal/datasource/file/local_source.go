// Package file implements a local filesystem-backed data source.
package file

import (
	"context"
	"fmt"
	"io"
	"os"

	"retailprep/internal/errs"
)

// Local is a filesystem data source that opens files from the local disk.
type Local struct{ path string }

// NewLocal returns a new Local data source bound to the provided filesystem
// path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Path returns the bound filesystem path.
func (l *Local) Path() string { return l.path }

// Open opens the configured path for reading and returns an io.ReadCloser.
//
// Behavior:
//   - If the context is already canceled or its deadline exceeded at the time
//     of the call, Open returns the context error immediately without touching
//     the filesystem.
//   - Any filesystem error is returned as *errs.SourceUnavailableError wrapping
//     the underlying error, so errors.Is(err, os.ErrNotExist) still works.
//   - Directories are rejected up front rather than failing on first read.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, &errs.SourceUnavailableError{Locator: l.path, Err: fmt.Errorf("open %s: %w", l.path, err)}
	}
	if fi, err := f.Stat(); err == nil && fi.IsDir() {
		_ = f.Close()
		return nil, &errs.SourceUnavailableError{Locator: l.path, Err: fmt.Errorf("%s is a directory", l.path)}
	}
	return f, nil
}
