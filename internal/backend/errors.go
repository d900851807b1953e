package backend

import (
	"fmt"
	"sync"
)

// FileError records one per-file processing failure.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// FileErrors collects per-file failures from concurrent workers. Per-file
// failures never abort a run; callers inspect the collection after drain.
type FileErrors struct {
	mu   sync.Mutex
	errs []FileError
}

// Add appends an error to the collection. Safe for concurrent use.
func (e *FileErrors) Add(path string, err error) {
	e.mu.Lock()
	e.errs = append(e.errs, FileError{Path: path, Err: err})
	e.mu.Unlock()
}

// Len returns the number of collected errors.
func (e *FileErrors) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.errs)
}

// All returns a copy of the collected errors.
func (e *FileErrors) All() []FileError {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]FileError(nil), e.errs...)
}

// Error implements the error interface.
func (e *FileErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch len(e.errs) {
	case 0:
		return "no errors"
	case 1:
		return e.errs[0].Error()
	default:
		return fmt.Sprintf("%d files failed to process (first: %v)", len(e.errs), e.errs[0])
	}
}
