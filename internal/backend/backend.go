// Package backend provides the execution backends that run per-file work:
// a synchronous inline variant and a bounded-queue worker pool.
package backend

import (
	"errors"
	"log/slog"
	"strings"
)

// ProcessFunc performs the full per-file operation for one submitted path.
type ProcessFunc func(path string) error

// Backend is the uniform submit/drain contract. Submit and
// DrainAndShutdown must be called from a single driver goroutine; workers
// run concurrently with both.
type Backend interface {
	// Initialize prepares the backend for submissions.
	Initialize() error
	// Submit hands one path to the backend. The synchronous variant runs
	// the work inline and returns its status; the pool variant enqueues
	// and may block on a full queue. After shutdown begins, Submit fails
	// with ErrStopped.
	Submit(path string) error
	// DrainAndShutdown stops accepting work, waits for queued and
	// in-flight work to finish, and releases resources.
	DrainAndShutdown() error
}

// ErrStopped reports a submission to a backend that has begun shutting
// down. No item is ever silently dropped: enqueue succeeds, blocks, or
// fails with this error.
var ErrStopped = errors.New("backend is shutting down")

// Kind selects a backend variant.
type Kind int

const (
	// KindAuto selects the pool backend, falling back to synchronous if
	// pool initialization fails.
	KindAuto Kind = iota
	// KindSync runs every file inline on the driver.
	KindSync
	// KindPool runs files on a bounded-queue worker pool.
	KindPool
)

// ParseKind converts a config string to a Kind. Unrecognized values map to
// KindAuto.
func ParseKind(s string) Kind {
	switch strings.ToLower(s) {
	case "sync":
		return KindSync
	case "pool":
		return KindPool
	default:
		return KindAuto
	}
}

func (k Kind) String() string {
	switch k {
	case KindSync:
		return "sync"
	case KindPool:
		return "pool"
	default:
		return "auto"
	}
}

// Select builds and initializes a backend of the requested kind. When pool
// initialization fails the run is not aborted: the synchronous backend is
// used instead.
func Select(kind Kind, opts PoolOptions, fn ProcessFunc, log *slog.Logger) (Backend, error) {
	if log == nil {
		log = slog.Default()
	}

	if kind == KindSync {
		b := NewSync(fn)
		return b, b.Initialize()
	}

	p := NewPool(opts, fn)
	if err := p.Initialize(); err != nil {
		log.Warn("worker pool unavailable, falling back to synchronous backend", "error", err)
		b := NewSync(fn)
		return b, b.Initialize()
	}
	return p, nil
}
