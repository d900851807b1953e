package backend

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc"
)

// State is the pool lifecycle phase.
type State int

const (
	// StateNew is the phase before Initialize.
	StateNew State = iota
	// StateRunning accepts submissions.
	StateRunning
	// StateDraining rejects submissions while queued and in-flight work
	// finishes.
	StateDraining
	// StateStopped is the terminal phase: queue empty, all workers
	// joined.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return "new"
	}
}

// maxWorkers bounds configured worker counts to something sane.
const maxWorkers = 1024

// PoolOptions configures the worker pool.
type PoolOptions struct {
	// Workers is the worker count. Zero selects the logical processor
	// count, minimum one.
	Workers int
	// QueueLength is the bounded queue capacity. Zero selects
	// max(64, 8*Workers).
	QueueLength int
}

// Pool executes submitted files on a fixed set of workers pulling from one
// bounded queue. A full queue blocks the submitter until a slot frees or
// shutdown begins, at which point the submission fails with ErrStopped.
type Pool struct {
	fn      ProcessFunc
	opts    PoolOptions
	workers int

	queue chan string
	stop  chan struct{}
	wg    conc.WaitGroup

	mu    sync.Mutex
	state State

	// Errs collects per-file failures from workers; they never abort the
	// run.
	Errs FileErrors

	// spawn starts one worker goroutine. Tests replace it to exercise
	// the initialization-failure fallback.
	spawn func(func()) error
}

// NewPool creates an uninitialized pool backend.
func NewPool(opts PoolOptions, fn ProcessFunc) *Pool {
	p := &Pool{fn: fn, opts: opts}
	p.spawn = func(worker func()) error {
		p.wg.Go(worker)
		return nil
	}
	return p
}

// Initialize validates the configuration, sizes the queue, and starts the
// workers. On error the pool is unusable and the caller should fall back to
// the synchronous backend.
func (p *Pool) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateNew {
		return fmt.Errorf("pool initialized twice (state %s)", p.state)
	}

	n := p.opts.Workers
	if n == 0 {
		n = runtime.NumCPU()
	}
	if n < 1 {
		return fmt.Errorf("invalid worker count %d", p.opts.Workers)
	}
	if n > maxWorkers {
		return fmt.Errorf("worker count %d exceeds limit %d", n, maxWorkers)
	}

	capacity := p.opts.QueueLength
	if capacity == 0 {
		capacity = 8 * n
		if capacity < 64 {
			capacity = 64
		}
	}
	if capacity < 1 {
		return fmt.Errorf("invalid queue length %d", p.opts.QueueLength)
	}

	p.workers = n
	p.queue = make(chan string, capacity)
	p.stop = make(chan struct{})

	for i := 0; i < n; i++ {
		if err := p.spawn(p.runWorker); err != nil {
			// Let already-started workers drain and exit before
			// reporting failure.
			close(p.stop)
			close(p.queue)
			p.wg.Wait()
			return fmt.Errorf("start worker %d: %w", i, err)
		}
	}

	p.state = StateRunning
	return nil
}

// Submit enqueues a path for processing. It blocks while the queue is at
// capacity and fails with ErrStopped once shutdown has begun.
func (p *Pool) Submit(path string) error {
	p.mu.Lock()
	if p.state != StateRunning {
		p.mu.Unlock()
		return ErrStopped
	}
	p.mu.Unlock()

	select {
	case p.queue <- path:
		return nil
	case <-p.stop:
		return ErrStopped
	}
}

// DrainAndShutdown moves the pool to draining, wakes any blocked
// submitter, waits until the queue is empty and every worker has finished
// its in-flight file, then joins the workers.
func (p *Pool) DrainAndShutdown() error {
	p.mu.Lock()
	if p.state != StateRunning {
		state := p.state
		p.mu.Unlock()
		return fmt.Errorf("drain in state %s", state)
	}
	p.state = StateDraining
	p.mu.Unlock()

	close(p.stop)
	close(p.queue)
	p.wg.Wait()

	p.mu.Lock()
	p.state = StateStopped
	p.mu.Unlock()
	return nil
}

// State returns the current lifecycle phase.
func (p *Pool) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// QueueLen returns the number of currently queued items.
func (p *Pool) QueueLen() int {
	return len(p.queue)
}

// Workers returns the effective worker count after Initialize.
func (p *Pool) Workers() int {
	return p.workers
}

// runWorker drains the queue until it is closed and empty.
func (p *Pool) runWorker() {
	for path := range p.queue {
		if err := p.fn(path); err != nil && !errors.Is(err, ErrStopped) {
			p.Errs.Add(path, err)
		}
	}
}
