package backend

// Sync runs every submitted file inline on the driver goroutine. Submit
// returns the per-file status directly.
type Sync struct {
	fn      ProcessFunc
	stopped bool
}

// NewSync creates a synchronous backend.
func NewSync(fn ProcessFunc) *Sync {
	return &Sync{fn: fn}
}

// Initialize is a no-op for the synchronous backend.
func (s *Sync) Initialize() error {
	s.stopped = false
	return nil
}

// Submit runs the file inline and returns its status.
func (s *Sync) Submit(path string) error {
	if s.stopped {
		return ErrStopped
	}
	return s.fn(path)
}

// DrainAndShutdown marks the backend stopped. There is never queued or
// in-flight work to wait for.
func (s *Sync) DrainAndShutdown() error {
	s.stopped = true
	return nil
}
