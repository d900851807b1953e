package backend

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolProcessesEverySubmission(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]bool)

	p := NewPool(PoolOptions{Workers: 4}, func(path string) error {
		mu.Lock()
		seen[path] = true
		mu.Unlock()
		return nil
	})
	require.NoError(t, p.Initialize())

	paths := []string{"a.go", "b.go", "c.go", "d.go", "e.go"}
	for _, path := range paths {
		require.NoError(t, p.Submit(path))
	}
	require.NoError(t, p.DrainAndShutdown())

	for _, path := range paths {
		assert.True(t, seen[path], path)
	}
	assert.Equal(t, StateStopped, p.State())
}

func TestPoolDefaults(t *testing.T) {
	p := NewPool(PoolOptions{}, func(string) error { return nil })
	require.NoError(t, p.Initialize())
	assert.GreaterOrEqual(t, p.Workers(), 1)
	require.NoError(t, p.DrainAndShutdown())
}

func TestPoolBackpressure(t *testing.T) {
	// One worker, queue capacity two: with the worker held mid-file and
	// two items queued, a third submission must block until a slot
	// frees, and drain must wait for queue-empty plus worker-idle.
	hold := make(chan struct{})
	var processed atomic.Int32

	p := NewPool(PoolOptions{Workers: 1, QueueLength: 2}, func(string) error {
		<-hold
		processed.Add(1)
		return nil
	})
	require.NoError(t, p.Initialize())

	// First submission is taken by the worker, which parks on hold.
	require.NoError(t, p.Submit("busy.go"))
	waitFor(t, func() bool { return p.QueueLen() == 0 })

	// Fill the queue.
	require.NoError(t, p.Submit("q1.go"))
	require.NoError(t, p.Submit("q2.go"))
	assert.Equal(t, 2, p.QueueLen())

	submitted := make(chan error, 1)
	go func() {
		submitted <- p.Submit("blocked.go")
	}()

	select {
	case err := <-submitted:
		t.Fatalf("submission should have blocked, got %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	// Release the worker; the blocked submission completes once a slot
	// frees.
	close(hold)
	require.NoError(t, <-submitted)
	require.NoError(t, p.DrainAndShutdown())
	assert.Equal(t, int32(4), processed.Load())
}

func TestPoolSubmitAfterShutdownRejected(t *testing.T) {
	p := NewPool(PoolOptions{Workers: 1}, func(string) error { return nil })
	require.NoError(t, p.Initialize())
	require.NoError(t, p.DrainAndShutdown())

	err := p.Submit("late.go")
	assert.ErrorIs(t, err, ErrStopped)
}

func TestPoolDrainTwiceFails(t *testing.T) {
	p := NewPool(PoolOptions{Workers: 1}, func(string) error { return nil })
	require.NoError(t, p.Initialize())
	require.NoError(t, p.DrainAndShutdown())
	assert.Error(t, p.DrainAndShutdown())
}

func TestPoolCollectsFileErrors(t *testing.T) {
	bad := errors.New("unreadable")
	p := NewPool(PoolOptions{Workers: 2}, func(path string) error {
		if path == "bad.go" {
			return bad
		}
		return nil
	})
	require.NoError(t, p.Initialize())
	require.NoError(t, p.Submit("ok.go"))
	require.NoError(t, p.Submit("bad.go"))
	require.NoError(t, p.DrainAndShutdown())

	errs := p.Errs.All()
	require.Len(t, errs, 1)
	assert.Equal(t, "bad.go", errs[0].Path)
	assert.ErrorIs(t, errs[0].Err, bad)
}

func TestPoolInvalidConfig(t *testing.T) {
	p := NewPool(PoolOptions{Workers: maxWorkers + 1}, func(string) error { return nil })
	assert.Error(t, p.Initialize())

	p = NewPool(PoolOptions{QueueLength: -1}, func(string) error { return nil })
	assert.Error(t, p.Initialize())
}

func TestPoolSpawnFailure(t *testing.T) {
	p := NewPool(PoolOptions{Workers: 2}, func(string) error { return nil })
	p.spawn = func(func()) error {
		return errors.New("thread limit")
	}
	assert.Error(t, p.Initialize())
	assert.Equal(t, StateNew, p.State())
}

func TestSelectFallsBackToSync(t *testing.T) {
	// An invalid pool configuration must not abort the run: the
	// synchronous backend takes over.
	var calls atomic.Int32
	b, err := Select(KindAuto, PoolOptions{QueueLength: -1}, func(string) error {
		calls.Add(1)
		return nil
	}, nil)
	require.NoError(t, err)

	_, isSync := b.(*Sync)
	assert.True(t, isSync)
	require.NoError(t, b.Submit("a.go"))
	require.NoError(t, b.DrainAndShutdown())
	assert.Equal(t, int32(1), calls.Load())
}

func TestSelectKinds(t *testing.T) {
	fn := func(string) error { return nil }

	b, err := Select(KindSync, PoolOptions{}, fn, nil)
	require.NoError(t, err)
	_, isSync := b.(*Sync)
	assert.True(t, isSync)
	require.NoError(t, b.DrainAndShutdown())

	b, err = Select(KindPool, PoolOptions{Workers: 1}, fn, nil)
	require.NoError(t, err)
	_, isPool := b.(*Pool)
	assert.True(t, isPool)
	require.NoError(t, b.DrainAndShutdown())
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindSync, ParseKind("sync"))
	assert.Equal(t, KindPool, ParseKind("POOL"))
	assert.Equal(t, KindAuto, ParseKind("auto"))
	assert.Equal(t, KindAuto, ParseKind(""))
	assert.Equal(t, KindAuto, ParseKind("bogus"))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}
