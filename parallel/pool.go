// Package parallel runs independent units of work on a bounded set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc queues f for execution. It may block until a worker is free.
	WorkerFunc func(f func())
	// WaitFunc blocks until every queued function returned. When done is true
	// the queue is closed first, after which WorkerFunc must not be called.
	WaitFunc func(done bool)
	// CancelFunc closes the queue. It is safe to call more than once.
	CancelFunc func()
)

type Pool struct {
	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc

	size int
	wg   sync.WaitGroup
}

// Start creates a pool of numWorkers goroutines, or GOMAXPROCS goroutines when
// numWorkers is below one. A pool of one runs every function inline on the
// caller's goroutine.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{size: numWorkers}
	if numWorkers == 1 {
		pool.Do = func(f func()) { f() }
		pool.Wait = func(bool) {}
		pool.Cancel = func() {}
		return pool
	}

	work := make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range work {
				f()
			}
		})
	}

	pool.Do = func(f func()) {
		work <- f
	}
	pool.Cancel = sync.OnceFunc(func() { close(work) })
	pool.Wait = func(done bool) {
		if done {
			pool.Cancel()
		}
		pool.wg.Wait()
	}

	return pool
}

// Size reports the number of workers.
func (p *Pool) Size() int {
	return p.size
}
