// Package parallel runs per-stroke tessellation tasks across a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// WorkerPool executes batches of independent tasks.
//
// Each batch submitted through ExecuteAll completes before ExecuteAll
// returns, so a caller that submits at most one task per stroke per batch
// never runs two updates of the same stroke at once.
//
// Thread safety: ExecuteAll may be called from several goroutines and may
// race with Close; tasks submitted after Close run on the caller.
type WorkerPool struct {
	workers int
	queue   chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once

	// submitMu keeps Close from stopping the workers mid-submission.
	submitMu sync.RWMutex
	running  bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), max(workers*4, 8)),
		done:    make(chan struct{}),
		running: true,
	}

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case work := <-p.queue:
			work()
		}
	}
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// ExecuteAll runs every task and waits for all of them. After Close the
// tasks run on the calling goroutine instead.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}

	p.submitMu.RLock()
	if !p.running || len(work) == 1 {
		p.submitMu.RUnlock()
		for _, fn := range work {
			fn()
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(work))
	for _, fn := range work {
		p.queue <- func() {
			defer wg.Done()
			fn()
		}
	}
	p.submitMu.RUnlock()
	wg.Wait()
}

// Close stops the workers after they finish their current task. Tasks still
// queued at that point are run by Close. Close is idempotent.
func (p *WorkerPool) Close() {
	p.once.Do(func() {
		p.submitMu.Lock()
		p.running = false
		close(p.done)
		p.submitMu.Unlock()

		p.wg.Wait()
		for {
			select {
			case work := <-p.queue:
				work()
			default:
				return
			}
		}
	})
}
