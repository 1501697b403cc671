// Package axwork wraps github.com/Carmen-Shannon/automation/tools/worker, the
// compute worker pool the teacher engine uses to fan animator CPU-prep work
// out across goroutines each frame. Here it parallelises per-column layout
// computation (workspace.Model.CalculateWorkspaceLayouts) instead, reusing
// the same pool-per-frame-barrier idiom. Damage-region coalescing in
// renderframe runs inline and does not use the pool.
package axwork

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Pool runs short CPU-bound jobs across a fixed set of reusable goroutines.
// Workers persist across frames; callers synchronise a frame's worth of jobs
// with a sync.WaitGroup rather than pool.Wait(), since Wait blocks until
// workers idle-exit and is unsuitable for a per-frame barrier.
type Pool struct {
	inner worker.DynamicWorkerPool

	mu     sync.Mutex
	nextID int
}

// New creates a Pool with the given worker count, task queue depth, and idle
// timeout before a worker goroutine exits when the queue is empty.
func New(workers, queueDepth int, idleTimeout time.Duration) *Pool {
	return &Pool{inner: worker.NewDynamicWorkerPool(workers, queueDepth, idleTimeout)}
}

// Submit enqueues fn to run on a pool worker and signals wg when it returns.
// Panics inside fn are not recovered; callers that fan out per-column or
// per-window work should keep fn free of panics (pure layout/geometry math).
func (p *Pool) Submit(wg *sync.WaitGroup, fn func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.mu.Unlock()

	wg.Add(1)
	p.inner.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer wg.Done()
			fn()
			return nil, nil
		},
	})
}

// Run submits fn for each item in items and blocks until all have completed.
func Run[T any](p *Pool, items []T, fn func(T)) {
	var wg sync.WaitGroup
	for _, item := range items {
		item := item
		p.Submit(&wg, func() { fn(item) })
	}
	wg.Wait()
}
