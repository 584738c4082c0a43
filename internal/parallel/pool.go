// Package parallel runs independent filter pipelines on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines with one queue each. An idle
// worker steals from the other queues before blocking on its own.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// mu orders Close against acquire; senders counts callers still
	// sending, and done is closed only once it drops to zero.
	mu      sync.Mutex
	senders sync.WaitGroup
}

// NewWorkerPool starts a pool with the given number of workers. Zero or
// negative means GOMAXPROCS.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	depth := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), depth)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.loop(i)
	}
	return p
}

func (p *WorkerPool) loop(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case fn := <-own:
			fn()
			continue
		default:
		}
		if fn := p.steal(id); fn != nil {
			fn()
			continue
		}
		select {
		case fn := <-own:
			fn()
		case <-p.done:
			for {
				select {
				case fn := <-own:
					fn()
				default:
					return
				}
			}
		}
	}
}

// steal takes one item from any queue other than id's, or returns nil.
func (p *WorkerPool) steal(id int) func() {
	for i := 1; i < p.workers; i++ {
		select {
		case fn := <-p.queues[(id+i)%p.workers]:
			return fn
		default:
		}
	}
	return nil
}

// acquire registers a sender. It fails once Close has started.
func (p *WorkerPool) acquire() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running.Load() {
		return false
	}
	p.senders.Add(1)
	return true
}

// ExecuteAll runs every item and waits for all of them. Items are spread
// round-robin over the workers. On a closed pool it does nothing; a batch
// racing with Close either runs completely or not at all.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 || !p.acquire() {
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(work))
	for i, fn := range work {
		p.queues[i%p.workers] <- func() {
			defer wg.Done()
			fn()
		}
	}
	p.senders.Done()
	wg.Wait()
}

// Submit queues fn on the shortest queue without waiting for it.
func (p *WorkerPool) Submit(fn func()) {
	if fn == nil || !p.acquire() {
		return
	}
	defer p.senders.Done()
	best := 0
	for i := 1; i < p.workers; i++ {
		if len(p.queues[i]) < len(p.queues[best]) {
			best = i
		}
	}
	p.queues[best] <- fn
}

// Close stops accepting work, runs what is queued and stops the workers.
// It is safe to call more than once.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.Load() {
		p.mu.Unlock()
		return
	}
	p.running.Store(false)
	p.mu.Unlock()

	p.senders.Wait()
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *WorkerPool) Workers() int { return p.workers }

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool { return p.running.Load() }

// QueuedWork returns an approximate count of queued items.
func (p *WorkerPool) QueuedWork() int {
	n := 0
	for _, q := range p.queues {
		n += len(q)
	}
	return n
}
