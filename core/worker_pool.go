package core

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"
)

const defaultQueueCap = 16

// DefaultWorkerCount returns the worker count used when none is
// configured: one goroutine per CPU, keeping one CPU free, and at least
// one worker.
func DefaultWorkerCount() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

// WorkerPoolConfig holds optional collaborators for a WorkerPool. Nil
// fields fall back to defaults.
type WorkerPoolConfig struct {
	// Logger receives pool lifecycle and rejection events. Defaults to the
	// logrus-backed DefaultLogger.
	Logger Logger

	// Metrics receives execution, rejection, abandonment and queue-depth
	// events. Defaults to NilMetrics.
	Metrics Metrics
}

// WorkerPool owns a fixed set of background workers draining a shared FIFO
// queue of execution units. It enforces bounded concurrency (worker count
// fixed at construction) and admission control (enqueue rejected once
// stopped) and nothing else: no load shedding, no prioritization, no
// fairness beyond FIFO.
//
// FIFO order of the queue is the only cross-unit ordering guarantee; a
// unit enqueued later may still finish before one enqueued earlier when
// workers interleave.
type WorkerPool struct {
	id      string
	workers int

	mu        sync.Mutex
	cond      *sync.Cond
	queue     []*ExecutionUnit
	accepting bool

	wg      sync.WaitGroup
	logger  Logger
	metrics Metrics
}

// NewWorkerPool creates a pool and starts its workers immediately. A
// worker count below one selects DefaultWorkerCount.
func NewWorkerPool(id string, workers int) *WorkerPool {
	return NewWorkerPoolWithConfig(id, workers, nil)
}

// NewWorkerPoolWithConfig is NewWorkerPool with explicit collaborators.
func NewWorkerPoolWithConfig(id string, workers int, config *WorkerPoolConfig) *WorkerPool {
	if workers < 1 {
		workers = DefaultWorkerCount()
	}

	p := &WorkerPool{
		id:        id,
		workers:   workers,
		queue:     make([]*ExecutionUnit, 0, defaultQueueCap),
		accepting: true,
	}
	p.cond = sync.NewCond(&p.mu)

	if config != nil {
		p.logger = config.Logger
		p.metrics = config.Metrics
	}
	if p.logger == nil {
		p.logger = NewDefaultLogger()
	}
	if p.metrics == nil {
		p.metrics = &NilMetrics{}
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.workerLoop(i)
	}

	p.logger.Info("worker pool started", F("pool", p.id), F("workers", workers))
	return p
}

// Enqueue appends a unit to the back of the queue and wakes one idle
// worker. Fails with ErrInvalidArgument for a nil unit and with
// ErrPoolStopped once shutdown has begun. Enqueue never blocks beyond
// brief lock acquisition.
func (p *WorkerPool) Enqueue(u *ExecutionUnit) error {
	if u == nil {
		return fmt.Errorf("enqueue of a nil execution unit: %w", ErrInvalidArgument)
	}

	p.mu.Lock()
	if !p.accepting {
		p.mu.Unlock()
		p.metrics.RecordTaskRejected(p.id, "pool stopped")
		p.logger.Warn("task rejected", F("pool", p.id), F("unit", u.ID()), F("reason", "pool stopped"))
		return fmt.Errorf("enqueue on a stopped pool: %w", ErrPoolStopped)
	}
	p.queue = append(p.queue, u)
	depth := len(p.queue)
	p.cond.Signal()
	p.mu.Unlock()

	p.metrics.RecordQueueDepth(p.id, depth)
	return nil
}

// workerLoop runs on each worker goroutine: block while the queue is empty
// and the pool still accepts work, exit once shutdown began, otherwise pop
// the front unit and execute it. The queue lock is never held while the
// unit runs, so a long task cannot stall the other workers.
func (p *WorkerPool) workerLoop(id int) {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && p.accepting {
			p.cond.Wait()
		}
		if !p.accepting {
			p.mu.Unlock()
			p.logger.Debug("worker exiting", F("pool", p.id), F("worker", id))
			return
		}
		u := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		depth := len(p.queue)
		p.mu.Unlock()

		p.metrics.RecordQueueDepth(p.id, depth)

		// A panic escaping the user work is not recovered here. Work that
		// wants recoverability returns its own error-carrying result type.
		start := time.Now()
		if err := u.Execute(); err != nil {
			if errors.Is(err, ErrDoubleRun) {
				// Lost race: another caller ran this unit first. Not a
				// user-work failure, just skip it.
				p.logger.Debug("unit already run, skipping", F("pool", p.id), F("worker", id), F("unit", u.ID()))
				continue
			}
			p.logger.Error("execute failed", F("pool", p.id), F("worker", id), F("unit", u.ID()), F("error", err))
			continue
		}
		p.metrics.RecordTaskExecuted(p.id, time.Since(start))
	}
}

// Stop begins shutdown: no further enqueues are admitted, idle workers are
// woken and joined, and units still queued are abandoned — their waiters
// unblock with an error instead of hanging forever. Workers finish the
// unit they are currently running. Stop is idempotent; once stopped, a
// pool never accepts work again.
func (p *WorkerPool) Stop() {
	p.mu.Lock()
	if !p.accepting {
		p.mu.Unlock()
		return
	}
	p.accepting = false
	leftovers := p.queue
	p.queue = nil
	p.cond.Broadcast()
	p.mu.Unlock()

	for _, u := range leftovers {
		if u.abandon() {
			p.metrics.RecordTaskAbandoned(p.id)
			p.logger.Warn("unit abandoned at shutdown", F("pool", p.id), F("unit", u.ID()))
		}
	}

	p.wg.Wait()
	p.logger.Info("worker pool stopped", F("pool", p.id), F("abandoned", len(leftovers)))
}

// ID returns the pool's identifier, used in log fields and metric labels.
func (p *WorkerPool) ID() string {
	return p.id
}

// WorkerCount returns the fixed number of workers.
func (p *WorkerPool) WorkerCount() int {
	return p.workers
}

// QueuedCount returns the number of units waiting in the queue.
func (p *WorkerPool) QueuedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Accepting reports whether the pool still admits work.
func (p *WorkerPool) Accepting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.accepting
}

// Stats returns a snapshot of the pool's runtime state.
func (p *WorkerPool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PoolStats{
		ID:        p.id,
		Workers:   p.workers,
		Queued:    len(p.queue),
		Accepting: p.accepting,
	}
}
