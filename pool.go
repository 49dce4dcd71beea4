package taskpool

import (
	"sync"

	"github.com/taskforge/go-taskpool/config"
	"github.com/taskforge/go-taskpool/core"
)

var (
	defaultPool *core.WorkerPool
	defaultMu   sync.Mutex
)

// DefaultPool returns the process-wide worker pool, constructing it on
// first use. The worker count comes from package config: a build-time
// forced count, the TASKPOOL_WORKERS environment variable, or
// max(NumCPU-1, 1).
//
// Prefer passing an explicit pool through your program (RunAsyncOn) and
// fall back to this one only at the boundary.
func DefaultPool() *core.WorkerPool {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultPool == nil {
		defaultPool = core.NewWorkerPool("default-pool", defaultWorkerCount())
	}
	return defaultPool
}

// InitDefaultPool constructs the default pool with an explicit worker
// count and configuration, replacing lazy construction. It does nothing if
// the default pool already exists.
func InitDefaultPool(workers int, cfg *core.WorkerPoolConfig) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultPool != nil {
		return
	}
	defaultPool = core.NewWorkerPoolWithConfig("default-pool", workers, cfg)
}

// ShutdownDefaultPool stops the default pool and joins its workers. Tasks
// still queued are abandoned: their Await calls return an error wrapping
// ErrPoolStopped. A later DefaultPool call constructs a fresh pool.
func ShutdownDefaultPool() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultPool != nil {
		defaultPool.Stop()
		defaultPool = nil
	}
}

func defaultWorkerCount() int {
	cfg, err := config.Load()
	if err != nil {
		core.NewDefaultLogger().Warn("invalid worker count configured, using default",
			core.F("error", err))
		return core.DefaultWorkerCount()
	}
	return cfg.Workers
}
