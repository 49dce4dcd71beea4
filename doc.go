// Package taskpool provides a minimal deferred-execution primitive: a task
// that can be run synchronously or asynchronously exactly once, whose
// result can be read by any number of observers after completion, and a
// bounded worker pool that executes queued tasks on background goroutines.
//
// # Quick Start
//
// Create a task from a closure and run it on the default pool:
//
//	task := taskpool.NewTask(func() int {
//		return compute()
//	})
//
//	if err := task.RunAsync(); err != nil {
//		// already run, or the pool is stopped
//	}
//	value, err := task.AwaitResult()
//
// A synchronous Run is RunAsync followed by Await:
//
//	if err := task.Run(); err != nil { ... }
//	value, _ := task.GetResult()
//
// # Key Concepts
//
// Task: a cheap, copyable handle. Copies share one underlying execution
// unit, so of two handles racing to run the same task, exactly one
// execution happens; the loser's attempt fails with ErrDoubleRun.
//
// ExecutionUnit: the shared, internally-synchronized object in package
// core holding the task's state, closure and type-erased result. Results
// are published before the Finished state becomes visible, so an awaiter
// that saw Finished can always read the value.
//
// WorkerPool: a fixed set of background goroutines draining a shared FIFO
// queue. The default pool is constructed lazily on first use with
// max(NumCPU-1, 1) workers; package config allows overriding the count via
// a build-time variable or the TASKPOOL_WORKERS environment variable.
// Prefer passing an explicit pool (RunAsyncOn) through your program and
// fall back to the default pool only at the boundary.
//
// # Error Policy
//
// Operational failures (double run, stopped pool, missing result, invalid
// argument) are returned as wrapped sentinel errors from package core.
// Panics escaping the user closure are deliberately not recovered: the
// work is expected to handle its own recoverable errors internally and
// communicate failure through its result type.
package taskpool
