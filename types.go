package taskpool

import "github.com/taskforge/go-taskpool/core"

// Re-export commonly used types from the core package for convenience.
// This allows users to import only the taskpool package for most use cases.

// TaskState describes how far a task has progressed.
type TaskState = core.TaskState

// Task states, forward-only.
const (
	TaskStateWaiting  TaskState = core.TaskStateWaiting
	TaskStateRunning  TaskState = core.TaskStateRunning
	TaskStateFinished TaskState = core.TaskStateFinished
)

// WorkerPool executes queued tasks on background goroutines.
type WorkerPool = core.WorkerPool

// WorkerPoolConfig holds optional pool collaborators.
type WorkerPoolConfig = core.WorkerPoolConfig

// NewWorkerPool creates a pool with its workers already running.
var NewWorkerPool = core.NewWorkerPool

// NewWorkerPoolWithConfig is NewWorkerPool with explicit collaborators.
var NewWorkerPoolWithConfig = core.NewWorkerPoolWithConfig

// Error sentinels, matched with errors.Is.
var (
	ErrDoubleRun       = core.ErrDoubleRun
	ErrPoolStopped     = core.ErrPoolStopped
	ErrInvalidArgument = core.ErrInvalidArgument
	ErrNoResult        = core.ErrNoResult
)
