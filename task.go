package taskpool

import (
	"fmt"

	"github.com/taskforge/go-taskpool/core"
)

// Void is the result type of tasks that produce no value. A Task[Void]
// never publishes a result; GetResult on it always fails with ErrNoResult.
// Void is a defined type rather than an alias of struct{} so that a handle
// seeded with a bare struct{} value keeps its own distinct type.
type Void struct{}

// Task is a user-facing, copyable handle to a unit of deferred work. A
// Task is a cheap value holding a shared reference to one execution unit;
// copies refer to the same unit and at most one of them can successfully
// run it. The zero Task is not usable; construct with NewTask, NewVoidTask
// or the completed-task factories.
//
// All methods are safe for concurrent use from any number of goroutines.
type Task[T any] struct {
	unit *core.ExecutionUnit
}

// NewTask creates a task from a zero-argument closure returning a value.
// The closure is captured at construction and consumed by exactly one
// execution. Nothing runs until Run or RunAsync is called.
func NewTask[T any](fn func() T) Task[T] {
	unit := core.NewExecutionUnit(func(u *core.ExecutionUnit) {
		// The result is published before the finished transition so that
		// an awaiter observing Finished can always read it.
		u.SetResult(fn())
		u.SetFinished()
	})
	return Task[T]{unit: unit}
}

// NewVoidTask creates a task from a side-effect-only closure. The task
// never carries a result.
func NewVoidTask(fn func()) Task[Void] {
	unit := core.NewExecutionUnit(func(u *core.ExecutionUnit) {
		fn()
		u.SetFinished()
	})
	return Task[Void]{unit: unit}
}

// CompletedTask creates an already-finished task pre-seeded with the given
// result, bypassing the pool entirely. Useful for composing uniform APIs
// with eagerly-available values.
func CompletedTask[T any](result T) Task[T] {
	return Task[T]{unit: core.NewCompletedUnit(result)}
}

// CompletedVoidTask creates an already-finished result-less task.
func CompletedVoidTask() Task[Void] {
	return Task[Void]{unit: core.NewCompletedVoidUnit()}
}

// Run runs the task synchronously on the default pool: RunAsync followed
// by Await. Running a task is only possible once; a second attempt fails
// with ErrDoubleRun.
func (t Task[T]) Run() error {
	if err := t.RunAsync(); err != nil {
		return err
	}
	return t.Await()
}

// RunOn is Run against an explicitly provided pool.
func (t Task[T]) RunOn(pool *core.WorkerPool) error {
	if err := t.RunAsyncOn(pool); err != nil {
		return err
	}
	return t.Await()
}

// RunAsync queues the task on the default pool. Running a task is only
// possible once: if the task already left the Waiting state the call fails
// with ErrDoubleRun, and if the pool no longer accepts work it fails with
// ErrPoolStopped.
func (t Task[T]) RunAsync() error {
	return t.unit.Enqueue(DefaultPool())
}

// RunAsyncOn is RunAsync against an explicitly provided pool.
func (t Task[T]) RunAsyncOn(pool *core.WorkerPool) error {
	return t.unit.Enqueue(pool)
}

// Await blocks, without a timeout, until the task finished. It returns
// immediately for an already-finished task, and an error wrapping
// ErrPoolStopped if the task was dropped at pool shutdown.
func (t Task[T]) Await() error {
	return t.unit.Await()
}

// GetResult returns the value produced by the closure. The same value is
// returned for repeated calls. It fails with ErrNoResult before the task
// finished (publication precedes the Finished transition) and always for
// result-less tasks.
func (t Task[T]) GetResult() (T, error) {
	var zero T

	v, err := t.unit.Result()
	if err != nil {
		return zero, err
	}
	if v == nil {
		// A published nil interface value; the zero T is that nil.
		return zero, nil
	}
	result, ok := v.(T)
	if !ok {
		// Only reachable if the stored value was produced for a handle of
		// a different static type, which the constructors rule out.
		return zero, fmt.Errorf("stored result has type %T: %w", v, core.ErrInvalidArgument)
	}
	return result, nil
}

// AwaitResult waits for the task to finish and returns its result.
// Equivalent to Await followed by GetResult.
func (t Task[T]) AwaitResult() (T, error) {
	if err := t.unit.Await(); err != nil {
		var zero T
		return zero, err
	}
	return t.GetResult()
}

// GetState returns the task's current state.
func (t Task[T]) GetState() core.TaskState {
	return t.unit.State()
}
