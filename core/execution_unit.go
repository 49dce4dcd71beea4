package core

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// WorkFunc is the work captured by an execution unit. It receives a
// back-reference to the unit so it can publish its result and signal
// completion itself, before returning control to the executing goroutine.
type WorkFunc func(u *ExecutionUnit)

// ExecutionUnit is the shared heart of a task: one unit of work, its
// one-shot state, a type-erased result slot and the synchronization needed
// to publish both safely across goroutines.
//
// Any number of task handles may hold a reference to the same unit; all
// methods are safe for concurrent use. A single mutex guards state and
// result, and the result is always written before the state flips to
// Finished, so an awaiter that observed Finished can always read the
// published value.
//
// Units are never re-armed: exactly one Execute call can succeed over the
// unit's whole lifetime.
type ExecutionUnit struct {
	mu   sync.Mutex
	cond *sync.Cond

	id   uuid.UUID
	work WorkFunc

	state     TaskState
	result    any
	hasResult bool
	abandoned bool
}

// NewExecutionUnit creates a unit in the Waiting state wrapping the given
// work.
func NewExecutionUnit(work WorkFunc) *ExecutionUnit {
	u := &ExecutionUnit{
		id:    uuid.New(),
		work:  work,
		state: TaskStateWaiting,
	}
	u.cond = sync.NewCond(&u.mu)
	return u
}

// NewCompletedUnit creates a unit that is already Finished, pre-seeded with
// the given result. The unit never touches a pool; Execute on it fails with
// ErrDoubleRun like any other finished unit.
func NewCompletedUnit(result any) *ExecutionUnit {
	u := NewExecutionUnit(nil)
	u.result = result
	u.hasResult = true
	u.state = TaskStateFinished
	return u
}

// NewCompletedVoidUnit is NewCompletedUnit for the result-less variant:
// already Finished with nothing published, so Result fails with
// ErrNoResult.
func NewCompletedVoidUnit() *ExecutionUnit {
	u := NewExecutionUnit(nil)
	u.state = TaskStateFinished
	return u
}

// ID returns the unit's identity, used in log fields.
func (u *ExecutionUnit) ID() uuid.UUID {
	return u.id
}

// Enqueue admits the unit to the pool's queue after checking that it is
// still Waiting. The state is left untouched; the transition to Running
// happens when a worker actually begins execution. Two concurrent callers
// can both pass this check — the authoritative one-shot guard is Execute.
//
// Fails with ErrDoubleRun if the unit already left the Waiting state, or
// with the pool's own error if admission is refused.
func (u *ExecutionUnit) Enqueue(pool *WorkerPool) error {
	if pool == nil {
		return fmt.Errorf("enqueue without a pool: %w", ErrInvalidArgument)
	}

	u.mu.Lock()
	if u.state != TaskStateWaiting {
		u.mu.Unlock()
		return fmt.Errorf("enqueue of a task already run before: %w", ErrDoubleRun)
	}
	u.mu.Unlock()

	// The unit lock is released before the queue lock is taken; no
	// goroutine ever holds both.
	return pool.Enqueue(u)
}

// Execute runs the captured work on the calling goroutine. It is the
// authoritative one-shot guard: of any number of concurrent callers, only
// the one that observes Waiting proceeds; the rest fail with ErrDoubleRun
// and cause no side effect.
//
// The work runs outside the unit lock and is expected to call SetResult
// (if it produces a value) and then SetFinished before returning. No
// recover wraps the invocation: a panic escaping the work is fatal for the
// executing goroutine.
func (u *ExecutionUnit) Execute() error {
	u.mu.Lock()
	if u.state != TaskStateWaiting {
		u.mu.Unlock()
		return fmt.Errorf("run of a task already run before: %w", ErrDoubleRun)
	}
	u.state = TaskStateRunning
	u.mu.Unlock()

	u.work(u)
	return nil
}

// SetResult publishes the work's value, erasing its concrete type for
// uniform storage. A nil value is a legitimate result (an interface-typed
// closure returning nil); absence is tracked separately, so Result only
// fails before any publication. Callable only by the work itself, at most
// once, and always before SetFinished.
func (u *ExecutionUnit) SetResult(result any) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.result = result
	u.hasResult = true
}

// SetFinished flips the unit to Finished and wakes every waiter. Callable
// only by the work itself, exactly once, after the result (if any) has
// been published. Publishing under the same lock and signaling only
// afterwards is what orders result visibility before the Finished
// transition.
func (u *ExecutionUnit) SetFinished() {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.state != TaskStateFinished {
		u.state = TaskStateFinished
		u.cond.Broadcast()
	}
}

// Await blocks, without a timeout, until the unit is Finished. It returns
// immediately if the unit already finished. Any number of goroutines may
// await the same unit; all are woken.
//
// Await returns an error wrapping ErrPoolStopped if the unit was dropped
// at pool shutdown and will never run.
func (u *ExecutionUnit) Await() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	for u.state != TaskStateFinished {
		u.cond.Wait()
	}
	if u.abandoned {
		return fmt.Errorf("task was dropped at pool shutdown and will never run: %w", ErrPoolStopped)
	}
	return nil
}

// Result returns the published value. Repeated calls return the same
// value. Fails with ErrNoResult if nothing has been published yet; since
// publication precedes the Finished transition, calling this before the
// unit finished generally fails.
func (u *ExecutionUnit) Result() (any, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.hasResult {
		return nil, fmt.Errorf("get result of a task without one: %w", ErrNoResult)
	}
	return u.result, nil
}

// AwaitResult waits for the unit to finish, then returns the published
// value. Equivalent to Await followed by Result.
func (u *ExecutionUnit) AwaitResult() (any, error) {
	if err := u.Await(); err != nil {
		return nil, err
	}
	return u.Result()
}

// State returns the current task state.
func (u *ExecutionUnit) State() TaskState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// abandon marks a unit the pool dropped at shutdown. The unit moves
// straight to Finished with no result so that waiters unblock instead of
// hanging forever; Await reports the drop via ErrPoolStopped. A unit that
// already started executing is left alone.
func (u *ExecutionUnit) abandon() bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.state != TaskStateWaiting {
		return false
	}
	u.abandoned = true
	u.state = TaskStateFinished
	u.cond.Broadcast()
	return true
}
