package core

import "errors"

// All failures surfaced by this package are plain message-carrying errors.
// Callers classify them with errors.Is against these sentinels; wrapped
// messages add the operation context.
var (
	// ErrDoubleRun is returned when a unit that already left the Waiting
	// state is enqueued or executed again. The original execution proceeds
	// unaffected.
	ErrDoubleRun = errors.New("task was already run")

	// ErrPoolStopped is returned when a unit is enqueued on a pool whose
	// shutdown has begun, and by Await on a unit the pool dropped at
	// shutdown. The caller must not retry against the same pool instance.
	ErrPoolStopped = errors.New("worker pool is stopped")

	// ErrInvalidArgument is returned for nil units, nil pools and other
	// caller bugs.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoResult is returned when a result is requested before one was
	// published. Await first.
	ErrNoResult = errors.New("no result available")
)
