package core

// TaskState describes how far a unit of work has progressed. States only
// ever move forward: Waiting -> Running -> Finished. A unit is never
// re-armed.
type TaskState int

const (
	// TaskStateWaiting: the unit has not started executing yet.
	TaskStateWaiting TaskState = iota

	// TaskStateRunning: the unit's work is executing on some goroutine.
	TaskStateRunning

	// TaskStateFinished: the work returned (or the unit was dropped at pool
	// shutdown); the result, if any, is published and readable.
	TaskStateFinished
)

// String returns a human-readable state name for logs.
func (s TaskState) String() string {
	switch s {
	case TaskStateWaiting:
		return "waiting"
	case TaskStateRunning:
		return "running"
	case TaskStateFinished:
		return "finished"
	default:
		return "unknown"
	}
}
