package taskpool_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	taskpool "github.com/taskforge/go-taskpool"
	"github.com/taskforge/go-taskpool/core"
)

func newTestPool(t *testing.T, workers int) *core.WorkerPool {
	t.Helper()
	pool := core.NewWorkerPoolWithConfig("test-pool", workers, &core.WorkerPoolConfig{
		Logger: core.NewNoOpLogger(),
	})
	t.Cleanup(pool.Stop)
	return pool
}

// TestTask_GetState_InitiallyWaiting verifies construction
// Given: Freshly constructed value and void tasks
// When: GetState is called
// Then: Both report Waiting and nothing has run
func TestTask_GetState_InitiallyWaiting(t *testing.T) {
	// Arrange
	var ran atomic.Bool
	task := taskpool.NewTask(func() int { return 1 })
	void := taskpool.NewVoidTask(func() { ran.Store(true) })

	// Assert
	assert.Equal(t, taskpool.TaskStateWaiting, task.GetState())
	assert.Equal(t, taskpool.TaskStateWaiting, void.GetState())
	assert.False(t, ran.Load())
}

// TestTask_Run_ProducesResult verifies the synchronous path
// Given: A task returning 1
// When: Run completes
// Then: The state is Finished and GetResult returns 1
func TestTask_Run_ProducesResult(t *testing.T) {
	// Arrange
	pool := newTestPool(t, 2)
	task := taskpool.NewTask(func() int { return 1 })

	// Act
	require.NoError(t, task.RunOn(pool))

	// Assert
	assert.Equal(t, taskpool.TaskStateFinished, task.GetState())

	v, err := task.GetResult()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

// TestTask_Run_SecondRunFails verifies re-run rejection
// Given: A task that already ran to completion
// When: Run is attempted again
// Then: It fails with ErrDoubleRun and the state stays Finished
func TestTask_Run_SecondRunFails(t *testing.T) {
	// Arrange
	pool := newTestPool(t, 2)
	task := taskpool.NewTask(func() int { return 1 })
	require.NoError(t, task.RunOn(pool))

	// Act
	err := task.RunOn(pool)

	// Assert
	require.ErrorIs(t, err, taskpool.ErrDoubleRun)
	assert.Equal(t, taskpool.TaskStateFinished, task.GetState())
}

// TestTask_GetResult_BeforeRunFails verifies pre-completion reads
// Given: A task still Waiting
// When: GetResult is called
// Then: It fails with ErrNoResult
func TestTask_GetResult_BeforeRunFails(t *testing.T) {
	// Arrange
	task := taskpool.NewTask(func() int { return 1 })

	// Act
	_, err := task.GetResult()

	// Assert
	require.ErrorIs(t, err, taskpool.ErrNoResult)
	assert.Equal(t, taskpool.TaskStateWaiting, task.GetState())
}

// TestTask_Run_NilInterfaceResult verifies nil-valued results
// Given: Interface-typed tasks whose closures legitimately return nil
// When: Run completes
// Then: GetResult returns the nil value, not ErrNoResult
func TestTask_Run_NilInterfaceResult(t *testing.T) {
	// Arrange
	pool := newTestPool(t, 1)
	errTask := taskpool.NewTask(func() error { return nil })
	anyTask := taskpool.NewTask(func() any { return nil })

	// Act
	require.NoError(t, errTask.RunOn(pool))
	require.NoError(t, anyTask.RunOn(pool))

	// Assert
	assert.Equal(t, taskpool.TaskStateFinished, errTask.GetState())

	v, err := errTask.GetResult()
	require.NoError(t, err)
	assert.Nil(t, v)

	a, err := anyTask.GetResult()
	require.NoError(t, err)
	assert.Nil(t, a)
}

// TestTask_RunAsync_VisibilityWindow verifies async state transitions
// Given: A task whose closure sleeps 100ms then returns 1
// When: RunAsync is called and the state is read after 50ms
// Then: The task is Running mid-flight and Finished with result 1 after
// AwaitResult
func TestTask_RunAsync_VisibilityWindow(t *testing.T) {
	// Arrange
	pool := newTestPool(t, 2)
	task := taskpool.NewTask(func() int {
		time.Sleep(100 * time.Millisecond)
		return 1
	})

	// Act
	require.NoError(t, task.RunAsyncOn(pool))
	time.Sleep(50 * time.Millisecond)

	// Assert
	assert.Equal(t, taskpool.TaskStateRunning, task.GetState())

	v, err := task.AwaitResult()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, taskpool.TaskStateFinished, task.GetState())
}

// TestTask_SharedHandles_RunAsyncRace verifies one-shot semantics
// Given: Two handles sharing one underlying unit
// When: Both call RunAsync concurrently
// Then: The work executes exactly once; any rejected attempt reports
// ErrDoubleRun
func TestTask_SharedHandles_RunAsyncRace(t *testing.T) {
	// Arrange
	pool := newTestPool(t, 2)

	var counter atomic.Int32
	first := taskpool.NewVoidTask(func() {
		counter.Add(1)
	})
	second := first // copies share the execution unit

	// Act
	var eg errgroup.Group
	eg.Go(func() error {
		if err := first.RunAsyncOn(pool); err != nil {
			assert.ErrorIs(t, err, taskpool.ErrDoubleRun)
		}
		return nil
	})
	eg.Go(func() error {
		if err := second.RunAsyncOn(pool); err != nil {
			assert.ErrorIs(t, err, taskpool.ErrDoubleRun)
		}
		return nil
	})
	require.NoError(t, eg.Wait())
	require.NoError(t, first.Await())

	// Assert - allow a duplicate queue entry to be skipped before counting
	require.Eventually(t, func() bool {
		return pool.QueuedCount() == 0
	}, time.Second, 5*time.Millisecond)
	assert.EqualValues(t, 1, counter.Load())
	assert.Equal(t, taskpool.TaskStateFinished, second.GetState())
}

// TestTask_AwaitResult_Idempotent verifies repeated reads
// Given: A finished task returning a pointer
// When: GetResult and AwaitResult are called repeatedly
// Then: Every call returns the identical pointer
func TestTask_AwaitResult_Idempotent(t *testing.T) {
	// Arrange
	type payload struct{ value int }

	pool := newTestPool(t, 2)
	task := taskpool.NewTask(func() *payload {
		return &payload{value: 7}
	})
	require.NoError(t, task.RunOn(pool))

	// Act
	first, err := task.GetResult()
	require.NoError(t, err)
	second, err := task.AwaitResult()
	require.NoError(t, err)
	third, err := task.GetResult()
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 7, first.value)
	assert.Same(t, first, second)
	assert.Same(t, first, third)
}

// TestTask_ConcurrentObservers verifies multi-awaiter wakeup
// Given: An in-flight task and several goroutines awaiting it
// When: The closure completes
// Then: All observers unblock and read the same result
func TestTask_ConcurrentObservers(t *testing.T) {
	// Arrange
	pool := newTestPool(t, 2)

	release := make(chan struct{})
	task := taskpool.NewTask(func() string {
		<-release
		return "shared"
	})
	require.NoError(t, task.RunAsyncOn(pool))

	// Act
	var eg errgroup.Group
	for i := 0; i < 8; i++ {
		eg.Go(func() error {
			v, err := task.AwaitResult()
			if err != nil {
				return err
			}
			assert.Equal(t, "shared", v)
			return nil
		})
	}

	time.Sleep(20 * time.Millisecond) // let the observers block
	close(release)

	// Assert
	require.NoError(t, eg.Wait())
	assert.Equal(t, taskpool.TaskStateFinished, task.GetState())
}

// TestVoidTask_Run verifies the result-less variant
// Given: A void task with a side effect
// When: Run completes
// Then: The effect happened, the state is Finished and GetResult fails
// with ErrNoResult
func TestVoidTask_Run(t *testing.T) {
	// Arrange
	pool := newTestPool(t, 2)

	var ran atomic.Bool
	task := taskpool.NewVoidTask(func() { ran.Store(true) })

	// Act
	require.NoError(t, task.RunOn(pool))

	// Assert
	assert.True(t, ran.Load())
	assert.Equal(t, taskpool.TaskStateFinished, task.GetState())
	_, err := task.GetResult()
	require.ErrorIs(t, err, taskpool.ErrNoResult)
}

// TestCompletedTask verifies the pre-seeded factories
// Given: Completed tasks with and without a result
// When: State and result are read
// Then: Both are Finished immediately; the seeded value reads back without
// touching any pool, and a run attempt fails with ErrDoubleRun
func TestCompletedTask(t *testing.T) {
	// Arrange
	pool := newTestPool(t, 1)
	seeded := taskpool.CompletedTask(32)
	void := taskpool.CompletedVoidTask()

	// Assert
	assert.Equal(t, taskpool.TaskStateFinished, seeded.GetState())
	v, err := seeded.GetResult()
	require.NoError(t, err)
	assert.Equal(t, 32, v)

	assert.Equal(t, taskpool.TaskStateFinished, void.GetState())
	require.NoError(t, void.Await())
	_, err = void.GetResult()
	require.ErrorIs(t, err, taskpool.ErrNoResult)

	// A handle seeded with a bare struct{} is a distinct type from
	// Task[Void] and does carry a result.
	seededEmpty := taskpool.CompletedTask(struct{}{})
	_, err = seededEmpty.GetResult()
	require.NoError(t, err)

	require.ErrorIs(t, seeded.RunOn(pool), taskpool.ErrDoubleRun)
	assert.Equal(t, 0, pool.QueuedCount())
}

// TestTask_RunAsync_OnStoppedPool verifies pool admission from the handle
// Given: A stopped pool
// When: RunAsyncOn is called
// Then: It fails with ErrPoolStopped and the task stays Waiting
func TestTask_RunAsync_OnStoppedPool(t *testing.T) {
	// Arrange
	pool := core.NewWorkerPoolWithConfig("stopped-pool", 1, &core.WorkerPoolConfig{
		Logger: core.NewNoOpLogger(),
	})
	pool.Stop()

	task := taskpool.NewTask(func() int { return 1 })

	// Act
	err := task.RunAsyncOn(pool)

	// Assert
	require.ErrorIs(t, err, taskpool.ErrPoolStopped)
	assert.Equal(t, taskpool.TaskStateWaiting, task.GetState())
}
