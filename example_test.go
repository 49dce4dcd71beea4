package taskpool_test

import (
	"fmt"

	taskpool "github.com/taskforge/go-taskpool"
	"github.com/taskforge/go-taskpool/core"
)

// ExampleNewTask demonstrates running a task synchronously on the default
// pool.
func ExampleNewTask() {
	taskpool.InitDefaultPool(2, &core.WorkerPoolConfig{Logger: core.NewNoOpLogger()})
	defer taskpool.ShutdownDefaultPool()

	task := taskpool.NewTask(func() int {
		return 21 * 2
	})

	if err := task.Run(); err != nil {
		fmt.Println("run failed:", err)
		return
	}

	value, _ := task.GetResult()
	fmt.Println(value)

	// Output:
	// 42
}

// ExampleTask_RunAsync demonstrates the asynchronous path with a shared
// result.
func ExampleTask_RunAsync() {
	taskpool.InitDefaultPool(2, &core.WorkerPoolConfig{Logger: core.NewNoOpLogger()})
	defer taskpool.ShutdownDefaultPool()

	task := taskpool.NewTask(func() string {
		return "hello from the pool"
	})

	if err := task.RunAsync(); err != nil {
		fmt.Println("enqueue failed:", err)
		return
	}

	// Any number of observers may await the same task.
	value, _ := task.AwaitResult()
	fmt.Println(value)

	// Output:
	// hello from the pool
}

// ExampleCompletedTask demonstrates composing a uniform API with an
// eagerly-available value.
func ExampleCompletedTask() {
	task := taskpool.CompletedTask("cached")

	fmt.Println(task.GetState())
	value, _ := task.GetResult()
	fmt.Println(value)

	// Output:
	// finished
	// cached
}
