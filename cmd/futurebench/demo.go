package main

import (
	"fmt"

	"github.com/b97tsk/future"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through spawning, chaining and joining futures",
	RunE:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	heading := color.New(color.FgCyan, color.Bold)

	pool := future.NewThreadPool(0)
	defer pool.Shutdown()
	log.WithField("workers", pool.NumWorkers()).Debug("pool started")

	task1 := future.RunAsyncOn(pool, func() error {
		fmt.Println("Task 1 executes asynchronously")
		return nil
	})
	task2 := future.SpawnOn(pool, func() (int, error) {
		fmt.Println("Task 2 executes in parallel with task 1")
		return 42, nil
	})
	task3 := future.Then(&task2, func(v int) (int, error) {
		fmt.Println("Task 3 executes after task 2, which returned", v)
		return v * 3, nil
	})

	joined := future.WhenAll2(task1, task3)
	task5 := future.Then(&joined, func(p future.Pair[future.Void, int]) (future.Void, error) {
		v, err := p.Second.Get()
		if err != nil {
			return future.Void{}, err
		}
		fmt.Println("Task 5 executes after tasks 1 and 3. Task 3 returned", v)
		return future.Void{}, nil
	})
	if _, err := task5.Get(); err != nil {
		return err
	}
	heading.Println("Task 5 has completed")

	if err := future.ParallelInvokeOn(pool,
		func() { fmt.Println("This is executed in parallel...") },
		func() { fmt.Println("with this") },
	); err != nil {
		return err
	}

	if err := future.ParallelForOn(pool, future.IRange(0, 5), func(x int) {
		fmt.Print(x)
	}); err != nil {
		return err
	}
	fmt.Println()

	sum, err := future.ParallelReduceOn(pool, future.IRange(1, 5), 0,
		func(i int) int { return i },
		func(a, b int) int { return a + b },
	)
	if err != nil {
		return err
	}
	heading.Println("The sum of 1..4 is", sum)
	return nil
}
