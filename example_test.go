package future_test

import (
	"errors"
	"fmt"

	"github.com/b97tsk/future"
)

func Example() {
	// A FIFO scheduler queues tasks until the caller drives them,
	// which keeps this example deterministic.
	s := future.NewFIFO()

	f := future.SpawnOn(s, func() (string, error) { return "hello", nil })
	g := future.Then(&f, func(v string) (string, error) { return v + ", world", nil })

	s.RunAllTasks()

	v, _ := g.Get()
	fmt.Println(v)
	// Output:
	// hello, world
}

func Example_threadPool() {
	pool := future.NewThreadPool(4)
	defer pool.Shutdown()

	a := future.SpawnOn(pool, func() (int, error) { return 21, nil })
	b := future.ThenOn(pool, &a, func(v int) (int, error) { return v * 2, nil })

	v, _ := b.Get()
	fmt.Println(v)
	// Output:
	// 42
}

func ExampleEvent() {
	ev := future.NewEvent[int]()
	f := ev.GetTask()

	ev.Set(7)

	v, _ := f.Get()
	fmt.Println(v)
	// Output:
	// 7
}

func ExampleWhenAll2() {
	p := future.WhenAll2(future.MakeFuture(7), future.MakeFuture("x"))
	r := future.Then(&p, func(pr future.Pair[int, string]) (int, error) {
		a, _ := pr.First.Get()
		s, _ := pr.Second.Get()
		return a + len(s), nil
	})

	v, _ := r.Get()
	fmt.Println(v)
	// Output:
	// 8
}

func ExampleSpawnFuture() {
	f := future.SpawnFuture(func() (future.Future[int], error) {
		return future.MakeFuture(42), nil
	})

	v, _ := f.Get()
	fmt.Println(v)
	// Output:
	// 42
}

func ExampleContinue() {
	f := future.Spawn(func() (int, error) {
		return 0, errors.New("boom")
	})
	g := future.Continue(&f, func(p future.Future[int]) (string, error) {
		if err := p.Err(); err != nil {
			return "recovered from: " + err.Error(), nil
		}
		return "ok", nil
	})

	v, _ := g.Get()
	fmt.Println(v)
	// Output:
	// recovered from: boom
}

func ExampleParallelReduce() {
	sum, _ := future.ParallelReduce(future.IRange(1, 5), 0,
		func(i int) int { return i },
		func(a, b int) int { return a + b },
	)
	fmt.Println("The sum of 1..4 is", sum)
	// Output:
	// The sum of 1..4 is 10
}
