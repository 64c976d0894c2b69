package future_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/b97tsk/future"
)

func TestThreadPoolFairness(t *testing.T) {
	const numTasks = 10000

	pool := future.NewThreadPool(4)
	defer pool.Shutdown()

	fs := make([]future.Future[int], numTasks)
	for i := range fs {
		fs[i] = future.SpawnOn(pool, func() (int, error) { return i, nil })
	}

	seen := make([]bool, numTasks)
	for i := range fs {
		v, err := fs[i].Get()
		if err != nil {
			t.Fatalf("task %v failed: %v.", i, err)
		}
		if v < 0 || v >= numTasks || seen[v] {
			t.Fatalf("index %v missing or duplicated.", v)
		}
		seen[v] = true
	}
}

func TestCooperativeWait(t *testing.T) {
	t.Run("NestedSpawn", func(t *testing.T) {
		pool := future.NewThreadPool(1)
		defer pool.Shutdown()

		f := future.SpawnOn(pool, func() (int, error) {
			inner := future.SpawnOn(pool, func() (int, error) { return 21, nil })
			v, err := inner.Get()
			return v * 2, err
		})
		if v, err := f.Get(); err != nil || v != 42 {
			t.Errorf("Get() = %v, %v; want 42, nil.", v, err)
		}
	})
	t.Run("LateSubmission", func(t *testing.T) {
		pool := future.NewThreadPool(1)
		defer pool.Shutdown()

		started := make(chan struct{})
		ev := future.NewEvent[int]()
		evt := ev.GetTask()
		evf := evt.Share()

		a := future.SpawnOn(pool, func() (int, error) {
			close(started)
			v, err := evf.Get()
			return v + 1, err
		})

		// The single worker is now waiting cooperatively; the task
		// that completes the event arrives only afterwards.
		<-started
		future.RunAsyncOn(pool, func() error {
			ev.Set(41)
			return nil
		})

		if v, err := a.Get(); err != nil || v != 42 {
			t.Errorf("Get() = %v, %v; want 42, nil.", v, err)
		}
	})
}

func TestThreadPoolShutdown(t *testing.T) {
	t.Run("CancelsQueued", func(t *testing.T) {
		pool := future.NewThreadPool(1)

		gate := make(chan struct{})
		blocker := future.RunAsyncOn(pool, func() error {
			<-gate
			return nil
		})
		// Give the worker time to pick up the blocker, then park a
		// second task behind it.
		time.Sleep(10 * time.Millisecond)
		f := future.SpawnOn(pool, func() (int, error) { return 1, nil })

		done := make(chan struct{})
		go func() {
			pool.Shutdown()
			close(done)
		}()
		time.Sleep(10 * time.Millisecond)
		close(gate)
		<-done

		if _, err := blocker.Get(); err != nil {
			t.Errorf("the task in hand should have finished; got %v.", err)
		}
		if _, err := f.Get(); !errors.Is(err, future.ErrNotExecuted) {
			t.Errorf("Get() error = %v; want ErrNotExecuted.", err)
		}
	})
	t.Run("ScheduleAfterShutdown", func(t *testing.T) {
		pool := future.NewThreadPool(1)
		pool.Shutdown()

		f := future.SpawnOn(pool, func() (int, error) { return 1, nil })
		if _, err := f.Get(); !errors.Is(err, future.ErrNotExecuted) {
			t.Errorf("Get() error = %v; want ErrNotExecuted.", err)
		}
	})
	t.Run("ShutdownTwice", func(t *testing.T) {
		pool := future.NewThreadPool(2)
		pool.Shutdown()
		pool.Shutdown()
	})
}

func TestThreadPoolHooks(t *testing.T) {
	var pre, post atomic.Int32
	pool := future.NewThreadPool(3,
		future.WithPrerun(func() { pre.Add(1) }),
		future.WithPostrun(func() { post.Add(1) }),
	)

	f := future.SpawnOn(pool, func() (int, error) { return 1, nil })
	if _, err := f.Get(); err != nil {
		t.Fatal(err)
	}
	pool.Shutdown()

	if pre.Load() != 3 {
		t.Errorf("prerun ran %v times; want once per worker.", pre.Load())
	}
	if post.Load() != 3 {
		t.Errorf("postrun ran %v times; want once per worker.", post.Load())
	}
}

func TestNumThreadsFromEnv(t *testing.T) {
	t.Setenv(future.EnvNumThreads, "3")
	pool := future.NewThreadPool(0)
	defer pool.Shutdown()
	if n := pool.NumWorkers(); n != 3 {
		t.Errorf("NumWorkers() = %v; want 3 from the environment.", n)
	}
}

func TestHardwareConcurrency(t *testing.T) {
	if future.HardwareConcurrency() < 1 {
		t.Error("HardwareConcurrency should never report less than 1.")
	}
}

func TestThreadPoolChains(t *testing.T) {
	pool := future.NewThreadPool(4)
	defer pool.Shutdown()

	var sum atomic.Int64
	fs := make([]future.Future[int], 100)
	for i := range fs {
		f := future.SpawnOn(pool, func() (int, error) { return i, nil })
		fs[i] = future.Then(&f, func(v int) (int, error) {
			sum.Add(int64(v))
			return v * 2, nil
		})
	}
	for i := range fs {
		v, err := fs[i].Get()
		if err != nil || v != i*2 {
			t.Fatalf("Get() = %v, %v; want %v, nil.", v, err, i*2)
		}
	}
	if got := sum.Load(); got != 4950 {
		t.Errorf("sum = %v; want 4950.", got)
	}
}
