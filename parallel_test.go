package future_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/b97tsk/future"
)

func TestParallelInvoke(t *testing.T) {
	var a, b atomic.Bool
	err := future.ParallelInvoke(
		func() { a.Store(true) },
		func() { b.Store(true) },
	)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Load() || !b.Load() {
		t.Error("both functions should have run.")
	}
}

func TestParallelFor(t *testing.T) {
	var sum atomic.Int64
	err := future.ParallelFor(future.IRange(0, 1000), func(i int) {
		sum.Add(int64(i))
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := sum.Load(); got != 499500 {
		t.Errorf("sum = %v; want 499500.", got)
	}
}

func TestParallelForEmpty(t *testing.T) {
	if err := future.ParallelFor(future.IRange(5, 5), func(int) {
		t.Error("the body must not run for an empty range.")
	}); err != nil {
		t.Fatal(err)
	}
}

func TestParallelForPanic(t *testing.T) {
	boom := errors.New("boom")
	err := future.ParallelFor(future.IRange(0, 1000), func(i int) {
		if i == 500 {
			panic(boom)
		}
	})
	if !errors.Is(err, boom) {
		t.Errorf("error = %v; want it to wrap %v.", err, boom)
	}
}

func TestParallelReduce(t *testing.T) {
	v, err := future.ParallelReduce(future.IRange(1, 5), 0,
		func(i int) int { return i },
		func(a, b int) int { return a + b },
	)
	if err != nil {
		t.Fatal(err)
	}
	if v != 10 {
		t.Errorf("reduce = %v; want 10.", v)
	}
}

func TestParallelReduceLarge(t *testing.T) {
	v, err := future.ParallelReduce(future.IRange(0, 100000), 0,
		func(i int) int { return 1 },
		func(a, b int) int { return a + b },
	)
	if err != nil {
		t.Fatal(err)
	}
	if v != 100000 {
		t.Errorf("reduce = %v; want 100000.", v)
	}
}

func TestIRange(t *testing.T) {
	if r := future.IRange(3, 7); r.Len() != 4 {
		t.Errorf("Len() = %v; want 4.", r.Len())
	}
	if r := future.IRange(7, 3); r.Len() != 0 {
		t.Errorf("Len() = %v; an inverted range should be empty.", r.Len())
	}
}
