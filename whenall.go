package future

import "sync/atomic"

// A Pair holds the two parent futures of a [WhenAll2] join.
type Pair[A, B any] struct {
	First  Future[A]
	Second Future[B]
}

// WhenAll2 joins two futures of different result types. The returned
// future completes with both parent handles once both parents are
// terminal, whatever their outcomes; inspecting or unwrapping the
// parents is up to the continuation. Both parent handles are
// consumed.
func WhenAll2[A, B any](a Future[A], b Future[B]) Future[Pair[A, B]] {
	a.check()
	b.check()

	out := newTask[Pair[A, B]](nil)
	out.res = Pair[A, B]{First: a, Second: b}

	var remaining atomic.Int32
	remaining.Store(2)
	done := func() {
		if remaining.Add(-1) == 0 {
			out.finish()
		}
	}
	a.t.onFinish(done)
	b.t.onFinish(done)

	return Future[Pair[A, B]]{t: out}
}

// WhenAll joins any number of futures of the same result type. The
// returned future completes with the parent handles once every parent
// is terminal. The parent handles are consumed.
func WhenAll[T any](fs ...Future[T]) Future[[]Future[T]] {
	for _, f := range fs {
		f.check()
	}

	out := newTask[[]Future[T]](nil)
	out.res = fs
	if len(fs) == 0 {
		out.finish()
		return Future[[]Future[T]]{t: out}
	}

	var remaining atomic.Int32
	remaining.Store(int32(len(fs)))
	done := func() {
		if remaining.Add(-1) == 0 {
			out.finish()
		}
	}
	for _, f := range fs {
		f.t.onFinish(done)
	}

	return Future[[]Future[T]]{t: out}
}

// Combine joins two futures and applies fn to their values once both
// are available. If either parent was canceled, the combined future
// is canceled with the first parent error observed, checking the
// first parent first, and fn does not run. Both parent handles are
// consumed.
func Combine[A, B, R any](a Future[A], b Future[B], fn func(A, B) (R, error)) Future[R] {
	if fn == nil {
		panic("future(Combine): nil function")
	}
	p := WhenAll2(a, b)
	return Then(&p, func(pr Pair[A, B]) (R, error) {
		var zero R
		if err := pr.First.Err(); err != nil {
			return zero, err
		}
		if err := pr.Second.Err(); err != nil {
			return zero, err
		}
		av, _ := pr.First.Get()
		bv, _ := pr.Second.Get()
		return fn(av, bv)
	})
}
