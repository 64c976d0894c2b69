package future

// contSched resolves the scheduler a continuation created without an
// explicit one should use: the parent's scheduler, or inline when the
// parent has none (pre-completed literals).
func contSched(b *taskBase) Scheduler {
	if b.sched != nil {
		return b.sched
	}
	return Inline()
}

// ThenOn chains a value continuation onto f, to be dispatched on
// sched once the parent is terminal. The parent handle is consumed.
//
// If the parent was canceled, fn does not run and the child is
// canceled with the same error.
func ThenOn[T, U any](sched Scheduler, f *Future[T], fn func(T) (U, error)) Future[U] {
	f.check()
	if fn == nil {
		panic("future(Then): nil function")
	}
	parent := f.t
	f.t = nil
	return Future[U]{t: thenTask(sched, parent, fn)}
}

// Then chains a value continuation onto f, inheriting the parent's
// scheduler. The parent handle is consumed.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) Future[U] {
	f.check()
	return ThenOn(contSched(&f.t.taskBase), f, fn)
}

// ThenSharedOn chains a value continuation onto a shared future,
// dispatched on sched. The shared handle remains usable.
func ThenSharedOn[T, U any](sched Scheduler, s SharedFuture[T], fn func(T) (U, error)) Future[U] {
	s.check()
	if fn == nil {
		panic("future(Then): nil function")
	}
	return Future[U]{t: thenTask(sched, s.t, fn)}
}

// ThenShared chains a value continuation onto a shared future,
// inheriting the parent's scheduler.
func ThenShared[T, U any](s SharedFuture[T], fn func(T) (U, error)) Future[U] {
	s.check()
	return ThenSharedOn(contSched(&s.t.taskBase), s, fn)
}

func thenTask[T, U any](sched Scheduler, parent *task[T], fn func(T) (U, error)) *task[U] {
	child := newTask[U](sched)
	child.fn = func(c *task[U]) {
		if parent.state.Load() == stateCanceled {
			c.cancelBase(parent.err)
			return
		}
		v, err := fn(parent.res)
		if err != nil {
			c.cancelBase(err)
			return
		}
		c.res = v
		c.finish()
	}
	parent.addContinuation(child)
	return child
}

// ContinueOn chains a task continuation onto f: fn receives the
// parent future itself and runs whether the parent completed or was
// canceled, so it can inspect the outcome. The parent handle is
// consumed and re-materialized as fn's argument.
func ContinueOn[T, U any](sched Scheduler, f *Future[T], fn func(Future[T]) (U, error)) Future[U] {
	f.check()
	if fn == nil {
		panic("future(Continue): nil function")
	}
	parent := f.t
	f.t = nil
	child := newTask[U](sched)
	child.fn = func(c *task[U]) {
		v, err := fn(Future[T]{t: parent})
		if err != nil {
			c.cancelBase(err)
			return
		}
		c.res = v
		c.finish()
	}
	parent.addContinuation(child)
	return Future[U]{t: child}
}

// Continue chains a task continuation onto f, inheriting the parent's
// scheduler.
func Continue[T, U any](f *Future[T], fn func(Future[T]) (U, error)) Future[U] {
	f.check()
	return ContinueOn(contSched(&f.t.taskBase), f, fn)
}

// ThenFutureOn chains a value continuation whose function produces an
// inner future. The child is unwrapped: it completes with the inner
// future's outcome. The parent handle is consumed.
func ThenFutureOn[T, U any](sched Scheduler, f *Future[T], fn func(T) (Future[U], error)) Future[U] {
	f.check()
	if fn == nil {
		panic("future(ThenFuture): nil function")
	}
	parent := f.t
	f.t = nil
	child := newTask[U](sched)
	child.fn = func(c *task[U]) {
		if parent.state.Load() == stateCanceled {
			c.cancelBase(parent.err)
			return
		}
		inner, err := fn(parent.res)
		if err != nil {
			c.cancelBase(err)
			return
		}
		c.unwrap(inner)
	}
	parent.addContinuation(child)
	return Future[U]{t: child}
}

// ThenFuture chains an unwrapping value continuation, inheriting the
// parent's scheduler.
func ThenFuture[T, U any](f *Future[T], fn func(T) (Future[U], error)) Future[U] {
	f.check()
	return ThenFutureOn(contSched(&f.t.taskBase), f, fn)
}

// Flatten turns a future of a future into a future of the inner
// result, forwarding the inner task's completion. The outer handle is
// consumed.
func Flatten[T any](f *Future[Future[T]]) Future[T] {
	f.check()
	parent := f.t
	f.t = nil
	child := newTask[T](contSched(&parent.taskBase))
	child.fn = func(c *task[T]) {
		if parent.state.Load() == stateCanceled {
			c.cancelBase(parent.err)
			return
		}
		c.unwrap(parent.res)
	}
	parent.addContinuation(child)
	return Future[T]{t: child}
}
