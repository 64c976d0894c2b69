package future

import "sync/atomic"

// A runnable is the type-erased view of a task that schedulers and
// continuation lists operate on. It knows how to run once, how to be
// canceled with an error, and nothing about the result type.
type runnable interface {
	runTask()
	cancelTask(err error)
	base() *taskBase
}

// taskBase is the type-generic part of a task: the state machine, the
// continuation list, and the scheduler that should run this task.
type taskBase struct {
	state atomic.Uint32
	conts contList

	// Scheduler this task is dispatched on when a parent flushes it.
	// A nil scheduler means inline; pre-completed literals keep nil.
	sched Scheduler

	// Whether GetTask was already called on an event.
	gotTask atomic.Bool
}

func (b *taskBase) base() *taskBase { return b }

// ready reports whether the task reached a terminal state.
// The load has acquire semantics, so a true return also publishes the
// result slot to the caller.
func (b *taskBase) ready() bool {
	return isFinished(b.state.Load())
}

// wait blocks until the task is terminal, dispatching to the current
// goroutine's wait handler, and returns the terminal state.
func (b *taskBase) wait() uint32 {
	s := b.state.Load()
	if !isFinished(s) {
		waitForTask(b)
		s = b.state.Load()
	}
	return s
}

// addContinuation registers child to run once this task is terminal.
// If the continuation list has already been closed, the child is
// dispatched here instead; exactly one of the two happens.
func (b *taskBase) addContinuation(child runnable) {
	if !isFinished(b.state.Load()) && b.conts.tryAdd(child) {
		return
	}
	scheduleTask(child.base().sched, child)
}

// runContinuations closes the continuation list and hands each child
// to its own scheduler. Called exactly once, by the terminal
// transition.
func (b *taskBase) runContinuations() {
	b.conts.flushAndLock(func(child runnable) {
		scheduleTask(child.base().sched, child)
	})
}

// onFinish arranges for f to be called once the task is terminal,
// regardless of outcome. f runs inline on whichever goroutine drives
// the terminal transition, or immediately if the task is already done.
func (b *taskBase) onFinish(f func()) {
	b.addContinuation(&waitNote{f: f})
}

// A waitNote is a lightweight continuation that only signals
// completion. Its scheduler is nil, so it always runs inline.
type waitNote struct {
	taskBase
	f func()
}

func (w *waitNote) runTask()             { w.f() }
func (w *waitNote) cancelTask(err error) { w.f() }

// A task carries the result-typed slots on top of taskBase. Exactly
// one of res/err is live once the task is terminal; fn is live only
// while the task is pending or unwrapped and is cleared exactly once,
// by the goroutine that runs (or cancels) the task.
type task[T any] struct {
	taskBase
	fn  func(t *task[T])
	res T
	err error
}

func newTask[T any](sched Scheduler) *task[T] {
	t := new(task[T])
	t.sched = sched
	return t
}

// newRootTask builds a task that runs f with no arguments.
func newRootTask[T any](sched Scheduler, f func() (T, error)) *task[T] {
	t := newTask[T](sched)
	t.fn = func(t *task[T]) {
		v, err := f()
		if err != nil {
			t.cancelBase(err)
			return
		}
		t.res = v
		t.finish()
	}
	return t
}

// runTask invokes the task's function. A panic escaping the function
// is captured and converted into cancellation; it never propagates
// into the calling scheduler.
func (t *task[T]) runTask() {
	fn := t.fn
	t.fn = nil
	defer func() {
		if v := recover(); v != nil {
			t.cancelBase(newPanicError(v))
		}
	}()
	fn(t)
}

// cancelTask cancels a task that was never run, clearing its function.
func (t *task[T]) cancelTask(err error) {
	t.fn = nil
	t.cancelBase(err)
}

// finish publishes the result and flushes continuations. The store
// has release semantics: everything written to the result slot before
// this call is visible to any reader that observes the terminal state.
func (t *task[T]) finish() {
	t.state.Store(stateCompleted)
	t.runContinuations()
}

// cancelBase publishes the error and flushes continuations.
func (t *task[T]) cancelBase(err error) {
	t.err = err
	t.state.Store(stateCanceled)
	t.runContinuations()
}

// unwrap defers this task's terminal transition to an inner future
// produced by its function. The task parks in the unwrapped state and
// a forwarding continuation on the inner task copies the inner's
// outcome over once it is known.
func (t *task[T]) unwrap(inner Future[T]) {
	inner.check()
	t.state.Store(stateUnwrapped)
	fwd := &unwrapForward[T]{outer: t, inner: inner.t}
	fwd.sched = t.sched
	inner.t.addContinuation(fwd)
}

// An unwrapForward carries an inner task's outcome to the outer task
// awaiting it. The outer pointer is borrowed; the forwarder is only
// reachable from the inner task's continuation list.
type unwrapForward[T any] struct {
	taskBase
	outer *task[T]
	inner *task[T]
}

func (u *unwrapForward[T]) runTask() {
	if u.inner.state.Load() == stateCompleted {
		u.outer.res = u.inner.res
		u.outer.finish()
	} else {
		u.outer.cancelBase(u.inner.err)
	}
}

func (u *unwrapForward[T]) cancelTask(err error) {
	u.outer.cancelBase(err)
}
