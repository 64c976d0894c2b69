package future

// A Scheduler turns scheduled run handles into task executions on
// some set of goroutines.
//
// Schedule must arrange for h.Run to be called exactly once at some
// later point, or release h with h.Drop, which cancels the underlying
// task with [ErrNotExecuted].
type Scheduler interface {
	Schedule(h RunHandle)
}

// A RunHandle is the scheduler-side handle to a task. It is
// type-erased: it knows only how to run the task once and how to drop
// it.
type RunHandle struct {
	t runnable
}

// Valid reports whether the handle still holds a task.
func (h RunHandle) Valid() bool { return h.t != nil }

// Run runs the task and releases the handle. A second call is a
// no-op.
func (h *RunHandle) Run() {
	if t := h.t; t != nil {
		h.t = nil
		t.runTask()
	}
}

// Drop releases the handle without running the task, canceling it
// with [ErrNotExecuted]. A second call is a no-op.
func (h *RunHandle) Drop() {
	if t := h.t; t != nil {
		h.t = nil
		t.cancelTask(ErrNotExecuted)
	}
}

// scheduleTask dispatches t on sched, treating a nil scheduler as
// inline. A panic from Schedule is converted into cancellation of t
// rather than propagating to the finisher that flushed it.
func scheduleTask(sched Scheduler, t runnable) {
	if sched == nil {
		sched = Inline()
	}
	defer func() {
		if v := recover(); v != nil {
			t.cancelTask(newPanicError(v))
		}
	}()
	sched.Schedule(RunHandle{t: t})
}

type inlineScheduler struct{}

func (inlineScheduler) Schedule(h RunHandle) { h.Run() }

// Inline returns the scheduler that runs each task on the calling
// goroutine, synchronously from Schedule.
func Inline() Scheduler { return inlineScheduler{} }

type goScheduler struct{}

func (goScheduler) Schedule(h RunHandle) { go h.Run() }

// GoScheduler returns the scheduler that runs each task on a fresh
// goroutine, fire-and-forget. It does not track the goroutines it
// starts; one must ensure all tasks finish before the process ends.
func GoScheduler() Scheduler { return goScheduler{} }
