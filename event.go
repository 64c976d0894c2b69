package future

// An Event is the producer-side counterpart of a future: a task whose
// terminal state is set manually rather than by running a function.
// The paired future is retrievable exactly once with GetTask.
//
// Exactly one of Set and SetError wins; later calls return false. An
// Event that will never be set must be released with Abandon so that
// consumers observe cancellation instead of waiting forever.
type Event[T any] struct {
	t *task[T]
}

// NewEvent creates an event with an associated pending task.
func NewEvent[T any]() *Event[T] {
	return &Event[T]{t: newTask[T](nil)}
}

func (e *Event[T]) check() {
	if e == nil || e.t == nil {
		panic("future(Event): use of empty event")
	}
}

// GetTask returns the future paired with this event. Calling it a
// second time is a contract violation and panics.
func (e *Event[T]) GetTask() Future[T] {
	e.check()
	if e.t.gotTask.Swap(true) {
		panic("future(Event): GetTask called twice")
	}
	return Future[T]{t: e.t}
}

// Set completes the task with v, marks it completed and runs its
// continuations. It returns false if a result or error has already
// been set.
func (e *Event[T]) Set(v T) bool {
	e.check()
	if !e.t.state.CompareAndSwap(statePending, stateLocked) {
		return false
	}
	e.t.res = v
	e.t.finish()
	return true
}

// SetError cancels the task with err and runs its continuations. It
// returns false if a result or error has already been set.
func (e *Event[T]) SetError(err error) bool {
	e.check()
	if !e.t.state.CompareAndSwap(statePending, stateLocked) {
		return false
	}
	e.t.cancelBase(err)
	return true
}

// Abandon cancels the task with [ErrAbandonedEvent] if the event was
// never set. It is safe to call unconditionally, typically deferred
// right after NewEvent.
func (e *Event[T]) Abandon() {
	e.check()
	e.SetError(ErrAbandonedEvent)
}
