package future

// Void is the result type of tasks that produce no value.
type Void = struct{}

// SpawnOn creates a root task running f on sched and returns its
// future.
func SpawnOn[T any](sched Scheduler, f func() (T, error)) Future[T] {
	if f == nil {
		panic("future(Spawn): nil function")
	}
	t := newRootTask(sched, f)
	scheduleTask(sched, t)
	return Future[T]{t: t}
}

// Spawn creates a root task running f on the default scheduler.
func Spawn[T any](f func() (T, error)) Future[T] {
	return SpawnOn(DefaultScheduler(), f)
}

// SupplyAsyncOn creates a value-producing root task on sched. It is
// Spawn under the CompletableFuture-style name.
func SupplyAsyncOn[T any](sched Scheduler, f func() (T, error)) Future[T] {
	return SpawnOn(sched, f)
}

// SupplyAsync creates a value-producing root task on the default
// scheduler.
func SupplyAsync[T any](f func() (T, error)) Future[T] {
	return SpawnOn(DefaultScheduler(), f)
}

// RunAsyncOn creates a root task on sched from a function that
// produces no value.
func RunAsyncOn(sched Scheduler, f func() error) Future[Void] {
	if f == nil {
		panic("future(RunAsync): nil function")
	}
	return SpawnOn(sched, func() (Void, error) { return Void{}, f() })
}

// RunAsync creates a root task on the default scheduler from a
// function that produces no value.
func RunAsync(f func() error) Future[Void] {
	return RunAsyncOn(DefaultScheduler(), f)
}

// SpawnFutureOn creates a root task on sched whose function produces
// an inner future. The returned future is unwrapped: it completes
// with the inner future's result, not with the inner future itself.
func SpawnFutureOn[T any](sched Scheduler, f func() (Future[T], error)) Future[T] {
	if f == nil {
		panic("future(SpawnFuture): nil function")
	}
	t := newTask[T](sched)
	t.fn = func(t *task[T]) {
		inner, err := f()
		if err != nil {
			t.cancelBase(err)
			return
		}
		t.unwrap(inner)
	}
	scheduleTask(sched, t)
	return Future[T]{t: t}
}

// SpawnFuture creates an unwrapping root task on the default
// scheduler.
func SpawnFuture[T any](f func() (Future[T], error)) Future[T] {
	return SpawnFutureOn(DefaultScheduler(), f)
}

// MakeFuture returns a future that is already completed with v. Its
// task has no scheduler; continuations chained onto it without an
// explicit scheduler run inline.
func MakeFuture[T any](v T) Future[T] {
	t := newTask[T](nil)
	t.res = v
	t.finish()
	return Future[T]{t: t}
}

// MakeVoidFuture returns an already completed Future[Void].
func MakeVoidFuture() Future[Void] {
	return MakeFuture(Void{})
}

// MakeErrFuture returns a future that is already canceled with err.
func MakeErrFuture[T any](err error) Future[T] {
	t := newTask[T](nil)
	t.cancelBase(err)
	return Future[T]{t: t}
}
