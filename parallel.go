package future

// An IntRange is a half-open interval of integers [Begin, End) for
// the parallel helpers to partition.
type IntRange struct {
	Begin, End int
}

// IRange returns the half-open range [begin, end).
func IRange(begin, end int) IntRange {
	if end < begin {
		end = begin
	}
	return IntRange{Begin: begin, End: end}
}

// Len returns the number of integers in the range.
func (r IntRange) Len() int { return r.End - r.Begin }

// parallelGrain picks the largest chunk run sequentially: small
// enough to split across the pool, large enough not to drown in task
// overhead.
func parallelGrain(n, workers int) int {
	g := n / (4 * workers)
	if g < 1 {
		g = 1
	}
	return g
}

func schedWorkers(sched Scheduler) int {
	if p, ok := sched.(*ThreadPool); ok {
		return p.NumWorkers()
	}
	return HardwareConcurrency()
}

// ParallelInvokeOn runs the given functions in parallel on sched and
// waits for all of them. The first error observed, including captured
// panics, is returned.
func ParallelInvokeOn(sched Scheduler, fns ...func()) error {
	switch len(fns) {
	case 0:
		return nil
	case 1:
		return invokeLeaf(fns[0])
	}
	mid := len(fns) / 2
	right := RunAsyncOn(sched, func() error {
		return ParallelInvokeOn(sched, fns[mid:]...)
	})
	err := ParallelInvokeOn(sched, fns[:mid]...)
	if rerr := right.Err(); err == nil {
		err = rerr
	}
	return err
}

// ParallelInvoke runs the given functions in parallel on the default
// scheduler and waits for all of them.
func ParallelInvoke(fns ...func()) error {
	return ParallelInvokeOn(DefaultScheduler(), fns...)
}

func invokeLeaf(fn func()) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = newPanicError(v)
		}
	}()
	fn()
	return nil
}

// ParallelForOn applies body to every integer in r, splitting the
// range across sched. It waits for all iterations; the first error
// observed, including captured panics, is returned.
func ParallelForOn(sched Scheduler, r IntRange, body func(int)) error {
	if body == nil {
		panic("future(ParallelFor): nil function")
	}
	return parallelFor(sched, r, parallelGrain(r.Len(), schedWorkers(sched)), body)
}

// ParallelFor applies body to every integer in r on the default
// scheduler.
func ParallelFor(r IntRange, body func(int)) error {
	return ParallelForOn(DefaultScheduler(), r, body)
}

func parallelFor(sched Scheduler, r IntRange, grain int, body func(int)) error {
	if r.Len() <= grain {
		return forLeaf(r, body)
	}
	mid := r.Begin + r.Len()/2
	right := RunAsyncOn(sched, func() error {
		return parallelFor(sched, IntRange{mid, r.End}, grain, body)
	})
	err := parallelFor(sched, IntRange{r.Begin, mid}, grain, body)
	if rerr := right.Err(); err == nil {
		err = rerr
	}
	return err
}

func forLeaf(r IntRange, body func(int)) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = newPanicError(v)
		}
	}()
	for i := r.Begin; i < r.End; i++ {
		body(i)
	}
	return nil
}

// ParallelReduceOn maps every integer in r through mapf and folds the
// results with reduce, splitting the range across sched. reduce must
// be associative; init is the identity of each chunk.
func ParallelReduceOn[T any](sched Scheduler, r IntRange, init T, mapf func(int) T, reduce func(T, T) T) (T, error) {
	if mapf == nil || reduce == nil {
		panic("future(ParallelReduce): nil function")
	}
	return parallelReduce(sched, r, parallelGrain(r.Len(), schedWorkers(sched)), init, mapf, reduce)
}

// ParallelReduce maps and folds r on the default scheduler.
func ParallelReduce[T any](r IntRange, init T, mapf func(int) T, reduce func(T, T) T) (T, error) {
	return ParallelReduceOn(DefaultScheduler(), r, init, mapf, reduce)
}

func parallelReduce[T any](sched Scheduler, r IntRange, grain int, init T, mapf func(int) T, reduce func(T, T) T) (T, error) {
	if r.Len() <= grain {
		return reduceLeaf(r, init, mapf, reduce)
	}
	mid := r.Begin + r.Len()/2
	right := SpawnOn(sched, func() (T, error) {
		return parallelReduce(sched, IntRange{mid, r.End}, grain, init, mapf, reduce)
	})
	left, err := parallelReduce(sched, IntRange{r.Begin, mid}, grain, init, mapf, reduce)
	rv, rerr := right.Get()
	if err != nil {
		var zero T
		return zero, err
	}
	if rerr != nil {
		var zero T
		return zero, rerr
	}
	return reduce(left, rv), nil
}

func reduceLeaf[T any](r IntRange, init T, mapf func(int) T, reduce func(T, T) T) (v T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = newPanicError(p)
		}
	}()
	v = init
	for i := r.Begin; i < r.End; i++ {
		v = reduce(v, mapf(i))
	}
	return v, nil
}
