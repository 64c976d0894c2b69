// Package future is a library for composing asynchronous computations
// as values.
//
// A computation is described once, as a function, and handed to a
// [Scheduler]; what the caller gets back is a [Future], a handle to a
// result that will exist later. Futures chain: [Then] runs a function
// on a result that is not there yet, [WhenAll2] joins two futures,
// [Combine] joins and applies. Chains form a dependency graph that
// the schedulers execute as parents complete.
//
// # Tasks and Continuations
//
// Behind every handle is a task: a function slot, a result slot and
// an atomic state that only ever moves forward, from pending to
// completed or canceled. When a task reaches a terminal state it
// closes its continuation list and hands each registered child to the
// child's own scheduler. A continuation registered after that point
// is dispatched immediately by whoever registered it; exactly one of
// the two happens for every child.
//
// Cancellation means completing with an error. There is no
// interruption: a running function always runs to its end, and a
// panic inside it is captured into a [PanicError] rather than tearing
// anything down. A canceled parent cancels its value continuations
// with the same error; a task continuation made with [Continue] still
// runs and can inspect the outcome.
//
// If a task's function itself produces a future, [SpawnFuture] and
// [ThenFuture] unwrap it: the outer future completes with the inner
// future's result, however many schedulers the chain crosses.
//
// # Schedulers
//
// Four schedulers are provided. [Inline] runs tasks synchronously on
// the calling goroutine. [GoScheduler] starts a goroutine per task.
// [NewFIFO] queues tasks for a caller-driven loop. [NewThreadPool]
// runs a work-stealing pool: each worker owns a deque, pushes and
// pops at its bottom, and steals from the top of other workers'
// deques when its own runs dry; tasks submitted from outside the pool
// go through a shared injection queue.
//
// Any type with a Schedule method can serve as a scheduler. The
// contract is small: run the handle exactly once, or drop it, which
// cancels the task with [ErrNotExecuted].
//
// # Waiting Without Blocking the Pool
//
// Waiting on a future from inside a pool worker does not idle the
// worker. Each worker installs a [WaitHandler] that executes other
// pool work between readiness checks, so a one-worker pool can run a
// task that waits on another task scheduled behind it. Goroutines
// outside any pool sleep on a completion notification instead. The
// handler in effect is a per-goroutine stack, overridable with
// [SetWaitHandler] or scoped with [WaitWithHandler].
//
// # Events
//
// An [Event] is a task completed by hand: the producer calls Set or
// SetError, exactly one of which wins, and consumers hold the future
// from GetTask. An event that will never be set must be released with
// Abandon, which cancels the task with [ErrAbandonedEvent]; otherwise
// its consumers would wait forever.
package future
