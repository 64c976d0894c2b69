package future

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"
)

// waitPollInterval bounds how long a cooperatively waiting worker
// stays blocked before rescanning the queues. Work submitted from
// outside the pool while the worker is blocked would otherwise go
// unnoticed until another worker frees up.
const waitPollInterval = 100 * time.Microsecond

// A ThreadPool runs tasks on a fixed set of worker goroutines using
// work-stealing: each worker owns a deque and idle workers steal from
// the others. Tasks submitted from non-worker goroutines go through a
// shared FIFO injection queue.
//
// A ThreadPool must be released with Shutdown. Tasks still queued at
// shutdown are canceled with [ErrNotExecuted].
type ThreadPool struct {
	workers  []*worker
	inject   injectQueue
	owners   sync.Map // goroutine id -> *worker
	pending  atomic.Int64
	sleeping atomic.Int32
	shutdown atomic.Bool
	parkMu   sync.Mutex
	parkCond *sync.Cond
	wg       sync.WaitGroup
	prerun   func()
	postrun  func()
}

// A ThreadPoolOption configures a pool at construction.
type ThreadPoolOption func(*ThreadPool)

// WithPrerun sets a hook called once by each worker on entry, before
// it runs any task. Useful for thread naming, pinning and the like.
func WithPrerun(f func()) ThreadPoolOption {
	return func(p *ThreadPool) { p.prerun = f }
}

// WithPostrun sets a hook called once by each worker on clean exit.
func WithPostrun(f func()) ThreadPoolOption {
	return func(p *ThreadPool) { p.postrun = f }
}

// NewThreadPool creates a pool with numThreads workers. A value of 0
// or less picks the size from the LIBASYNC_NUM_THREADS environment
// variable, falling back to the CPU count.
func NewThreadPool(numThreads int, opts ...ThreadPoolOption) *ThreadPool {
	if numThreads <= 0 {
		numThreads = numThreadsFromEnv()
	}

	p := new(ThreadPool)
	p.parkCond = sync.NewCond(&p.parkMu)
	for _, o := range opts {
		o(p)
	}

	p.workers = make([]*worker, numThreads)
	for i := range p.workers {
		w := &worker{
			pool: p,
			rng:  rand.New(rand.NewPCG(uint64(i)+1, 0x9e3779b97f4a7c15)),
		}
		w.dq.init()
		p.workers[i] = w
	}

	p.wg.Add(numThreads)
	for _, w := range p.workers {
		go w.loop()
	}
	return p
}

// NumWorkers returns the number of worker goroutines in the pool.
func (p *ThreadPool) NumWorkers() int { return len(p.workers) }

// Schedule submits a task. From one of this pool's workers it goes to
// the bottom of that worker's own deque; from anywhere else it goes
// to the injection queue and one sleeping worker is woken.
func (p *ThreadPool) Schedule(h RunHandle) {
	t := h.t
	if t == nil {
		return
	}
	if p.shutdown.Load() {
		t.cancelTask(ErrNotExecuted)
		return
	}
	p.pending.Add(1)
	if w, ok := p.owners.Load(goid.Get()); ok {
		w.(*worker).dq.pushBottom(t)
	} else {
		p.inject.push(t)
	}
	p.wakeOne()
}

func (p *ThreadPool) wakeOne() {
	if p.sleeping.Load() > 0 {
		p.parkMu.Lock()
		p.parkCond.Signal()
		p.parkMu.Unlock()
	}
}

// park blocks the calling worker until new work is signaled. The
// pending counter is rechecked after registering as a sleeper so a
// submission racing with the scan-to-park transition is never lost.
func (p *ThreadPool) park() {
	p.parkMu.Lock()
	p.sleeping.Add(1)
	if p.shutdown.Load() || p.pending.Load() > 0 {
		p.sleeping.Add(-1)
		p.parkMu.Unlock()
		return
	}
	p.parkCond.Wait()
	p.sleeping.Add(-1)
	p.parkMu.Unlock()
}

// Shutdown stops the pool: workers finish the task in hand, drain
// nothing further, and exit. Every task left in a deque or in the
// injection queue is then canceled with [ErrNotExecuted] so that its
// observers do not wait forever. Shutdown blocks until all workers
// have exited and is safe to call more than once.
func (p *ThreadPool) Shutdown() {
	if !p.shutdown.Swap(true) {
		p.parkMu.Lock()
		p.parkCond.Broadcast()
		p.parkMu.Unlock()
	}
	p.wg.Wait()

	for _, w := range p.workers {
		for {
			t, ok := w.dq.stealTop()
			if !ok {
				break
			}
			p.pending.Add(-1)
			t.cancelTask(ErrNotExecuted)
		}
	}
	for {
		t, ok := p.inject.tryPop()
		if !ok {
			break
		}
		p.pending.Add(-1)
		t.cancelTask(ErrNotExecuted)
	}
}

type worker struct {
	pool *ThreadPool
	dq   deque
	rng  *rand.Rand
}

func (w *worker) loop() {
	p := w.pool
	defer p.wg.Done()

	gid := goid.Get()
	p.owners.Store(gid, w)
	defer p.owners.Delete(gid)

	pushWaitHandler(gid, w.cooperativeWait)
	defer popWaitHandler(gid)

	if p.prerun != nil {
		p.prerun()
	}
	if p.postrun != nil {
		defer p.postrun()
	}

	for {
		if p.shutdown.Load() {
			return
		}
		if t, ok := w.next(); ok {
			t.runTask()
			continue
		}
		p.park()
	}
}

// next finds one unit of work: own deque bottom first, then the
// injection queue, then a bounded number of steal attempts at random
// victims.
func (w *worker) next() (runnable, bool) {
	p := w.pool
	if t, ok := w.dq.popBottom(); ok {
		p.pending.Add(-1)
		return t, true
	}
	if t, ok := p.inject.tryPop(); ok {
		p.pending.Add(-1)
		return t, true
	}
	n := len(p.workers)
	for i := 0; i < 2*n; i++ {
		victim := p.workers[w.rng.IntN(n)]
		if victim == w {
			continue
		}
		if t, ok := victim.dq.stealTop(); ok {
			p.pending.Add(-1)
			return t, true
		}
	}
	return nil, false
}

// cooperativeWait is the wait handler installed on every worker
// goroutine: instead of sleeping on the awaited task, keep executing
// pool work, rechecking readiness between work items.
func (w *worker) cooperativeWait(h WaitHandle) {
	done := make(chan struct{})
	h.OnFinish(func() { close(done) })

	for {
		select {
		case <-done:
			return
		default:
		}
		if t, ok := w.next(); ok {
			t.runTask()
			continue
		}
		select {
		case <-done:
			return
		case <-time.After(waitPollInterval):
		}
	}
}

// injectQueue is the shared FIFO for tasks submitted from non-worker
// goroutines.
type injectQueue struct {
	mu sync.Mutex
	q  []runnable
}

func (q *injectQueue) push(t runnable) {
	q.mu.Lock()
	q.q = append(q.q, t)
	q.mu.Unlock()
}

func (q *injectQueue) tryPop() (runnable, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.q) == 0 {
		return nil, false
	}
	t := q.q[0]
	q.q[0] = nil
	q.q = q.q[1:]
	return t, true
}
