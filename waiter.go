package future

import (
	"sync"

	"github.com/petermattis/goid"
)

// A WaitHandle is the view of a task given to a wait handler: enough
// to detect readiness and to register a completion callback, nothing
// more.
type WaitHandle struct {
	b *taskBase
}

// Valid reports whether the handle is bound to a task.
func (h WaitHandle) Valid() bool { return h.b != nil }

// Ready reports whether the task has finished executing. A true
// return also publishes the task's result to the caller.
func (h WaitHandle) Ready() bool { return h.b.ready() }

// OnFinish queues f to be called when the task has finished
// executing, or calls it immediately if it already has. f runs on
// whichever goroutine drives the terminal transition.
func (h WaitHandle) OnFinish(f func()) { h.b.onFinish(f) }

// A WaitHandler controls what a goroutine does while it waits for a
// task to become ready. It must return once the task is ready. The
// default handler sleeps; [ThreadPool] workers install a handler that
// executes other pool work instead.
type WaitHandler func(h WaitHandle)

// Wait handlers form a per-goroutine stack, keyed by goroutine id.
var waitHandlers = struct {
	sync.Mutex
	m map[int64][]WaitHandler
}{m: make(map[int64][]WaitHandler)}

func pushWaitHandler(gid int64, h WaitHandler) {
	waitHandlers.Lock()
	waitHandlers.m[gid] = append(waitHandlers.m[gid], h)
	waitHandlers.Unlock()
}

func popWaitHandler(gid int64) {
	waitHandlers.Lock()
	s := waitHandlers.m[gid]
	if len(s) <= 1 {
		delete(waitHandlers.m, gid)
	} else {
		waitHandlers.m[gid] = s[:len(s)-1]
	}
	waitHandlers.Unlock()
}

func currentWaitHandler(gid int64) WaitHandler {
	waitHandlers.Lock()
	defer waitHandlers.Unlock()
	if s := waitHandlers.m[gid]; len(s) != 0 {
		return s[len(s)-1]
	}
	return nil
}

// SetWaitHandler installs h as the current goroutine's wait handler
// and returns the previously installed one, which may be nil. Passing
// nil restores the default sleeping behavior.
func SetWaitHandler(h WaitHandler) WaitHandler {
	gid := goid.Get()
	waitHandlers.Lock()
	defer waitHandlers.Unlock()
	s := waitHandlers.m[gid]
	if len(s) == 0 {
		if h != nil {
			waitHandlers.m[gid] = []WaitHandler{h}
		}
		return nil
	}
	prev := s[len(s)-1]
	if h == nil && len(s) == 1 {
		delete(waitHandlers.m, gid)
	} else {
		s[len(s)-1] = h
	}
	return prev
}

// WaitWithHandler runs f with h installed as the current goroutine's
// wait handler. The previous handler is restored on every exit path,
// including panics.
func WaitWithHandler(h WaitHandler, f func()) {
	if h == nil {
		panic("future(WaitWithHandler): nil handler")
	}
	gid := goid.Get()
	pushWaitHandler(gid, h)
	defer popWaitHandler(gid)
	f()
}

// waitForTask blocks the calling goroutine until b is terminal, via
// the goroutine's current wait handler.
func waitForTask(b *taskBase) {
	h := currentWaitHandler(goid.Get())
	if h == nil {
		h = sleepingWait
	}
	h(WaitHandle{b: b})
}

// sleepingWait is the default handler for goroutines that are not
// pool workers: park on a completion notification.
func sleepingWait(h WaitHandle) {
	done := make(chan struct{})
	h.OnFinish(func() { close(done) })
	<-done
}
