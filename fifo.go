package future

import "sync"

// A FIFO is a passive scheduler: Schedule only queues, and the caller
// drives execution with TryRunOneTask or RunAllTasks. Both queueing
// and running are safe for concurrent use.
//
// Manually calling RunAllTasks is usually not desired. One would
// instead use the Autorun method to set up an autorun function to
// calling the RunAllTasks method automatically whenever a task is
// scheduled. A FIFO never calls the autorun function twice at the
// same time.
type FIFO struct {
	mu      sync.Mutex
	queue   []RunHandle
	running bool
	autorun func()
}

// NewFIFO creates an empty FIFO scheduler.
func NewFIFO() *FIFO { return new(FIFO) }

// Autorun sets up an autorun function to calling the RunAllTasks
// method automatically whenever a task is scheduled.
//
// One must pass a function that calls the RunAllTasks method.
//
// If f blocks, the Schedule method may block too. The best practice
// is not to block.
func (s *FIFO) Autorun(f func()) {
	s.autorun = f
}

// Schedule adds a task to the queue.
func (s *FIFO) Schedule(h RunHandle) {
	var autorun func()

	s.mu.Lock()
	s.queue = append(s.queue, h)
	if !s.running && s.autorun != nil {
		s.running = true
		autorun = s.autorun
	}
	s.mu.Unlock()

	if autorun != nil {
		autorun()
	}
}

// TryRunOneTask runs the oldest queued task. It returns false if the
// queue was empty.
func (s *FIFO) TryRunOneTask() bool {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return false
	}
	h := s.queue[0]
	s.queue = s.queue[1:]
	s.mu.Unlock()

	h.Run()
	return true
}

// RunAllTasks runs queued tasks until the queue is emptied, including
// tasks scheduled while it runs.
func (s *FIFO) RunAllTasks() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.running = false
			s.mu.Unlock()
			return
		}
		h := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		h.Run()
	}
}
