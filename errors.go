package future

import "errors"

// ErrAbandonedEvent is the cancellation error of a task whose [Event]
// was abandoned before a result was set.
var ErrAbandonedEvent = errors.New("future: abandoned event")

// ErrNotExecuted is the cancellation error of a task whose run handle
// was dropped by a scheduler without being run, including tasks still
// queued when a [ThreadPool] shuts down.
var ErrNotExecuted = errors.New("future: task not executed")
