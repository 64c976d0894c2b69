package future_test

import (
	"testing"
	"time"

	"github.com/b97tsk/future"
)

func TestWaitWithHandler(t *testing.T) {
	called := false
	h := func(wh future.WaitHandle) {
		called = true
		done := make(chan struct{})
		wh.OnFinish(func() { close(done) })
		<-done
		if !wh.Ready() {
			t.Error("the task should be ready once OnFinish fires.")
		}
	}

	ev := future.NewEvent[int]()
	f := ev.GetTask()
	go func() {
		time.Sleep(10 * time.Millisecond)
		ev.Set(1)
	}()

	future.WaitWithHandler(h, func() { f.Wait() })
	if !called {
		t.Error("the installed handler should have been used.")
	}
}

func TestSetWaitHandler(t *testing.T) {
	var used int
	h := func(wh future.WaitHandle) {
		used++
		for !wh.Ready() {
			time.Sleep(time.Millisecond)
		}
	}

	prev := future.SetWaitHandler(h)
	if prev != nil {
		t.Error("no handler should be installed initially.")
	}
	defer future.SetWaitHandler(nil)

	ev := future.NewEvent[int]()
	f := ev.GetTask()
	go func() {
		time.Sleep(5 * time.Millisecond)
		ev.Set(1)
	}()
	f.Wait()

	if used != 1 {
		t.Errorf("the handler ran %v times; want 1.", used)
	}
}

func TestWaitOnReadyTask(t *testing.T) {
	// A handler must not be consulted when the task is already
	// terminal.
	future.WaitWithHandler(func(future.WaitHandle) {
		t.Error("the handler must not run for a ready task.")
	}, func() {
		f := future.MakeFuture(1)
		f.Wait()
	})
}
