package future

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// A PanicError is the cancellation error of a task whose function
// panicked. It records the panic value and the stack at the point of
// recovery.
type PanicError struct {
	value any
	stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{value: v, stack: debug.Stack()}
}

// Value returns the value the task function panicked with.
func (e *PanicError) Value() any { return e.value }

// Stack returns the stack captured when the panic was recovered.
func (e *PanicError) Stack() []byte { return e.stack }

func (e *PanicError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "panic: %v", e.value)
	if e.stack != nil {
		b.WriteString("\n\n")
		b.Write(e.stack)
	}
	return b.String()
}

// Unwrap returns the panic value if it was an error, so that
// errors.Is and errors.As see through recovered panics.
func (e *PanicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
