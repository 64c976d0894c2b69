package future

// A task moves through these states in one direction only:
// pending -> locked -> completed/canceled for event tasks,
// pending -> completed/canceled for computed tasks, with an optional
// detour through unwrapped when the task's function returns another
// future. completed and canceled are terminal.
const (
	statePending uint32 = iota
	stateLocked
	stateUnwrapped
	stateCompleted
	stateCanceled
)

func isFinished(s uint32) bool {
	return s == stateCompleted || s == stateCanceled
}
