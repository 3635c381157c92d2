package tpool

import (
	"sync"

	libatm "github.com/sabouaram/sysprog/atomic"
	liberr "github.com/sabouaram/sysprog/errors"
)

// State is a Task's lifecycle stage.
type State int32

const (
	Created State = iota
	Pending
	Running
	Finished
	Joined
	Destroyed
)

// Func is the work a Task executes. It receives the argument given at
// construction and returns the value retrieved by Join.
type Func func(arg any) any

// Task wraps one unit of work and its result, tracked through a strict
// CREATED -> PENDING -> RUNNING -> FINISHED -> JOINED lifecycle; DESTROYED
// terminates from CREATED or JOINED only.
type Task struct {
	fn     Func
	arg    any
	state  libatm.Value[int32]
	pushed libatm.Value[bool]

	mu     sync.Mutex
	done   chan struct{}
	result any
}

// NewTask creates a CREATED task around fn and its argument. It is not
// queued anywhere until pushed to a Pool.
func NewTask(fn Func, arg any) *Task {
	t := &Task{
		fn:     fn,
		arg:    arg,
		done:   make(chan struct{}),
		state:  libatm.NewValue[int32](),
		pushed: libatm.NewValue[bool](),
	}
	t.state.Store(int32(Created))
	return t
}

// State returns the task's current lifecycle stage.
func (t *Task) State() State {
	return State(t.state.Load())
}

// IsFinished reports whether the task has completed execution (including
// already-joined tasks).
func (t *Task) IsFinished() bool {
	s := t.State()
	return s == Finished || s == Joined
}

// IsRunning reports whether the task is currently executing.
func (t *Task) IsRunning() bool {
	return t.State() == Running
}

func (t *Task) run() {
	t.state.Store(int32(Running))

	res := t.fn(t.arg)

	t.mu.Lock()
	t.result = res
	t.mu.Unlock()

	t.state.Store(int32(Finished))
	close(t.done)
}

// Join blocks until the task finishes, then returns its result and moves
// the task to JOINED. Fails TaskNotPushed if the task was never pushed to
// a pool.
func (t *Task) Join() (any, liberr.Error) {
	if !t.pushed.Load() {
		return nil, ErrTaskNotPushed.Error(nil)
	}

	<-t.done

	t.mu.Lock()
	res := t.result
	t.mu.Unlock()

	t.state.CompareAndSwap(int32(Finished), int32(Joined))
	return res, nil
}

// Delete releases a task. Permitted only from CREATED or JOINED; any
// other state fails TaskInPool.
func (t *Task) Delete() liberr.Error {
	switch t.State() {
	case Created, Joined:
		t.state.Store(int32(Destroyed))
		return nil
	default:
		return ErrTaskInPool.Error(nil)
	}
}
