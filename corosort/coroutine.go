package corosort

import "time"

// Func is the body of a coroutine. It receives a Yielder for cooperative
// suspension and the argument given at construction, and returns the
// value retrieved once the coroutine has finished.
type Func func(y Yielder, arg any) any

// Yielder lets coroutine body code request a cooperative switch without
// reaching back into the scheduler or the Coroutine's internals.
type Yielder interface {
	Yield()
}

// Coroutine is a cooperatively scheduled execution context. It is backed
// by a dedicated goroutine that hands off to the scheduler goroutine
// through an unbuffered channel on every real switch, so exactly one of
// the two is ever runnable at a time: the goroutine plays the role the
// coursework gives to an alternate signal stack, without needing cgo or
// platform-specific context switching. Because the handoff is a strict
// alternation, the fields below are only ever touched by whichever side
// currently holds control, and the channel send/receive pair that
// transfers control also establishes the happens-before edge the next
// side relies on — no atomics are needed.
type Coroutine struct {
	fn  Func
	arg any

	sched *Scheduler

	started  bool
	finished bool
	running  bool

	result any

	resumeCh chan struct{}
	pauseCh  chan struct{}

	switchCount      int64
	falseSwitchCount int64
	startTime        time.Time
	workTime         time.Duration

	prev, next *Coroutine
}

func newCoroutine(s *Scheduler, fn Func, arg any) *Coroutine {
	return &Coroutine{
		fn:       fn,
		arg:      arg,
		sched:    s,
		resumeCh: make(chan struct{}),
		pauseCh:  make(chan struct{}),
	}
}

// Finished reports whether the coroutine has run to completion.
func (c *Coroutine) Finished() bool {
	return c.finished
}

// Result returns the coroutine's return value. Only meaningful once
// Finished reports true.
func (c *Coroutine) Result() any {
	return c.result
}

// Stats returns (switch_count, false_switch_count, worktime). worktime
// includes the current slice if the coroutine is still running.
func (c *Coroutine) Stats() (switches, falseSwitches int64, worktime time.Duration) {
	w := c.workTime
	if c.running {
		w += time.Since(c.startTime)
	}
	return c.switchCount, c.falseSwitchCount, w
}

// Yield compares elapsed time since this slice started against the
// scheduler's quantum. Below quantum it returns immediately without
// switching (a false switch, still counted); otherwise it banks the
// worked time, hands control back to the scheduler, and blocks until
// the scheduler resumes it again.
func (c *Coroutine) Yield() {
	if time.Since(c.startTime) < c.sched.quantum {
		c.falseSwitchCount++
		return
	}

	c.switchCount++
	c.workTime += time.Since(c.startTime)

	c.pauseCh <- struct{}{}
	<-c.resumeCh

	c.startTime = time.Now()
}

// run is the coroutine's dedicated goroutine. It is started once, on
// first entry, and executes fn to completion — coroutines never resume
// after finishing.
func (c *Coroutine) run() {
	res := c.fn(c, c.arg)

	c.result = res
	c.finished = true
	c.workTime += time.Since(c.startTime)

	c.pauseCh <- struct{}{}
}
