package tpool

import (
	gocontext "context"
	"sync"

	libatm "github.com/sabouaram/sysprog/atomic"
	libctx "github.com/sabouaram/sysprog/context"
	liberr "github.com/sabouaram/sysprog/errors"
	"github.com/sirupsen/logrus"
)

// Pool is a bounded, lazily-grown set of worker goroutines draining a
// shared taskQueue. New workers are spawned on push only when every live
// worker is busy and the pool is still below max.
type Pool struct {
	max   int
	queue *taskQueue

	spawnMu  sync.Mutex
	live     libatm.Value[int32]
	busy     libatm.Value[int32]
	inFlight libatm.Value[int32]

	lifecycle libctx.Config[string]
	cancel    gocontext.CancelFunc

	wg  sync.WaitGroup
	log *logrus.Entry
}

// addInt32 atomically adds delta to v and returns the new value, looping
// on CompareAndSwap since Value[T] has no native Add.
func addInt32(v libatm.Value[int32], delta int32) int32 {
	for {
		old := v.Load()
		n := old + delta
		if v.CompareAndSwap(old, n) {
			return n
		}
	}
}

// New allocates a Pool bounded by max live workers. 1 <= max <=
// TPoolMaxThreads.
func New(max int, log *logrus.Entry) (*Pool, liberr.Error) {
	if max < 1 {
		max = 1
	}
	if max > TPoolMaxThreads {
		max = TPoolMaxThreads
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	ctx, cancel := gocontext.WithCancel(gocontext.Background())

	return &Pool{
		max:       max,
		queue:     newTaskQueue(),
		live:      libatm.NewValue[int32](),
		busy:      libatm.NewValue[int32](),
		inFlight:  libatm.NewValue[int32](),
		lifecycle: libctx.New[string](ctx),
		cancel:    cancel,
		log:       log.WithField("component", "tpool"),
	}, nil
}

// PushTask enqueues a CREATED task, moves it to PENDING, and lazily
// spawns a worker if every live worker is busy and the pool has room to
// grow. Fails TooManyTasks if in-flight (pending+running) tasks have
// already reached TPoolMaxTasks.
func (p *Pool) PushTask(t *Task) liberr.Error {
	if t == nil {
		return ErrNilPointer.Error(nil)
	}
	if p.lifecycle.Err() != nil {
		return ErrPoolClosed.Error(p.lifecycle.Err())
	}

	if p.inFlight.Load() >= TPoolMaxTasks {
		return ErrTooManyTasks.Error(nil)
	}

	t.state.Store(int32(Pending))
	t.pushed.Store(true)
	addInt32(p.inFlight, 1)

	p.maybeSpawn()
	p.queue.enqueue(t)

	return nil
}

// maybeSpawn serialises worker creation through spawnMu so concurrent
// pushers never double-spawn past max.
func (p *Pool) maybeSpawn() {
	p.spawnMu.Lock()
	defer p.spawnMu.Unlock()

	if p.busy.Load() < p.live.Load() {
		return
	}
	if p.live.Load() >= int32(p.max) {
		return
	}

	addInt32(p.live, 1)
	p.wg.Add(1)
	go p.runWorker()
}

func (p *Pool) runWorker() {
	defer p.wg.Done()

	for {
		t, ok := p.queue.dequeue()
		if !ok {
			return
		}

		addInt32(p.busy, 1)
		t.run()
		addInt32(p.busy, -1)
		addInt32(p.inFlight, -1)
	}
}

// Busy returns the number of tasks currently executing.
func (p *Pool) Busy() int {
	return int(p.busy.Load())
}

// Live returns the number of worker goroutines spawned so far.
func (p *Pool) Live() int {
	return int(p.live.Load())
}

// Delete cancels the pool's lifecycle, refusing any further PushTask,
// then stops and joins every worker. Fails if any task is still
// in-flight.
func (p *Pool) Delete() liberr.Error {
	if p.inFlight.Load() > 0 {
		return ErrTooManyTasks.Error(nil)
	}

	p.cancel()
	p.queue.shutdownQueue()
	p.wg.Wait()
	return nil
}
