package tpool

import (
	"container/list"
	"sync"
)

// taskQueue is a blocking FIFO of *Task, guarded by a mutex/condvar pair:
// the producer's Enqueue publishes under the mutex (release), and
// Dequeue's wakeup reads under the same mutex (acquire), so no task is
// ever observed half-initialised by a worker.
type taskQueue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    *list.List
	shutdown bool
}

func newTaskQueue() *taskQueue {
	q := &taskQueue{items: list.New()}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *taskQueue) enqueue(t *Task) {
	q.mu.Lock()
	q.items.PushBack(t)
	q.mu.Unlock()
	q.cond.Signal()
}

// dequeue blocks until a task is available or the queue is shut down, in
// which case ok is false.
func (q *taskQueue) dequeue() (t *Task, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.Len() == 0 && !q.shutdown {
		q.cond.Wait()
	}

	if q.items.Len() == 0 {
		return nil, false
	}

	e := q.items.Front()
	q.items.Remove(e)
	return e.Value.(*Task), true
}

func (q *taskQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// shutdownQueue marks the queue closed and wakes every blocked waiter.
func (q *taskQueue) shutdownQueue() {
	q.mu.Lock()
	q.shutdown = true
	q.mu.Unlock()
	q.cond.Broadcast()
}
