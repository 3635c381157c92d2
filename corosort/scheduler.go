package corosort

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Scheduler is the singleton-by-convention owner of a doubly linked
// ready list of coroutines and the quantum every one of them switches
// on. There is no package-level singleton: callers instantiate one
// Scheduler per sort run and thread the handle through explicitly, per
// the Go-native rendering of the coursework's global scheduler.
type Scheduler struct {
	quantum    time.Duration
	head, tail *Coroutine
	log        *logrus.Entry
}

// New returns a Scheduler with an empty ready list and the given
// per-coroutine time quantum.
func New(quantum time.Duration, log *logrus.Entry) *Scheduler {
	if quantum <= 0 {
		quantum = 100 * time.Microsecond
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Scheduler{
		quantum: quantum,
		log:     log.WithField("component", "corosort.scheduler"),
	}
}

// Add creates a coroutine around fn and arg and appends it to the ready
// list. It is not started until the scheduler resumes it for the first
// time.
func (s *Scheduler) Add(fn Func, arg any) *Coroutine {
	c := newCoroutine(s, fn, arg)
	s.insert(c)
	return c
}

func (s *Scheduler) insert(c *Coroutine) {
	if s.tail == nil {
		s.head, s.tail = c, c
		return
	}
	c.prev = s.tail
	s.tail.next = c
	s.tail = c
}

func (s *Scheduler) remove(c *Coroutine) {
	if c.prev != nil {
		c.prev.next = c.next
	} else {
		s.head = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	} else {
		s.tail = c.prev
	}
	c.prev, c.next = nil, nil
}

// Wait runs the ready list — rotating FIFO through it on every real
// switch — until a coroutine finishes, then returns it. Call Wait
// repeatedly until it returns nil, which means the ready list is empty.
func (s *Scheduler) Wait() *Coroutine {
	for {
		c := s.head
		if c == nil {
			return nil
		}

		c.running = true
		c.startTime = time.Now()

		if !c.started {
			c.started = true
			go c.run()
		} else {
			c.resumeCh <- struct{}{}
		}

		<-c.pauseCh
		c.running = false

		if c.finished {
			s.remove(c)
			return c
		}

		s.remove(c)
		s.insert(c)
	}
}
