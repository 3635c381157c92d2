// Package tpool implements a bounded thread pool: a fixed-ceiling set of
// worker goroutines consuming tasks off a blocking multi-producer,
// multi-consumer queue.
package tpool

import (
	liberr "github.com/sabouaram/sysprog/errors"
)

// Error codes for the tpool package, allocated from errors.MinPkgTPool.
const (
	NoErr liberr.CodeError = iota + liberr.MinPkgTPool
	ErrTooManyTasks
	ErrTaskNotPushed
	ErrTaskInPool
	ErrNilPointer
	ErrPoolClosed
)

func init() {
	liberr.RegisterIdFctMessage(NoErr, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case NoErr:
		return "no error"
	case ErrTooManyTasks:
		return "too many in-flight tasks for this pool"
	case ErrTaskNotPushed:
		return "task was never pushed to a pool"
	case ErrTaskInPool:
		return "task is still pending or running in a pool"
	case ErrNilPointer:
		return "nil task or function given"
	case ErrPoolClosed:
		return "pool has been deleted"
	}

	return liberr.NullMessage
}

// TPoolMaxThreads bounds how many workers a single Pool may grow to.
const TPoolMaxThreads = 256

// TPoolMaxTasks bounds how many tasks may be in-flight (pending+running)
// in a single Pool at once.
const TPoolMaxTasks = 4096
