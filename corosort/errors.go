// Package corosort implements the coursework's cooperative coroutine
// runtime and the external sort of integer files built on top of it: a
// scheduler switches between coroutines on a fixed time quantum, each
// coroutine spills one input file into a sorted run, and a single
// min-heap merge streams the runs into the final output.
package corosort

import (
	liberr "github.com/sabouaram/sysprog/errors"
)

// Error codes for the corosort package, allocated from
// errors.MinPkgCoroSort so they never collide with any other package's
// CodeError range.
const (
	NoErr liberr.CodeError = iota + liberr.MinPkgCoroSort
	ErrInvalidArgument
	ErrOpenInput
	ErrCreateTemp
	ErrWriteTemp
	ErrCreateOutput
	ErrCoroutineFailed
)

func init() {
	liberr.RegisterIdFctMessage(NoErr, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case NoErr:
		return "no error"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrOpenInput:
		return "could not open input file"
	case ErrCreateTemp:
		return "could not create run file"
	case ErrWriteTemp:
		return "could not write run file"
	case ErrCreateOutput:
		return "could not create output file"
	case ErrCoroutineFailed:
		return "one or more coroutines failed"
	}

	return liberr.NullMessage
}
