// Package chat implements a non-blocking, poll-driven TCP chat
// protocol: a length-prefixed message frame, a Server that broadcasts
// whatever one peer sends to every other peer, and a Client that
// speaks the same framing over a single connection.
package chat

import (
	liberr "github.com/sabouaram/sysprog/errors"
)

// Error codes for the chat package, allocated from
// errors.MinPkgChat.
const (
	NoErr liberr.CodeError = iota + liberr.MinPkgChat
	ErrAlreadyStarted
	ErrNotStarted
	ErrPortBusy
	ErrNoAddr
	ErrInvalidArgument
	ErrTimeout
	ErrSys
	ErrNotImplemented
)

func init() {
	liberr.RegisterIdFctMessage(NoErr, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case NoErr:
		return "no error"
	case ErrAlreadyStarted:
		return "already listening"
	case ErrNotStarted:
		return "not started"
	case ErrPortBusy:
		return "address already in use"
	case ErrNoAddr:
		return "no such host or address"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrTimeout:
		return "timed out waiting for readiness"
	case ErrSys:
		return "system call failed"
	case ErrNotImplemented:
		return "not implemented"
	}

	return liberr.NullMessage
}
