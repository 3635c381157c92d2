// Package shellexec executes the command tree an external parser
// produces: pipelines of fork/exec'd stages joined by pipes, optional
// stdout redirection, &&/|| chaining with short-circuit, background
// jobs, and in-process built-ins.
package shellexec

import (
	liberr "github.com/sabouaram/sysprog/errors"
)

// Error codes for the shellexec package, allocated from
// errors.MinPkgShellExec.
const (
	NoErr liberr.CodeError = iota + liberr.MinPkgShellExec
	ErrRedirectOpen
	ErrExecFailed
)

func init() {
	liberr.RegisterIdFctMessage(NoErr, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case NoErr:
		return "no error"
	case ErrRedirectOpen:
		return "could not open redirection target"
	case ErrExecFailed:
		return "could not start child process"
	}

	return liberr.NullMessage
}
