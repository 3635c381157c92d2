/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package userfs implements an in-memory, single-threaded user-space
// filesystem: files are block lists addressed through reference-counted
// open descriptors.
package userfs

import (
	liberr "github.com/sabouaram/sysprog/errors"
)

// Error codes for the userfs package, allocated from errors.MinPkgUserFS
// so they never collide with any other package's CodeError range.
const (
	NoErr liberr.CodeError = iota + liberr.MinPkgUserFS
	ErrNoFile
	ErrNoMem
	ErrNoPermission
	ErrNotImplemented
	ErrNilPointer
)

func init() {
	liberr.RegisterIdFctMessage(NoErr, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case NoErr:
		return "no error"
	case ErrNoFile:
		return "file does not exist"
	case ErrNoMem:
		return "file would exceed the maximum allowed size"
	case ErrNoPermission:
		return "descriptor does not allow this operation"
	case ErrNotImplemented:
		return "operation not implemented"
	case ErrNilPointer:
		return "nil buffer or descriptor given"
	}

	return liberr.NullMessage
}
