package corosort

import (
	"bufio"
	"io"
	"os"

	"github.com/sabouaram/sysprog/ioutils/bufferReadCloser"
)

// pageSize is the chunk size FileNumberReader refills with, and the
// buffer size the merge step's output writer flushes at.
const pageSize = 4096

// FileNumberReader yields one base-10 integer per call, skipping
// whitespace, from a page-sized byte buffer over an input file. Tokens
// spanning a chunk boundary are handled transparently by refilling the
// buffer mid-token. It is built on ioutils/bufferReadCloser so the
// teacher's own buffered-reader-with-close wrapper, not a bare *os.File,
// owns the chunked byte source.
type FileNumberReader struct {
	src bufferReadCloser.Reader
	buf []byte
	pos int
	n   int
	eof bool
}

// NewFileNumberReader wraps f in a page-sized buffered reader.
func NewFileNumberReader(f *os.File) *FileNumberReader {
	br := bufio.NewReaderSize(f, pageSize)
	return &FileNumberReader{
		src: bufferReadCloser.NewReader(br, f.Close),
		buf: make([]byte, pageSize),
	}
}

func (r *FileNumberReader) fill() bool {
	if r.eof {
		return false
	}
	n, err := r.src.Read(r.buf)
	r.pos, r.n = 0, n
	if n == 0 {
		r.eof = true
		return false
	}
	if err != nil && err != io.EOF {
		r.eof = true
	}
	return true
}

func (r *FileNumberReader) readByte() (byte, bool) {
	for r.pos >= r.n {
		if !r.fill() {
			return 0, false
		}
	}
	b := r.buf[r.pos]
	r.pos++
	return b, true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// Next parses and returns the next base-10 integer, skipping any
// leading whitespace. ok is false once the source is exhausted.
func (r *FileNumberReader) Next() (int64, bool) {
	b, ok := r.readByte()
	for ok && isSpace(b) {
		b, ok = r.readByte()
	}
	if !ok {
		return 0, false
	}

	neg := false
	if b == '-' {
		neg = true
		b, ok = r.readByte()
		if !ok {
			return 0, false
		}
	}

	var v int64
	var got bool
	for ok && b >= '0' && b <= '9' {
		v = v*10 + int64(b-'0')
		got = true
		b, ok = r.readByte()
	}
	if !got {
		return 0, false
	}

	if neg {
		v = -v
	}
	return v, true
}

// Close releases the underlying file.
func (r *FileNumberReader) Close() error {
	return r.src.Close()
}
