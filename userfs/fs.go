package userfs

import (
	liberr "github.com/sabouaram/sysprog/errors"
	"github.com/sirupsen/logrus"
)

// FileSystem is a single-threaded, in-memory user-space filesystem. It
// owns one fileTable and one descriptorTable; there is no global
// singleton — callers instantiate and thread the handle themselves.
type FileSystem struct {
	files *fileTable
	descs *descriptorTable
	last  liberr.CodeError
	log   *logrus.Entry
}

// New returns a fresh, empty FileSystem.
func New(log *logrus.Entry) *FileSystem {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &FileSystem{
		files: newFileTable(),
		descs: newDescriptorTable(),
		last:  NoErr,
		log:   log.WithField("component", "userfs"),
	}
}

// Errno returns the CodeError of the most recently failed call.
func (fs *FileSystem) Errno() liberr.CodeError {
	return fs.last
}

func (fs *FileSystem) fail(code liberr.CodeError) liberr.Error {
	fs.last = code
	return code.Error(nil)
}

func (fs *FileSystem) ok() {
	fs.last = NoErr
}

// Open returns a descriptor handle for name. Without Create, a missing
// file fails NoFile. With Create, a missing file is created; a deleted
// file with the same name is never reused. Absence of all permission
// flags means read-write.
func (fs *FileSystem) Open(name string, flags OpenFlag) (int, liberr.Error) {
	f := fs.files.findVisible(name)

	if f == nil {
		if flags&Create == 0 {
			return -1, fs.fail(ErrNoFile)
		}
		f = newFile(name)
		fs.files.insert(f)
	}

	f.refs++

	d := &descriptor{f: f, flags: flags, open: true}
	fd := fs.descs.add(d)

	fs.ok()
	fs.log.WithField("fd", fd).WithField("name", name).Debug("opened")
	return fd, nil
}

// Close decrements the underlying file's refcount, freeing it (and its
// blocks) once a deleted file's refcount reaches zero.
func (fs *FileSystem) Close(fd int) liberr.Error {
	d := fs.descs.get(fd)
	if d == nil || !d.open {
		return fs.fail(ErrNoFile)
	}

	d.open = false
	fs.descs.free(fd)

	d.f.refs--
	if d.f.deleted && d.f.refs == 0 {
		fs.files.remove(d.f)
	}

	fs.ok()
	return nil
}

// Read copies up to len(buf) bytes from fd's current position, advancing it.
// Returns 0 at EOF.
func (fs *FileSystem) Read(fd int, buf []byte) (int, liberr.Error) {
	if buf == nil {
		return 0, fs.fail(ErrNilPointer)
	}

	d := fs.descs.get(fd)
	if d == nil || !d.open {
		return 0, fs.fail(ErrNoFile)
	}
	if !d.flags.canRead() {
		return 0, fs.fail(ErrNoPermission)
	}

	d.clampPos()
	if d.pos >= d.f.size {
		fs.ok()
		return 0, nil
	}

	want := int64(len(buf))
	if d.pos+want > d.f.size {
		want = d.f.size - d.pos
	}

	var read int64
	for read < want {
		b := d.f.blockAt(d.pos)
		if b == nil {
			break
		}
		off := int(d.pos % BlockSize)
		n := b.readAt(off, buf[read:want])
		if n == 0 {
			break
		}
		read += int64(n)
		d.pos += int64(n)
	}

	fs.ok()
	return int(read), nil
}

// Write writes len(p) bytes at fd's current position, appending new
// blocks as needed, and advances the position. Fails NoMem if the
// resulting size would exceed MaxFileSize.
func (fs *FileSystem) Write(fd int, p []byte) (int, liberr.Error) {
	if p == nil {
		return 0, fs.fail(ErrNilPointer)
	}

	d := fs.descs.get(fd)
	if d == nil || !d.open {
		return 0, fs.fail(ErrNoFile)
	}
	if !d.flags.canWrite() {
		return 0, fs.fail(ErrNoPermission)
	}

	end := d.pos + int64(len(p))
	if end > MaxFileSize {
		return 0, fs.fail(ErrNoMem)
	}

	var written int
	for written < len(p) {
		b := d.f.blockAt(d.pos)
		off := int(d.pos % BlockSize)

		if b == nil || off == BlockSize {
			b = d.f.appendBlock()
			off = 0
		}

		n := b.writeAt(off, p[written:])
		written += n
		d.pos += int64(n)

		if d.pos > d.f.size {
			d.f.size = d.pos
		}
	}

	fs.ok()
	return written, nil
}

// Delete marks the first non-deleted file with the given name as
// deleted and unlinks it from the visible list. A file with no open
// descriptors is freed immediately; otherwise it is freed on the last
// matching Close.
func (fs *FileSystem) Delete(name string) liberr.Error {
	f := fs.files.findVisible(name)
	if f == nil {
		return fs.fail(ErrNoFile)
	}

	f.deleted = true
	if f.refs == 0 {
		fs.files.remove(f)
	}

	fs.ok()
	return nil
}

// Resize grows (zero-filling) or shrinks (discarding trailing bytes and
// blocks) fd's file to exactly n bytes. The calling descriptor's
// position is clamped immediately if it now lies past the new end;
// other descriptors are clamped lazily on their next operation.
func (fs *FileSystem) Resize(fd int, n int64) liberr.Error {
	if n < 0 {
		return fs.fail(ErrNilPointer)
	}

	d := fs.descs.get(fd)
	if d == nil || !d.open {
		return fs.fail(ErrNoFile)
	}
	if !d.flags.canWrite() {
		return fs.fail(ErrNoPermission)
	}
	if n > MaxFileSize {
		return fs.fail(ErrNoMem)
	}

	if n < d.f.size {
		d.f.truncateBlocks(n)
	} else if n > d.f.size {
		d.f.growZero(n)
	}

	d.clampPos()

	fs.ok()
	return nil
}

// Stat returns (size, refs, deleted) for the visible file with the given
// name or, if there is none, for the first one pending deletion.
func (fs *FileSystem) Stat(name string) (size int64, refs int, deleted bool, ok bool) {
	return fs.files.stat(name)
}

// Destroy drops every file and descriptor held by this FileSystem.
func (fs *FileSystem) Destroy() {
	fs.files = newFileTable()
	fs.descs = newDescriptorTable()
	fs.ok()
}
