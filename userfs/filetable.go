package userfs

// fileTable is the owning doubly linked list of every file known to a
// FileSystem instance, visible (non-deleted) or pending deferred
// destruction.
type fileTable struct {
	head *file
	tail *file
}

func newFileTable() *fileTable {
	return &fileTable{}
}

func (t *fileTable) insert(f *file) {
	if t.tail == nil {
		t.head = f
		t.tail = f
		return
	}
	f.prev = t.tail
	t.tail.next = f
	t.tail = f
}

func (t *fileTable) remove(f *file) {
	if f.prev != nil {
		f.prev.next = f.next
	} else {
		t.head = f.next
	}
	if f.next != nil {
		f.next.prev = f.prev
	} else {
		t.tail = f.prev
	}
	f.prev = nil
	f.next = nil
}

// findVisible returns the first non-deleted file with the given name, or
// nil.
func (t *fileTable) findVisible(name string) *file {
	for f := t.head; f != nil; f = f.next {
		if f.name == name && !f.deleted {
			return f
		}
	}
	return nil
}

// stat reports (size, refs, deleted) for the visible file with the given
// name or, if there is none, for the first deleted file pending
// destruction under that name. ok is false if no such file exists.
func (t *fileTable) stat(name string) (size int64, refs int, deleted bool, ok bool) {
	f := t.findVisible(name)
	for g := t.head; f == nil && g != nil; g = g.next {
		if g.name == name {
			f = g
		}
	}
	if f == nil {
		return 0, 0, false, false
	}
	return f.size, f.refs, f.deleted, true
}
