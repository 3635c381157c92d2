package userfs

// file is the content model of one userfs file: a doubly linked list of
// blocks plus the bookkeeping needed for reference-counted deferred
// deletion.
//
// Invariant: size == sum of every block's occupied count; every block but
// the last is completely full (occupied == BlockSize).
type file struct {
	name    string
	head    *block
	tail    *block
	size    int64
	refs    int
	deleted bool

	prev *file
	next *file
}

func newFile(name string) *file {
	return &file{name: name}
}

// blockAt returns the block holding linear position p, or nil when the
// block list ends before that position. It never creates blocks; callers
// append them with appendBlock.
func (f *file) blockAt(p int64) *block {
	idx := p / BlockSize
	b := f.head
	var i int64
	for i = 0; i < idx && b != nil; i++ {
		b = b.next
	}
	return b
}

// appendBlock links a fresh empty block onto the tail of the list.
func (f *file) appendBlock() *block {
	b := newBlock()
	if f.tail == nil {
		f.head = b
		f.tail = b
	} else {
		b.prev = f.tail
		f.tail.next = b
		f.tail = b
	}
	return b
}

// truncateBlocks drops every block after the one holding position n
// (exclusive), trimming the kept block's occupied count down to n's
// in-block offset. n must be <= size.
func (f *file) truncateBlocks(n int64) {
	if n == 0 {
		f.head = nil
		f.tail = nil
		f.size = 0
		return
	}

	keepIdx := (n - 1) / BlockSize
	b := f.head
	var i int64
	for i = 0; i < keepIdx && b != nil; i++ {
		b = b.next
	}
	if b == nil {
		return
	}

	off := int(n - keepIdx*BlockSize)
	b.occupied = off
	b.next = nil
	f.tail = b
	f.size = n
}

// growZero extends the file with zero bytes up to size n (n >= f.size).
func (f *file) growZero(n int64) {
	zero := make([]byte, BlockSize)
	for f.size < n {
		want := n - f.size
		b := f.tail
		if b == nil || b.occupied == BlockSize {
			b = f.appendBlock()
		}
		free := BlockSize - b.occupied
		if int64(free) > want {
			free = int(want)
		}
		b.writeAt(b.occupied, zero[:free])
		f.size += int64(free)
	}
}
