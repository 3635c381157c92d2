package corosort

import "container/heap"

// heapItem is one (key, source) pair tracked by MergeHeap: key is the
// next integer of the run identified by source.
type heapItem struct {
	key    int64
	source int
}

// rawHeap implements container/heap.Interface over heapItem; MergeHeap
// wraps it so callers never see the raw slice-based primitives.
type rawHeap []heapItem

func (h rawHeap) Len() int            { return len(h) }
func (h rawHeap) Less(i, j int) bool  { return h[i].key < h[j].key }
func (h rawHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *rawHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *rawHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// MergeHeap is a min-heap of (key, source) pairs, one entry per active
// run, keyed by the next integer of that run. It drives the k-way merge
// that streams every sorted run into the final output.
type MergeHeap struct {
	h rawHeap
}

// NewMergeHeap returns an empty MergeHeap ready for use.
func NewMergeHeap() *MergeHeap {
	m := &MergeHeap{}
	heap.Init(&m.h)
	return m
}

// Push adds one (key, source) entry.
func (m *MergeHeap) Push(key int64, source int) {
	heap.Push(&m.h, heapItem{key: key, source: source})
}

// Pop removes and returns the entry with the smallest key. ok is false
// if the heap is empty.
func (m *MergeHeap) Pop() (key int64, source int, ok bool) {
	if m.h.Len() == 0 {
		return 0, 0, false
	}
	it := heap.Pop(&m.h).(heapItem)
	return it.key, it.source, true
}

// Len returns the number of active entries.
func (m *MergeHeap) Len() int {
	return m.h.Len()
}
