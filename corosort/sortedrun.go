package corosort

import "sort"

// SortedRun is an ordered array of integers built by binary-search
// insertion. Duplicates are permitted; ties keep insertion order
// (stable) by landing the new value after every equal existing value.
//
// The backing array starts at capacity 4 and doubles on growth, matching
// the coursework's manually managed C array rather than relying on Go's
// own append growth curve.
type SortedRun struct {
	data []int64
}

// NewSortedRun returns an empty SortedRun with capacity 4.
func NewSortedRun() *SortedRun {
	return &SortedRun{data: make([]int64, 0, 4)}
}

// Insert places v at the first index i with data[i] > v.
func (r *SortedRun) Insert(v int64) {
	i := sort.Search(len(r.data), func(i int) bool { return r.data[i] > v })

	if len(r.data) == cap(r.data) {
		grown := make([]int64, len(r.data), cap(r.data)*2)
		copy(grown, r.data)
		r.data = grown
	}

	r.data = r.data[:len(r.data)+1]
	copy(r.data[i+1:], r.data[i:len(r.data)-1])
	r.data[i] = v
}

// Len returns the number of integers currently held.
func (r *SortedRun) Len() int {
	return len(r.data)
}

// At returns the integer at index i in sorted order.
func (r *SortedRun) At(i int) int64 {
	return r.data[i]
}
