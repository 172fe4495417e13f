package queue

import (
	"github.com/huynhanx03/batchcollector/pkg/utils"
)

var _ Queue[int] = (*Ring[int])(nil)

const defaultRingCap = 16

// Ring is an unbounded FIFO queue backed by a circular slice.
// It grows when full and never rejects an Enqueue. It is NOT thread-safe.
type Ring[T any] struct {
	buf   []T
	mask  int // capacity - 1, capacity is a power of two
	head  int // next position to dequeue from
	count int
}

// NewRing creates a Ring with the given initial capacity.
// The capacity will be rounded up to the nearest power of two.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < defaultRingCap {
		capacity = defaultRingCap
	}
	capacity = utils.CeilToPowerOfTwo(capacity)
	return &Ring[T]{
		buf:  make([]T, capacity),
		mask: capacity - 1,
	}
}

// Enqueue appends item at the back, growing the buffer when full.
// It always returns true.
func (r *Ring[T]) Enqueue(item T) bool {
	if r.buf == nil {
		r.grow(defaultRingCap)
	} else if r.count == len(r.buf) {
		r.grow(len(r.buf) * 2)
	}

	r.buf[r.wrapIndex(r.head+r.count)] = item
	r.count++
	return true
}

// Dequeue removes the front item.
func (r *Ring[T]) Dequeue() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}

	item := r.buf[r.head]
	r.buf[r.head] = zero // release the reference
	r.head = r.wrapIndex(r.head + 1)
	r.count--
	return item, true
}

// Len returns the number of queued items.
func (r *Ring[T]) Len() int {
	return r.count
}

// IsEmpty reports whether the queue holds no items.
func (r *Ring[T]) IsEmpty() bool {
	return r.count == 0
}

// Reset drops every queued item and keeps the allocated buffer.
func (r *Ring[T]) Reset() {
	clear(r.buf)
	r.head = 0
	r.count = 0
}

func (r *Ring[T]) wrapIndex(idx int) int {
	return idx & r.mask
}

// grow moves the queued items into a buffer of at least minCap slots,
// unwrapping them so the front lands at index 0.
func (r *Ring[T]) grow(minCap int) {
	newCap := utils.CeilToPowerOfTwo(minCap)
	newBuf := make([]T, newCap)

	for i := 0; i < r.count; i++ {
		newBuf[i] = r.buf[r.wrapIndex(r.head+i)]
	}

	r.buf = newBuf
	r.mask = newCap - 1
	r.head = 0
}
