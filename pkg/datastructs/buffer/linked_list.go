package buffer

import "iter"

// node represents a single node in the linked list.
type node[T any] struct {
	value T
	next  *node[T]
}

// LinkedList is a singly linked list of values with O(1) append at the tail.
// It preserves insertion order and is NOT thread-safe.
type LinkedList[T any] struct {
	head  *node[T]
	tail  *node[T]
	count int
}

// NewLinkedList creates a list holding values in order.
func NewLinkedList[T any](values ...T) *LinkedList[T] {
	ll := &LinkedList[T]{}
	for _, v := range values {
		ll.PushBack(v)
	}
	return ll
}

// PushBack appends v to the tail.
func (ll *LinkedList[T]) PushBack(v T) {
	ll.pushBack(&node[T]{value: v})
}

// Front returns the head value without removing it.
func (ll *LinkedList[T]) Front() (T, bool) {
	if ll.head == nil {
		var zero T
		return zero, false
	}
	return ll.head.value, true
}

// Back returns the tail value without removing it.
func (ll *LinkedList[T]) Back() (T, bool) {
	if ll.tail == nil {
		var zero T
		return zero, false
	}
	return ll.tail.value, true
}

// Len returns the number of values in the list.
func (ll *LinkedList[T]) Len() int {
	return ll.count
}

// IsEmpty returns true if the list contains no values.
func (ll *LinkedList[T]) IsEmpty() bool {
	return ll.head == nil
}

// All returns a forward iterator over (index, value) pairs, head first.
func (ll *LinkedList[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for current := ll.head; current != nil; current = current.next {
			if !yield(i, current.value) {
				return
			}
			i++
		}
	}
}

// Values copies the list into a new slice, head first.
func (ll *LinkedList[T]) Values() []T {
	out := make([]T, 0, ll.count)
	for current := ll.head; current != nil; current = current.next {
		out = append(out, current.value)
	}
	return out
}

// pushBack adds a node to the tail of the list.
func (ll *LinkedList[T]) pushBack(n *node[T]) {
	if ll.tail == nil {
		ll.head = n
	} else {
		ll.tail.next = n
	}

	n.next = nil
	ll.tail = n
	ll.count++
}
