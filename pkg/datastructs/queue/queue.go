package queue

// Queue is a generic interface for FIFO queues.
type Queue[T any] interface {
	// Enqueue adds an item to the back of the queue.
	// Returns true if successful, false if the queue is full.
	Enqueue(item T) bool

	// Dequeue removes and returns the item at the front of the queue.
	// Returns (item, true) if successful, (zero, false) if the queue is empty.
	Dequeue() (T, bool)

	// Len returns the number of queued items.
	Len() int

	// IsEmpty reports whether the queue holds no items.
	IsEmpty() bool

	// Reset drops every queued item.
	Reset()
}
