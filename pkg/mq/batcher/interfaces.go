package batcher

import (
	"context"

	"github.com/huynhanx03/batchcollector/pkg/datastructs/buffer"
)

// Batch is an ordered group of items delivered to the Consumer as one unit.
type Batch[T any] = buffer.LinkedList[T]

// Consumer is the interface that must be implemented by users of the Collector.
// It is responsible for processing a batch of items.
type Consumer[T any] interface {
	// Consume processes a batch of items. It is called at most once per
	// batch, never with an empty batch, and on its own goroutine.
	// A returned error is logged; the batch is not retried.
	Consume(ctx context.Context, batch *Batch[T]) error
}

// ConsumerFunc adapts a plain callback to the Consumer interface.
type ConsumerFunc[T any] func(ctx context.Context, batch *Batch[T]) error

// Consume calls f(ctx, batch).
func (f ConsumerFunc[T]) Consume(ctx context.Context, batch *Batch[T]) error {
	return f(ctx, batch)
}

// BatchCollector puts items into batches and queues full batches for
// rate-limited posting.
type BatchCollector[T any] interface {
	// PushItems appends items to the current batch. Whenever the batch fills
	// up it is queued and the remaining items overflow into a new batch.
	PushItems(items ...T) error

	// ForcePostCurrentBatch posts the current batch right away, ahead of
	// any batch already in the queue.
	ForcePostCurrentBatch() error

	// ForcePostRemainingBatches posts every queued batch and then the
	// current one right away, in queue order.
	ForcePostRemainingBatches() error

	// IsCurrentBatchEmpty reports whether the batch being put together is empty.
	IsCurrentBatchEmpty() (bool, error)

	// IsPostingQueueEmpty reports whether no prepared batch is waiting to be posted.
	IsPostingQueueEmpty() (bool, error)

	// Stats returns a snapshot of the collector state.
	Stats() (Stats, error)

	// Destroy drops the current batch and every queued batch without
	// posting them. Further calls to other methods return ErrDestroyed.
	Destroy()
}
