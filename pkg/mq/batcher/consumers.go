package batcher

import (
	"context"
	"time"
)

// Timeout bounds every Consume call of consumer by d.
// A non-positive d returns consumer unchanged.
func Timeout[T any](consumer Consumer[T], d time.Duration) Consumer[T] {
	if d <= 0 {
		return consumer
	}
	return ConsumerFunc[T](func(ctx context.Context, batch *Batch[T]) error {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return consumer.Consume(ctx, batch)
	})
}
