package batcher

import (
	"go.uber.org/zap"
)

// postInBackground records the post time and starts the consumer on its own
// goroutine. Consumers start in the order their batches were posted, but
// never wait for one another to finish.
func (c *Collector[T]) postInBackground(batch *Batch[T], forced bool) {
	if batch.IsEmpty() {
		c.logger.Warn("attempt to send empty batch", zap.Stack("stack"))
		return
	}

	c.lastPost = c.clock.Now()
	c.metrics.dispatched(forced)

	prev := c.lastStarted
	started := make(chan struct{})
	c.lastStarted = started

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		if prev != nil {
			<-prev
		}
		close(started)
		c.consume(batch, forced)
	}()
}

// consume runs the consumer. Errors and panics are logged and otherwise
// ignored; the collector never observes the outcome.
func (c *Collector[T]) consume(batch *Batch[T], forced bool) {
	size := batch.Len()

	defer func() {
		if r := recover(); r != nil {
			c.metrics.consumeFailed()
			c.logger.Error("batch consumer panicked",
				zap.Any("panic", r),
				zap.Int("batch_size", size),
				zap.Stack("stack"),
			)
		}
	}()

	if err := c.consumer.Consume(c.opts.ctx, batch); err != nil {
		c.metrics.consumeFailed()
		c.logger.Warn("batch consumer failed",
			zap.Error(err),
			zap.Int("batch_size", size),
			zap.Bool("forced", forced),
		)
		return
	}

	c.logger.Debug("batch posted", zap.Int("batch_size", size), zap.Bool("forced", forced))
}
