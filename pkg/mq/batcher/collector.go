package batcher

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/batchcollector/pkg/datastructs/queue"
	"github.com/huynhanx03/batchcollector/pkg/lifecycle"
	"github.com/huynhanx03/batchcollector/pkg/timer"
)

var _ BatchCollector[int] = (*Collector[int])(nil)

// Stats is a point-in-time view of a Collector.
type Stats struct {
	CurrentBatchSize int       `json:"current_batch_size"`
	QueuedBatches    int       `json:"queued_batches"`
	LastPostAt       time.Time `json:"last_post_at"`
}

// Collector accumulates items into batches of at most MaxNumberOfItems and
// hands them to a Consumer.
//
// Behavior:
//   - A batch that fills up is queued. A batch that stays under-full for
//     MaxTimeBetweenPosts after its first item is queued as well.
//   - On every tick, at most one queued batch is posted, and only when
//     MinTimeBetweenPosts has elapsed since the previous post.
//   - ForcePostCurrentBatch and ForcePostRemainingBatches bypass the pacing.
//   - Posting is fire-and-forget: the Consumer runs on its own goroutine and
//     its outcome never affects batching.
//
// All state is owned by a single event loop goroutine. Public methods are
// safe for concurrent use; they are serialized through that loop.
type Collector[T any] struct {
	name     string
	consumer Consumer[T]
	cfg      RateLimitingConfiguration
	opts     options
	logger   *zap.Logger
	metrics  *metrics

	clock     timer.Clock
	ticks     timer.TickSource
	staleness *timer.Countdown

	// Owned by the event loop.
	current      *Batch[T]
	postingQueue queue.Queue[*Batch[T]]
	lastPost     time.Time
	lastStarted  <-chan struct{}

	inflight  sync.WaitGroup
	ops       chan func()
	stop      chan struct{}
	exited    chan struct{}
	bin       lifecycle.Bin
	destroyed atomic.Bool
}

// New creates a Collector that posts batches to consumer according to cfg.
// It subscribes to the tick source and the staleness timer immediately;
// call Destroy to release them.
func New[T any](consumer Consumer[T], cfg RateLimitingConfiguration, opts ...Option) (*Collector[T], error) {
	if consumer == nil {
		return nil, ErrNilConsumer
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Collector[T]{
		consumer:     consumer,
		cfg:          cfg,
		opts:         o,
		clock:        o.clock,
		current:      &Batch[T]{},
		postingQueue: queue.NewRing[*Batch[T]](0),
		ops:          make(chan func()),
		stop:         make(chan struct{}),
		exited:       make(chan struct{}),
	}

	c.name = o.name
	if c.name == "" {
		c.name = fmt.Sprintf("%T@%p", c, c)
	}
	c.logger = o.logger.With(zap.String("collector", c.name))

	m, err := newMetrics(o.meterProvider, c.name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create collector metrics")
	}
	c.metrics = m

	c.ticks = o.ticks
	if c.ticks == nil {
		c.ticks = timer.NewTicker(c.clock, o.tickInterval)
	}
	c.staleness = timer.NewCountdown(c.clock, cfg.MaxTimeBetweenPosts)

	// Released in reverse order: loop first, then the subscriptions it reads.
	_ = c.bin.AddFunc(c.ticks.Stop)
	_ = c.bin.AddCloser(c.staleness)
	_ = c.bin.AddFunc(func() {
		close(c.stop)
		<-c.exited
	})

	go c.run()

	return c, nil
}

// Name returns the instance name used in diagnostics.
func (c *Collector[T]) Name() string {
	return c.name
}

// PushItems appends items, in order, to the current batch. Each time the
// batch reaches MaxNumberOfItems it is queued and a new batch is started, so
// one call may queue any number of batches.
func (c *Collector[T]) PushItems(items ...T) error {
	return c.do(func() {
		for _, item := range items {
			c.pushSingleItem(item)
		}
		c.metrics.pushed(len(items))
	})
}

// ForcePostCurrentBatch posts the current batch immediately, ahead of the
// queued batches and regardless of MinTimeBetweenPosts. An empty current
// batch is reported with a warning and nothing is posted.
func (c *Collector[T]) ForcePostCurrentBatch() error {
	return c.do(func() {
		if c.current.IsEmpty() {
			c.logger.Warn("attempt to post empty batch", zap.Stack("stack"))
			return
		}

		c.postInBackground(c.detachCurrentBatch(), true)
	})
}

// ForcePostRemainingBatches queues the current batch, if any, and then posts
// every queued batch immediately in queue order.
func (c *Collector[T]) ForcePostRemainingBatches() error {
	return c.do(func() {
		if !c.current.IsEmpty() {
			c.queueCurrentBatch()
		}

		for {
			batch, ok := c.postingQueue.Dequeue()
			if !ok {
				return
			}
			c.metrics.dequeued()
			c.postInBackground(batch, true)
		}
	})
}

// IsCurrentBatchEmpty reports whether the batch being put together is empty.
func (c *Collector[T]) IsCurrentBatchEmpty() (bool, error) {
	var empty bool
	err := c.do(func() {
		empty = c.current.IsEmpty()
	})
	return empty, err
}

// IsPostingQueueEmpty reports whether no prepared batch is waiting to be posted.
func (c *Collector[T]) IsPostingQueueEmpty() (bool, error) {
	var empty bool
	err := c.do(func() {
		empty = c.postingQueue.IsEmpty()
	})
	return empty, err
}

// Stats returns the size of the current batch, the number of queued batches
// and the time of the last post.
func (c *Collector[T]) Stats() (Stats, error) {
	var s Stats
	err := c.do(func() {
		s = Stats{
			CurrentBatchSize: c.current.Len(),
			QueuedBatches:    c.postingQueue.Len(),
			LastPostAt:       c.lastPost,
		}
	})
	return s, err
}

// Destroy stops the collector. The current batch and every queued batch are
// dropped without being posted; consumers already started keep running.
// Calling Destroy again only logs a warning.
func (c *Collector[T]) Destroy() {
	if !c.destroyed.CompareAndSwap(false, true) {
		c.logger.Warn("collector is already destroyed", zap.Stack("stack"))
		return
	}

	if err := c.bin.Destroy(); err != nil {
		c.logger.Warn("failed to release collector resources", zap.Error(err))
	}

	// The loop has exited; nothing else touches the batches now.
	c.metrics.discarded(c.postingQueue.Len())
	c.current = &Batch[T]{}
	c.postingQueue.Reset()
}

// Wait blocks until every consumer started before Destroy has returned, or
// until ctx is done. It returns ErrNotDestroyed if Destroy has not been
// called, since a live collector keeps starting consumers.
func (c *Collector[T]) Wait(ctx context.Context) error {
	if !c.destroyed.Load() {
		return ErrNotDestroyed
	}

	// Destroy may still be stopping the loop on another goroutine.
	select {
	case <-c.exited:
	case <-ctx.Done():
		return ctx.Err()
	}

	done := make(chan struct{})
	go func() {
		c.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// do runs op on the event loop and waits for it to finish.
func (c *Collector[T]) do(op func()) error {
	if c.destroyed.Load() {
		return ErrDestroyed
	}

	done := make(chan struct{})
	select {
	case c.ops <- func() {
		defer close(done)
		op()
	}:
	case <-c.stop:
		return ErrDestroyed
	}

	<-done
	return nil
}

// run is the event loop. Every state transition happens here, one event at
// a time.
func (c *Collector[T]) run() {
	defer close(c.exited)

	for {
		select {
		case <-c.stop:
			return
		case <-c.staleness.C():
			c.expireStaleness()
		case op := <-c.ops:
			c.pollStaleness()
			op()
		case <-c.ticks.C():
			c.pollStaleness()
			c.onTick()
		}
	}
}

// pollStaleness handles a staleness expiry that is already pending, so an
// operation never sees a batch older than its deadline.
func (c *Collector[T]) pollStaleness() {
	select {
	case <-c.staleness.C():
		c.expireStaleness()
	default:
	}
}

func (c *Collector[T]) expireStaleness() {
	if c.staleness.Expire() {
		c.onStalenessExpired()
	}
}

func (c *Collector[T]) pushSingleItem(item T) {
	c.current.PushBack(item)

	if c.current.Len() == c.cfg.MaxNumberOfItems {
		c.queueCurrentBatch()
		return
	}

	// Start is a no-op while running, so the deadline stays anchored to the
	// first item of the batch.
	c.staleness.Start()
}

// onStalenessExpired queues the under-full current batch.
func (c *Collector[T]) onStalenessExpired() {
	if c.current.IsEmpty() {
		c.logger.Debug("staleness timer expired on empty batch")
		return
	}
	c.queueCurrentBatch()
}

// onTick posts the front of the queue when the minimum spacing allows it.
func (c *Collector[T]) onTick() {
	if c.postingQueue.IsEmpty() {
		return
	}

	if spacing, ok := c.cfg.minSpacing(); ok && !c.lastPost.IsZero() {
		if c.clock.Now().Sub(c.lastPost) < spacing {
			return
		}
	}

	batch, ok := c.postingQueue.Dequeue()
	if !ok {
		return
	}
	c.metrics.dequeued()
	c.postInBackground(batch, false)
}

func (c *Collector[T]) queueCurrentBatch() {
	if c.current.IsEmpty() {
		c.logger.Warn("attempt to queue empty batch", zap.Stack("stack"))
		return
	}

	c.postingQueue.Enqueue(c.detachCurrentBatch())
	c.metrics.queued()
}

// detachCurrentBatch hands the current batch over to the caller and starts
// a fresh one. The staleness timer belongs to the detached batch and is stopped.
func (c *Collector[T]) detachCurrentBatch() *Batch[T] {
	batch := c.current
	c.current = &Batch[T]{}
	c.staleness.Stop()
	return batch
}
