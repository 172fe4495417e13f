package batcher

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"
)

const (
	meterName = "github.com/huynhanx03/batchcollector/pkg/mq/batcher"

	itemsPushedName       = "batcher.items.pushed"
	batchesQueuedName     = "batcher.batches.queued"
	batchesDispatchedName = "batcher.batches.dispatched"
	consumeErrorsName     = "batcher.consume.errors"
	queueDepthName        = "batcher.queue.depth"
)

type metrics struct {
	itemsPushed       metric.Int64Counter
	batchesQueued     metric.Int64Counter
	batchesDispatched metric.Int64Counter
	consumeErrors     metric.Int64Counter
	queueDepth        metric.Int64UpDownCounter

	attrs  metric.MeasurementOption
	forced metric.MeasurementOption
	paced  metric.MeasurementOption
}

func newMetrics(mp metric.MeterProvider, collector string) (*metrics, error) {
	meter := mp.Meter(meterName)
	m := &metrics{}

	var err, e error
	m.itemsPushed, e = meter.Int64Counter(itemsPushedName,
		metric.WithDescription("Items pushed into the collector"))
	err = multierr.Append(err, e)
	m.batchesQueued, e = meter.Int64Counter(batchesQueuedName,
		metric.WithDescription("Batches moved into the posting queue"))
	err = multierr.Append(err, e)
	m.batchesDispatched, e = meter.Int64Counter(batchesDispatchedName,
		metric.WithDescription("Batches handed to the consumer"))
	err = multierr.Append(err, e)
	m.consumeErrors, e = meter.Int64Counter(consumeErrorsName,
		metric.WithDescription("Consumer invocations that returned an error or panicked"))
	err = multierr.Append(err, e)
	m.queueDepth, e = meter.Int64UpDownCounter(queueDepthName,
		metric.WithDescription("Batches waiting in the posting queue"))
	err = multierr.Append(err, e)
	if err != nil {
		return nil, err
	}

	base := attribute.String("collector", collector)
	m.attrs = metric.WithAttributes(base)
	m.forced = metric.WithAttributes(base, attribute.Bool("forced", true))
	m.paced = metric.WithAttributes(base, attribute.Bool("forced", false))
	return m, nil
}

func (m *metrics) pushed(n int) {
	m.itemsPushed.Add(context.Background(), int64(n), m.attrs)
}

func (m *metrics) queued() {
	ctx := context.Background()
	m.batchesQueued.Add(ctx, 1, m.attrs)
	m.queueDepth.Add(ctx, 1, m.attrs)
}

func (m *metrics) dequeued() {
	m.queueDepth.Add(context.Background(), -1, m.attrs)
}

func (m *metrics) discarded(n int) {
	if n > 0 {
		m.queueDepth.Add(context.Background(), -int64(n), m.attrs)
	}
}

func (m *metrics) dispatched(forced bool) {
	opt := m.paced
	if forced {
		opt = m.forced
	}
	m.batchesDispatched.Add(context.Background(), 1, opt)
}

func (m *metrics) consumeFailed() {
	m.consumeErrors.Add(context.Background(), 1, m.attrs)
}
