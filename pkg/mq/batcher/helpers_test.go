package batcher

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const (
	waitFor = 2 * time.Second
	pollInt = 5 * time.Millisecond
)

// manualTicker is a TickSource driven by the test.
type manualTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func newManualTicker() *manualTicker {
	return &manualTicker{ch: make(chan time.Time)}
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }

func (m *manualTicker) Stop() { m.stopped.Store(true) }

// recordingConsumer records every batch it receives, in call order.
type recordingConsumer[T any] struct {
	mu      sync.Mutex
	batches [][]T
	calls   atomic.Int32
	err     error
	onCall  func(call int32, batch []T)
}

func (r *recordingConsumer[T]) Consume(_ context.Context, batch *Batch[T]) error {
	values := batch.Values()
	call := r.calls.Add(1)

	r.mu.Lock()
	r.batches = append(r.batches, values)
	r.mu.Unlock()

	if r.onCall != nil {
		r.onCall(call, values)
	}
	return r.err
}

func (r *recordingConsumer[T]) snapshot() [][]T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]T, len(r.batches))
	copy(out, r.batches)
	return out
}

// waitForBatches blocks until the consumer has been called n times.
func (r *recordingConsumer[T]) waitForBatches(t *testing.T, n int) [][]T {
	t.Helper()
	require.Eventually(t, func() bool {
		return int(r.calls.Load()) >= n
	}, waitFor, pollInt, "expected %d consumer calls", n)
	return r.snapshot()
}

// harness bundles a collector with its fake time sources.
type harness struct {
	clock  *clockz.FakeClock
	ticks  *manualTicker
	logs   *observer.ObservedLogs
	reader *sdkmetric.ManualReader
}

func newHarness() *harness {
	return &harness{
		clock:  clockz.NewFakeClock(),
		ticks:  newManualTicker(),
		reader: sdkmetric.NewManualReader(),
	}
}

func (h *harness) options(extra ...Option) []Option {
	core, logs := observer.New(zap.DebugLevel)
	h.logs = logs
	opts := []Option{
		WithName("test-collector"),
		WithClock(h.clock),
		WithTickSource(h.ticks),
		WithLogger(zap.New(core)),
		WithMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(h.reader))),
	}
	return append(opts, extra...)
}

// tick fires one tick and waits until the collector has handled it.
func tick[T any](t *testing.T, h *harness, c *Collector[T]) {
	t.Helper()
	select {
	case h.ticks.ch <- h.clock.Now():
	case <-time.After(waitFor):
		t.Fatal("collector did not accept tick")
	}
	// Any operation runs after the tick handler has returned.
	_, err := c.Stats()
	require.NoError(t, err)
}

// advance moves the fake clock and delivers the timer and ticker sends it queued.
func advance(h *harness, d time.Duration) {
	h.clock.Advance(d)
	h.clock.BlockUntilReady()
}

func mustStats[T any](t *testing.T, c *Collector[T]) Stats {
	t.Helper()
	s, err := c.Stats()
	require.NoError(t, err)
	return s
}

func generateGUIDs(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = uuid.NewString()
	}
	return out
}

func sumInt64(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func defaultConfiguration() RateLimitingConfiguration {
	return NewRateLimitingConfiguration(100, 10).WithMinTimeBetweenPosts(1)
}
