package batcher

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/huynhanx03/batchcollector/pkg/timer"
)

// Option configures a Collector.
type Option func(*options)

type options struct {
	name          string
	clock         timer.Clock
	ticks         timer.TickSource
	tickInterval  time.Duration
	logger        *zap.Logger
	meterProvider metric.MeterProvider
	ctx           context.Context
}

func defaultOptions() options {
	return options{
		clock:         timer.RealClock,
		tickInterval:  timer.DefaultTickInterval,
		logger:        zap.NewNop(),
		meterProvider: otel.GetMeterProvider(),
		ctx:           context.Background(),
	}
}

// WithName sets the instance name used in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithClock sets the clock used for the rate limit, the staleness timer and
// the default tick source.
func WithClock(clock timer.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithTickSource replaces the default ticker. The collector stops it on Destroy.
func WithTickSource(ticks timer.TickSource) Option {
	return func(o *options) {
		o.ticks = ticks
	}
}

// WithTickInterval sets the period of the default ticker.
func WithTickInterval(d time.Duration) Option {
	return func(o *options) {
		o.tickInterval = d
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMeterProvider sets the provider of the collector's instruments.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}

// WithContext sets the context handed to the Consumer.
// It is not cancelled by Destroy.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}
