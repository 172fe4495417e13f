package batcher

import "errors"

var (
	// ErrDestroyed is returned by every operation on a destroyed collector.
	ErrDestroyed = errors.New("batch collector is destroyed")

	// ErrNotDestroyed is returned by Wait on a collector that is still live.
	ErrNotDestroyed = errors.New("batch collector is not destroyed")

	// ErrInvalidConfiguration is returned by New for an unusable
	// rate limiting configuration.
	ErrInvalidConfiguration = errors.New("invalid rate limiting configuration")

	// ErrNilConsumer is returned by New when no consumer is given.
	ErrNilConsumer = errors.New("batch consumer is nil")
)
