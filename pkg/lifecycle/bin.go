// Package lifecycle tracks resources that must be released together, once.
package lifecycle

import (
	"io"
	"sync"

	"go.uber.org/multierr"
)

// Bin collects release functions for subscriptions, timers and other
// resources owned by a component.
type Bin struct {
	mu        sync.Mutex
	releasers []func() error
	destroyed bool
}

// Add registers fn to run on Destroy. If the bin is already destroyed, fn runs
// immediately and its error is returned.
func (b *Bin) Add(fn func() error) error {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return fn()
	}
	b.releasers = append(b.releasers, fn)
	b.mu.Unlock()
	return nil
}

// AddCloser registers c.Close.
func (b *Bin) AddCloser(c io.Closer) error {
	return b.Add(c.Close)
}

// AddFunc registers a release function that cannot fail.
func (b *Bin) AddFunc(fn func()) error {
	return b.Add(func() error {
		fn()
		return nil
	})
}

// Destroy runs every registered release function in reverse order of
// registration and returns their combined error. Only the first call does
// any work; later calls return nil.
func (b *Bin) Destroy() error {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return nil
	}
	b.destroyed = true
	releasers := b.releasers
	b.releasers = nil
	b.mu.Unlock()

	var err error
	for i := len(releasers) - 1; i >= 0; i-- {
		err = multierr.Append(err, releasers[i]())
	}
	return err
}

// IsDestroyed reports whether Destroy has been called.
func (b *Bin) IsDestroyed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.destroyed
}
