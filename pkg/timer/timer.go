package timer

import (
	"time"

	"github.com/zoobzio/clockz"
)

// Clock provides wall-clock reads and timer scheduling.
type Clock = clockz.Clock

// RealClock is the default Clock using standard time.
var RealClock Clock = clockz.RealClock

// TickSource delivers a repeating "a tick occurred" notification.
// clockz.Ticker satisfies it.
type TickSource interface {
	C() <-chan time.Time
	Stop()
}

// DefaultTickInterval approximates one frame at 60 Hz.
const DefaultTickInterval = time.Second / 60

// NewTicker creates a TickSource firing every interval on clock.
// A non-positive interval falls back to DefaultTickInterval.
func NewTicker(clock Clock, interval time.Duration) TickSource {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return clock.NewTicker(interval)
}
