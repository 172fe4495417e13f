package timer

import (
	"time"

	"github.com/zoobzio/clockz"
)

// State is the run state of a Countdown.
type State int

const (
	NotRunning State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "not_running"
}

// Countdown is a restartable single-shot timer.
//
// Every method must be called from a single owner goroutine. Each run gets
// its own timer, so C only ever delivers the expiry of the current run: a run
// that was stopped or replaced can never be observed. After receiving from C
// the owner calls Expire to move the countdown back to NotRunning.
type Countdown struct {
	clock    clockz.Clock
	duration time.Duration

	state State
	timer clockz.Timer
}

// NewCountdown creates a stopped countdown of the given duration.
func NewCountdown(clock clockz.Clock, duration time.Duration) *Countdown {
	if clock == nil {
		clock = RealClock
	}
	return &Countdown{
		clock:    clock,
		duration: duration,
	}
}

// Duration returns the configured run length.
func (c *Countdown) Duration() time.Duration {
	return c.duration
}

// State returns the current run state.
func (c *Countdown) State() State {
	return c.state
}

// Start begins a run. No-op if already running.
func (c *Countdown) Start() {
	if c.state == Running {
		return
	}

	c.timer = c.clock.NewTimer(c.duration)
	c.state = Running
}

// Stop cancels the current run. No-op if not running.
func (c *Countdown) Stop() {
	if c.state != Running {
		return
	}

	c.timer.Stop()
	c.timer = nil
	c.state = NotRunning
}

// C delivers the expiry of the current run. It is nil while not running,
// which blocks forever in a select.
func (c *Countdown) C() <-chan time.Time {
	if c.timer == nil {
		return nil
	}
	return c.timer.C()
}

// Expire acknowledges the expiry received from C and moves the countdown to
// NotRunning. It returns false when no run is in progress.
func (c *Countdown) Expire() bool {
	if c.state != Running {
		return false
	}

	c.timer = nil
	c.state = NotRunning
	return true
}

// Close stops the countdown.
func (c *Countdown) Close() error {
	c.Stop()
	return nil
}
