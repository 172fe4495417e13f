package utils

import (
	"math"
	"time"
)

// SecondsToDuration converts fractional seconds to a time.Duration,
// saturating at the representable range.
func SecondsToDuration(seconds float64) time.Duration {
	ns := seconds * float64(time.Second)
	switch {
	case math.IsNaN(ns):
		return 0
	case ns >= math.MaxInt64:
		return time.Duration(math.MaxInt64)
	case ns <= math.MinInt64:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(ns)
}

// ToDurationMs converts milliseconds to a time.Duration.
func ToDurationMs(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// ToDuration converts seconds to a time.Duration.
func ToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
