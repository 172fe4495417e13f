package utils

import "math/bits"

// CeilToPowerOfTwo returns the smallest power of two that is >= n.
// Values below 2 round up to 2.
func CeilToPowerOfTwo(n int) int {
	if n <= 2 {
		return 2
	}
	if n > 1<<(bits.UintSize-2) {
		panic("argument is too large")
	}
	return 1 << bits.Len(uint(n-1))
}
