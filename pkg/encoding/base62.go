package encoding

import (
	"errors"
	"math"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	base     = 62

	// Base62Width is the length of the widest encoded uint64.
	Base62Width = 11
)

var ErrInvalidBase62 = errors.New("invalid base62 string")

var decodeTable = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = int8(i)
	}
	return t
}()

// EncodeBase62 converts n to its shortest base62 form.
func EncodeBase62(n uint64) string {
	var chars [Base62Width]byte
	k := encodeInto(&chars, n)
	return string(chars[k:])
}

// EncodeBase62Fixed converts n to a zero-padded base62 string of Base62Width
// characters. Byte order of the results matches numeric order.
func EncodeBase62Fixed(n uint64) string {
	var chars [Base62Width]byte
	k := encodeInto(&chars, n)
	for i := 0; i < k; i++ {
		chars[i] = alphabet[0]
	}
	return string(chars[:])
}

func encodeInto(chars *[Base62Width]byte, n uint64) int {
	k := Base62Width
	for {
		k--
		chars[k] = alphabet[n%base]
		n /= base
		if n == 0 {
			return k
		}
	}
}

// DecodeBase62 converts a base62 string, padded or not, back to an integer.
func DecodeBase62(s string) (uint64, error) {
	if s == "" || len(s) > Base62Width {
		return 0, ErrInvalidBase62
	}

	var n uint64
	for i := 0; i < len(s); i++ {
		d := decodeTable[s[i]]
		if d < 0 {
			return 0, ErrInvalidBase62
		}
		if n > (math.MaxUint64-uint64(d))/base {
			return 0, ErrInvalidBase62
		}
		n = n*base + uint64(d)
	}
	return n, nil
}
