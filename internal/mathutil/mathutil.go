package mathutil

import (
	"math/bits"
	"strings"
	"unsafe"
)

// Pow2 returns 2^pow.
// The result is exact for every pow in [-1074, 1023]; larger values overflow to +Inf
// and smaller ones underflow to zero.
func Pow2(pow int) float64 {
	base, result := 2.0, 1.0
	if pow < 0 {
		base, pow = 0.5, -pow
	}
	for pow > 0 {
		if pow&1 == 1 {
			result *= base
		}
		pow >>= 1
		if pow > 0 {
			base *= base
		}
	}
	return result
}

// BinaryDigits returns the number of binary digits needed to represent 'value'.
func BinaryDigits(value uint64) int {
	return int(8*unsafe.Sizeof(uint64(0))) - bits.LeadingZeros64(value)
}

// FormatBinary returns 'value' as a string of exactly 'width' binary digits,
// most significant first. Digits above 'width' are dropped.
func FormatBinary(value uint64, width int) string {
	if width <= 0 {
		return ""
	}
	digits := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		digits[i] = byte('0' + value%2)
		value /= 2
	}
	return string(digits)
}

// ParseBinary interprets 's' as an unsigned binary integer, most significant digit first.
// Any symbol other than '1' counts as zero.
func ParseBinary(s string) uint64 {
	var result uint64
	for i := 0; i < len(s); i++ {
		result *= 2
		if s[i] == '1' {
			result++
		}
	}
	return result
}

// FitWidth truncates 's' or pads it with trailing zeros to exactly 'width' symbols.
func FitWidth(s string, width int) string {
	switch {
	case len(s) == width:
		return s
	case len(s) > width:
		return s[:width]
	default:
		return s + strings.Repeat("0", width-len(s))
	}
}
