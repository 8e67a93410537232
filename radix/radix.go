// Package radix converts unsigned integers between positional notations with bases 2 to 36.
package radix

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MinBase is the smallest supported base.
	MinBase = 2
	// MaxBase is the largest supported base, digits are 0-9 and a-z.
	MaxBase = 36
	// Capacity is the maximum length of a conversion result.
	// Any 32-bit value fits it in every base.
	Capacity = 32

	digitSymbols = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var (
	// ErrBase is returned for a base outside of [MinBase, MaxBase].
	ErrBase = errors.New("base out of range")
	// ErrDigit is returned for a symbol which is not a digit in the input base.
	ErrDigit = errors.New("bad digit")
	// ErrOverflow is returned if the value does not fit 32 bits.
	ErrOverflow = errors.New("value out of range")
	// ErrEmpty is returned for an empty input.
	ErrEmpty = errors.New("empty input")
)

type digitError struct {
	pos    int
	symbol rune
	base   int
}

func (de digitError) Error() string {
	return fmt.Sprintf("unexpected symbol %q for base %d at pos %d", de.symbol, de.base, de.pos)
}

func (de digitError) Unwrap() error {
	return ErrDigit
}

// Convert converts 'digits' written in base 'from' into base 'to'.
// Input digits are case-insensitive, output uses lowercase letters.
// The value must fit 32 bits, so that the result never exceeds Capacity symbols.
func Convert(digits string, from, to int) (string, error) {
	if err := checkBase(from); err != nil {
		return "", err
	}
	if err := checkBase(to); err != nil {
		return "", err
	}
	v, err := parse(digits, from)
	if err != nil {
		return "", err
	}
	return format(v, to), nil
}

// MustConvert is like Convert, but panics on error.
func MustConvert(digits string, from, to int) string {
	s, err := Convert(digits, from, to)
	if err != nil {
		panic(err)
	}
	return s
}

func checkBase(base int) error {
	if base < MinBase || base > MaxBase {
		return fmt.Errorf("%w: %d", ErrBase, base)
	}
	return nil
}

func parse(digits string, base int) (uint64, error) {
	if len(digits) == 0 {
		return 0, ErrEmpty
	}
	var v uint64
	for i, r := range digits {
		d := digitValue(r)
		if d < 0 || d >= base {
			return 0, digitError{pos: i + 1, symbol: r, base: base}
		}
		v = v*uint64(base) + uint64(d)
		if v > math.MaxUint32 {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, digits)
		}
	}
	return v, nil
}

func digitValue(r rune) int {
	switch {
	case '0' <= r && r <= '9':
		return int(r - '0')
	case 'a' <= r && r <= 'z':
		return int(r-'a') + 10
	case 'A' <= r && r <= 'Z':
		return int(r-'A') + 10
	default:
		return -1
	}
}

func format(v uint64, base int) string {
	var buf [Capacity]byte
	n := len(buf)
	for {
		n--
		buf[n] = digitSymbols[v%uint64(base)]
		v /= uint64(base)
		if v == 0 {
			break
		}
	}
	return string(buf[n:])
}
