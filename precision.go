// Copyright 2020 Aleksandr Demakin. All rights reserved.

// package floatbits converts IEEE-754 binary floating-point values to and from
// their bit strings, like "01000001001111111010111000010100" for float32(11.98).
//
// There are two independent strategies for the same contract.
// The direct one reads sign, exponent and fraction from the value's memory,
// the arithmetic one derives them from the numeric value by expanding it into binary digits.
// Both agree bit-for-bit on all normalized finite values.
package floatbits

import (
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Precision selects an IEEE-754 binary interchange format.
type Precision uint8

const (
	// Half is binary16: 1 sign bit, 5 exponent bits, 10 fraction bits.
	Half Precision = iota + 1
	// Single is binary32 (float32): 1 sign bit, 8 exponent bits, 23 fraction bits.
	Single
	// Double is binary64 (float64): 1 sign bit, 11 exponent bits, 52 fraction bits.
	Double
)

const signBits = 1

type layout struct {
	name     string
	total    int
	expBits  int
	fracBits int
}

var layouts = [...]layout{
	Half:   {name: "half", total: 16, expBits: 5, fracBits: 10},
	Single: {name: "single", total: 32, expBits: 8, fracBits: 23},
	Double: {name: "double", total: 64, expBits: 11, fracBits: 52},
}

// ParsePrecision accepts a precision name ("half", "single", "double")
// or its total width ("16", "32", "64").
func ParsePrecision(s string) (Precision, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p := Half; p <= Double; p++ {
		l := layouts[p]
		if s == l.name || s == fmt.Sprintf("%d", l.total) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrPrecision, s)
}

// PrecisionOf returns the precision matching the size of T.
func PrecisionOf[T constraints.Float]() Precision {
	var v T
	if unsafe.Sizeof(v) == 4 {
		return Single
	}
	return Double
}

// Valid returns true for Half, Single and Double.
func (p Precision) Valid() bool {
	return p >= Half && p <= Double
}

func (p Precision) layout() layout {
	if !p.Valid() {
		panic(fmt.Sprintf("floatbits: invalid precision %d", p))
	}
	return layouts[p]
}

// Bits returns the total width of a BitString for p.
func (p Precision) Bits() int {
	return p.layout().total
}

// Bytes returns the storage size of a value of precision p.
func (p Precision) Bytes() int {
	return p.layout().total / 8
}

// ExponentBits returns the width of the exponent field.
func (p Precision) ExponentBits() int {
	return p.layout().expBits
}

// FractionBits returns the width of the fraction field.
func (p Precision) FractionBits() int {
	return p.layout().fracBits
}

// Bias returns 2^(ExponentBits-1) - 1.
func (p Precision) Bias() int {
	return 1<<(p.ExponentBits()-1) - 1
}

// MaxExponent returns the all-ones biased exponent, reserved for infinities and NaNs.
func (p Precision) MaxExponent() uint64 {
	return 1<<p.ExponentBits() - 1
}

// String returns the precision name.
func (p Precision) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Precision(%d)", uint8(p))
	}
	return layouts[p].name
}

// MarshalText implements encoding.TextMarshaler.
func (p Precision) MarshalText() ([]byte, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, see ParsePrecision.
func (p *Precision) UnmarshalText(data []byte) error {
	parsed, err := ParsePrecision(string(data))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Precision) check() error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrPrecision, uint8(p))
	}
	return nil
}
