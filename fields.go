// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatbits

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	mu "github.com/avdva/floatbits/internal/mathutil"
)

// Fields is a value decomposed into IEEE-754 fields.
//
//	s|e       |f
//	0|10000010|01111111010111000010100   (11.98, Single)
//
// Exponent is stored biased, Fraction holds the bits after the implicit leading one.
type Fields struct {
	Precision Precision
	Sign      uint8
	Exponent  uint64
	Fraction  uint64
}

// Validate checks that 'bits' consists of '0' and '1' symbols only.
// All offending positions are reported, indices start from 1.
func Validate(bits string) error {
	var result *multierror.Error
	for i, r := range bits {
		if r != '0' && r != '1' {
			result = multierror.Append(result, newPosError(fmt.Sprintf("unexpected symbol %q", r), i+1))
		}
	}
	return result.ErrorOrNil()
}

// ParseFields splits a BitString into fields.
// A short input is padded with trailing zeros, a long one is truncated.
// Symbols other than '0' and '1' result in an error wrapping ErrMalformed.
func ParseFields(bits string, p Precision) (Fields, error) {
	if err := p.check(); err != nil {
		return Fields{}, err
	}
	if err := Validate(bits); err != nil {
		return Fields{}, fmt.Errorf("parsing failed: %w", err)
	}
	bits = mu.FitWidth(bits, p.Bits())
	expEnd := signBits + p.ExponentBits()
	return Fields{
		Precision: p,
		Sign:      uint8(mu.ParseBinary(bits[:signBits])),
		Exponent:  mu.ParseBinary(bits[signBits:expEnd]),
		Fraction:  mu.ParseBinary(bits[expEnd:]),
	}, nil
}

// String returns the BitString: sign, exponent and fraction, most significant bit first.
func (f Fields) String() string {
	var builder strings.Builder
	builder.Grow(f.Precision.Bits())
	builder.WriteString(mu.FormatBinary(uint64(f.Sign), signBits))
	builder.WriteString(mu.FormatBinary(f.Exponent, f.Precision.ExponentBits()))
	builder.WriteString(mu.FormatBinary(f.Fraction, f.Precision.FractionBits()))
	return builder.String()
}

// GoString returns debug string representation.
func (f Fields) GoString() string {
	return f.String() + fmt.Sprintf(" {%v, s=%d, e=%d, f=%#x}", f.Precision, f.Sign, f.Exponent, f.Fraction)
}

// Unbiased returns the true exponent E = e - bias.
// For zeros and subnormals the exponent is 1 - bias.
func (f Fields) Unbiased() int {
	if f.Exponent == 0 {
		return 1 - f.Precision.Bias()
	}
	return int(f.Exponent) - f.Precision.Bias()
}

// Neg returns true if the sign bit is set.
func (f Fields) Neg() bool {
	return f.Sign == 1
}

// IsZero returns true for both +0 and -0.
func (f Fields) IsZero() bool {
	return f.Exponent == 0 && f.Fraction == 0
}

// IsSubnormal returns true for a zero exponent and a non-zero fraction.
func (f Fields) IsSubnormal() bool {
	return f.Exponent == 0 && f.Fraction != 0
}

// IsNormal returns true if the exponent is neither all zeros nor all ones.
func (f Fields) IsNormal() bool {
	return f.Exponent != 0 && f.Exponent != f.Precision.MaxExponent()
}

// IsInf returns true for both infinities.
func (f Fields) IsInf() bool {
	return f.Exponent == f.Precision.MaxExponent() && f.Fraction == 0
}

// IsNaN returns true for an all-ones exponent and a non-zero fraction.
func (f Fields) IsNaN() bool {
	return f.Exponent == f.Precision.MaxExponent() && f.Fraction != 0
}
