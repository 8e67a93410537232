// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatbits

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/x448/float16"
	"golang.org/x/exp/constraints"

	mu "github.com/avdva/floatbits/internal/mathutil"
)

// Rounding defines how the arithmetic encoder drops fraction bits
// that do not fit the target precision.
type Rounding uint8

const (
	// Truncate drops excess bits.
	Truncate Rounding = iota
	// NearestEven rounds to the nearest representable value, ties to even, as IEEE-754 does.
	NearestEven
)

// ParseRounding accepts "truncate" or "even".
func ParseRounding(s string) (Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "truncate", "trunc":
		return Truncate, nil
	case "even", "nearest-even", "nearesteven":
		return NearestEven, nil
	default:
		return 0, fmt.Errorf("unknown rounding %q", s)
	}
}

// String returns the rounding name.
func (r Rounding) String() string {
	switch r {
	case Truncate:
		return "truncate"
	case NearestEven:
		return "even"
	default:
		return fmt.Sprintf("Rounding(%d)", uint8(r))
	}
}

type options struct {
	rounding Rounding
}

// Option configures the arithmetic encoder.
type Option func(*options)

// WithRounding sets the rounding mode. The default is Truncate.
func WithRounding(r Rounding) Option {
	return func(o *options) {
		o.rounding = r
	}
}

// EncodeArithmetic computes the BitString of v from its numeric value only,
// by expanding it into binary digits and normalizing the exponent.
// The result is 32 symbols long for float32 and 64 for float64.
// Zeros are encoded with all-zero exponent and fraction.
// Values outside of the normalized range result in ErrRange, infinities and NaNs in ErrNotFinite.
func EncodeArithmetic[T constraints.Float](v T, opts ...Option) (string, error) {
	return EncodeArithmeticAs(float64(v), PrecisionOf[T](), opts...)
}

// EncodeArithmeticHalf is EncodeArithmetic for binary16 values.
func EncodeArithmeticHalf(v float16.Float16, opts ...Option) (string, error) {
	return EncodeArithmeticAs(float64(v.Float32()), Half, opts...)
}

// EncodeArithmeticAs encodes v with precision p.
// If v has more significant bits than p can hold, they are
// truncated or rounded according to the Rounding option.
func EncodeArithmeticAs(v float64, p Precision, opts ...Option) (string, error) {
	if err := p.check(); err != nil {
		return "", err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("%w: %v", ErrNotFinite, v)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	sign := "0"
	if negative(v) {
		sign, v = "1", -v
	}
	if v == 0 {
		return sign + strings.Repeat("0", p.ExponentBits()+p.FractionBits()), nil
	}

	intPart, fracPart := math.Modf(v)
	intDigits := integerDigits(intPart)
	// significant bits after the leading one: the fraction field plus a guard bit.
	need, found := p.FractionBits()+1, len(intDigits) > 0
	if found {
		need -= len(intDigits) - 1
	}
	fracDigits, sticky := fractionDigits(fracPart, need, found)

	var e int
	var stream []byte
	if pos := bytes.IndexByte(intDigits, '1'); pos >= 0 {
		e = len(intDigits) - pos - 1
		stream = append(intDigits[pos+1:], fracDigits...)
	} else {
		pos = bytes.IndexByte(fracDigits, '1')
		e = -(pos + 1)
		stream = fracDigits[pos+1:]
	}

	mant := stream
	if fracBits := p.FractionBits(); len(stream) > fracBits {
		mant = stream[:fracBits]
		if o.rounding == NearestEven && roundUp(mant, stream[fracBits:], sticky) {
			if increment(mant) {
				e++
			}
		}
	}

	biased := e + p.Bias()
	if biased <= 0 || uint64(biased) >= p.MaxExponent() {
		return "", fmt.Errorf("%w: %v needs exponent %d, %v allows [%d, %d]",
			ErrRange, v, e, p, 1-p.Bias(), p.Bias())
	}
	return sign + mu.FormatBinary(uint64(biased), p.ExponentBits()) + mu.FitWidth(string(mant), p.FractionBits()), nil
}

// DecodeArithmetic evaluates (-1)^s * (1+f) * 2^(e-bias) for a BitString.
// A short input is padded with trailing zeros, a long one is truncated.
// All-zero exponent and fraction decode to a signed zero. Subnormals result in ErrRange,
// an all-ones exponent in ErrNotFinite.
func DecodeArithmetic[T constraints.Float](bits string) (T, error) {
	v, err := DecodeArithmeticAs(bits, PrecisionOf[T]())
	if err != nil {
		return 0, err
	}
	return T(v), nil
}

// DecodeArithmeticHalf is DecodeArithmetic for binary16 values.
func DecodeArithmeticHalf(bits string) (float16.Float16, error) {
	v, err := DecodeArithmeticAs(bits, Half)
	if err != nil {
		return 0, err
	}
	return float16.Fromfloat32(float32(v)), nil
}

// DecodeArithmeticAs decodes a BitString of precision p.
// The result is exactly representable in p.
func DecodeArithmeticAs(bits string, p Precision) (float64, error) {
	if err := p.check(); err != nil {
		return 0, err
	}
	if err := Validate(bits); err != nil {
		return 0, fmt.Errorf("parsing failed: %w", err)
	}
	bits = mu.FitWidth(bits, p.Bits())
	expEnd := signBits + p.ExponentBits()
	e := mu.ParseBinary(bits[signBits:expEnd])
	fracDigits := bits[expEnd:]

	var v float64
	switch {
	case e == p.MaxExponent():
		return 0, fmt.Errorf("%w: all-ones exponent in %s", ErrNotFinite, bits)
	case e == 0 && strings.IndexByte(fracDigits, '1') >= 0:
		return 0, fmt.Errorf("%w: subnormal %s", ErrRange, bits)
	case e > 0:
		f, weight := 0.0, 0.5
		for i := 0; i < len(fracDigits); i++ {
			if fracDigits[i] == '1' {
				f += weight
			}
			weight /= 2
		}
		v = (1 + f) * mu.Pow2(int(e)-p.Bias())
	}
	if bits[0] == '1' {
		v = -v
	}
	return v, nil
}

// negative returns true for v < 0 and for -0.
func negative(v float64) bool {
	return v < 0 || v == 0 && 1/v < 0
}

// integerDigits returns the binary digits of a non-negative integral value, most significant first.
func integerDigits(v float64) []byte {
	var digits []byte
	for ; v > 0; v = math.Floor(v / 2) {
		digits = append(digits, byte('0'+int(math.Mod(v, 2))))
	}
	slices.Reverse(digits)
	return digits
}

// fractionDigits returns the binary digits of 0 <= v < 1, stopping when v is exhausted
// or 'need' digits were collected after the leading one.
// If 'found' is true, the leading one has already been seen.
// sticky reports whether a non-zero remainder was left.
func fractionDigits(v float64, need int, found bool) (digits []byte, sticky bool) {
	for v != 0 && (!found || need > 0) {
		v *= 2
		d := byte('0')
		if v >= 1 {
			d, v = '1', v-1
		}
		digits = append(digits, d)
		if found {
			need--
		} else if d == '1' {
			found = true
		}
	}
	return digits, v != 0
}

// roundUp decides whether 'mant' is to be incremented when 'rest' and the sticky remainder are dropped.
func roundUp(mant, rest []byte, sticky bool) bool {
	if rest[0] != '1' {
		return false
	}
	if sticky || bytes.IndexByte(rest[1:], '1') >= 0 {
		return true
	}
	return len(mant) > 0 && mant[len(mant)-1] == '1'
}

// increment adds one to a binary digit sequence in place and reports a carry out of it.
func increment(digits []byte) bool {
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] == '0' {
			digits[i] = '1'
			return false
		}
		digits[i] = '0'
	}
	return true
}
