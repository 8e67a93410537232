// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatbits

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	bigTwo  = big.NewInt(2)
	bigFive = big.NewInt(5)
)

// Exact returns the exact decimal value denoted by a BitString.
// Unlike the float decoders, subnormals are supported.
func Exact(bits string, p Precision) (decimal.Decimal, error) {
	f, err := ParseFields(bits, p)
	if err != nil {
		return decimal.Zero, err
	}
	return f.Decimal()
}

// Decimal returns the exact decimal value of f.
// Every finite binary float has a finite decimal expansion:
// m * 2^-k == m * 5^k * 10^-k.
func (f Fields) Decimal() (decimal.Decimal, error) {
	if err := f.Precision.check(); err != nil {
		return decimal.Zero, err
	}
	if f.IsInf() || f.IsNaN() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNotFinite, f.String())
	}
	if f.IsZero() {
		return decimal.Zero, nil
	}
	m := new(big.Int).SetUint64(f.Fraction)
	if f.Exponent != 0 { // implicit leading one
		m.SetBit(m, f.Precision.FractionBits(), 1)
	}
	pow := f.Unbiased() - f.Precision.FractionBits()
	var exp int32
	if pow >= 0 {
		m.Mul(m, new(big.Int).Exp(bigTwo, big.NewInt(int64(pow)), nil))
	} else {
		m.Mul(m, new(big.Int).Exp(bigFive, big.NewInt(int64(-pow)), nil))
		exp = int32(pow)
	}
	if f.Neg() {
		m.Neg(m)
	}
	return decimal.NewFromBigInt(m, exp), nil
}
