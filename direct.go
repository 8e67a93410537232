// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatbits

import (
	"fmt"
	"unsafe"

	"github.com/x448/float16"
	"golang.org/x/exp/constraints"

	mu "github.com/avdva/floatbits/internal/mathutil"
)

// Direct reads and writes IEEE-754 fields straight from a value's storage image,
// the bytes of the value as they are laid out in memory.
// It does no arithmetic on the value itself.
// A Direct is immutable and safe for concurrent use.
type Direct struct {
	order Endianness
}

var hostDirect = &Direct{order: HostEndianness}

// NewDirect returns a Direct codec for storage images in the given byte order.
func NewDirect(order Endianness) (*Direct, error) {
	if !order.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrEndianness, order)
	}
	return &Direct{order: order}, nil
}

// Order returns the byte order of the storage images d works with.
func (d *Direct) Order() Endianness {
	return d.order
}

// Fields splits a storage image into sign, exponent and fraction fields.
func (d *Direct) Fields(img []byte, p Precision) (Fields, error) {
	if err := d.checkImage(img, p); err != nil {
		return Fields{}, err
	}
	bit := 0
	read := func(width int) uint64 {
		var field uint64
		for i := width - 1; i >= 0; i, bit = i-1, bit+1 {
			field |= uint64(d.bitAt(img, bit)) << i
		}
		return field
	}
	return Fields{
		Precision: p,
		Sign:      uint8(read(signBits)),
		Exponent:  read(p.ExponentBits()),
		Fraction:  read(p.FractionBits()),
	}, nil
}

// Image builds a storage image from fields.
func (d *Direct) Image(f Fields) ([]byte, error) {
	if err := f.Precision.check(); err != nil {
		return nil, err
	}
	if mu.BinaryDigits(uint64(f.Sign)) > signBits ||
		mu.BinaryDigits(f.Exponent) > f.Precision.ExponentBits() ||
		mu.BinaryDigits(f.Fraction) > f.Precision.FractionBits() {
		return nil, fmt.Errorf("fields %#v do not fit %v precision", f, f.Precision)
	}
	img := make([]byte, f.Precision.Bytes())
	bit := 0
	write := func(field uint64, width int) {
		for i := width - 1; i >= 0; i, bit = i-1, bit+1 {
			if field>>i&1 == 1 {
				d.setBit(img, bit)
			}
		}
	}
	write(uint64(f.Sign), signBits)
	write(f.Exponent, f.Precision.ExponentBits())
	write(f.Fraction, f.Precision.FractionBits())
	return img, nil
}

// Encode returns the BitString of a storage image.
func (d *Direct) Encode(img []byte, p Precision) (string, error) {
	f, err := d.Fields(img, p)
	if err != nil {
		return "", err
	}
	return f.String(), nil
}

// Decode fills a storage image from a BitString, left to right:
// sign bit, exponent bits, then fraction bits.
// If 'bits' is shorter than p.Bits(), the remaining bits stay zero.
// Symbols past p.Bits() are ignored.
func (d *Direct) Decode(bits string, p Precision) ([]byte, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	if err := Validate(bits); err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	img := make([]byte, p.Bytes())
	for i := 0; i < len(bits) && i < p.Bits(); i++ {
		if bits[i] == '1' {
			d.setBit(img, i)
		}
	}
	return img, nil
}

func (d *Direct) checkImage(img []byte, p Precision) error {
	if err := p.check(); err != nil {
		return err
	}
	if len(img) != p.Bytes() {
		return fmt.Errorf("bad storage image size %d for %v precision", len(img), p)
	}
	return nil
}

// bitAt returns logical bit 'bit' of the image, where bit 0 is the sign bit.
func (d *Direct) bitAt(img []byte, bit int) byte {
	return img[d.order.byteIndex(bit, len(img))] >> (7 - bit%8) & 1
}

func (d *Direct) setBit(img []byte, bit int) {
	img[d.order.byteIndex(bit, len(img))] |= 1 << (7 - bit%8)
}

// storage returns the memory of *v as a byte slice.
func storage[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// EncodeDirect returns the BitString of v by reading its memory on the host.
// The result is 32 symbols long for float32 and 64 for float64.
// Every value is supported, including zeros, subnormals, infinities and NaNs.
func EncodeDirect[T constraints.Float](v T) string {
	s, err := hostDirect.Encode(storage(&v), PrecisionOf[T]())
	if err != nil {
		panic(err) // storage(&v) always has the size of T.
	}
	return s
}

// DecodeDirect writes a BitString into the memory of a value of type T.
// See Direct.Decode for the treatment of short input.
func DecodeDirect[T constraints.Float](bits string) (T, error) {
	var v T
	img, err := hostDirect.Decode(bits, PrecisionOf[T]())
	if err != nil {
		return 0, err
	}
	copy(storage(&v), img)
	return v, nil
}

// EncodeDirectHalf is EncodeDirect for binary16 values.
func EncodeDirectHalf(v float16.Float16) string {
	s, err := hostDirect.Encode(storage(&v), Half)
	if err != nil {
		panic(err)
	}
	return s
}

// DecodeDirectHalf is DecodeDirect for binary16 values.
func DecodeDirectHalf(bits string) (float16.Float16, error) {
	var v float16.Float16
	img, err := hostDirect.Decode(bits, Half)
	if err != nil {
		return 0, err
	}
	copy(storage(&v), img)
	return v, nil
}
