// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatbits

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned for a BitString symbol outside of {'0', '1'}.
	ErrMalformed = errors.New("malformed bit string")
	// ErrRange is returned when an exponent does not fit the normalized range of the target precision.
	ErrRange = errors.New("exponent out of range")
	// ErrNotFinite is returned for infinities and NaNs where only finite values are supported.
	ErrNotFinite = errors.New("value is not finite")
	// ErrPrecision is returned for an unknown precision.
	ErrPrecision = errors.New("unknown precision")
	// ErrEndianness is returned for a byte order other than LittleEndian or BigEndian.
	ErrEndianness = errors.New("unrecognized byte order")
)

type posError struct {
	pos int
	err string
}

func newPosError(err string, pos int) *posError {
	return &posError{err: err, pos: pos}
}

func (pe posError) Error() string {
	return pe.err + fmt.Sprintf(" at pos %d", pe.pos)
}

func (pe posError) Unwrap() error {
	return ErrMalformed
}
