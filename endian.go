// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatbits

import (
	"fmt"

	"golang.org/x/sys/cpu"
)

// Endianness is the order in which a value's bytes are laid out in memory.
type Endianness uint8

const (
	// LittleEndian stores the least significant byte first.
	LittleEndian Endianness = iota + 1
	// BigEndian stores the most significant byte first.
	BigEndian
)

// HostEndianness is the byte order of the running machine.
// It is resolved once, on program start.
var HostEndianness = hostEndianness()

func hostEndianness() Endianness {
	if cpu.IsBigEndian {
		return BigEndian
	}
	return LittleEndian
}

// Valid returns true for LittleEndian and BigEndian.
func (e Endianness) Valid() bool {
	return e == LittleEndian || e == BigEndian
}

// String returns "little" or "big".
func (e Endianness) String() string {
	switch e {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	default:
		return fmt.Sprintf("Endianness(%d)", uint8(e))
	}
}

// byteIndex returns the position of the byte holding logical bit 'bit' (0 is the sign bit)
// in a storage image of 'size' bytes.
func (e Endianness) byteIndex(bit, size int) int {
	if e == BigEndian {
		return bit / 8
	}
	return size - 1 - bit/8
}
