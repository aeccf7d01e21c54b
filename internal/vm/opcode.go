package vm

import "fmt"

// Opcode is a raw 16-bit instruction word fetched from memory.
type Opcode uint16

// Nibble returns the 4-bit nibble at the given index, index 0 being the
// lowest nibble.
func (o Opcode) Nibble(index uint) uint8 {
	return uint8(o>>(index*4)) & 0x0F
}

// X returns the register index encoded in the second highest nibble.
func (o Opcode) X() uint8 {
	return o.Nibble(2)
}

// Y returns the register index encoded in the second lowest nibble.
func (o Opcode) Y() uint8 {
	return o.Nibble(1)
}

// N returns the lowest nibble.
func (o Opcode) N() uint8 {
	return o.Nibble(0)
}

// KK returns the lowest byte.
func (o Opcode) KK() uint8 {
	return uint8(o)
}

// NNN returns the address encoded in the lowest 12 bits.
func (o Opcode) NNN() uint16 {
	return uint16(o) & 0x0FFF
}

func (o Opcode) String() string {
	return fmt.Sprintf("0x%04X", uint16(o))
}
