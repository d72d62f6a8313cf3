package vm

import (
	"fmt"
	"math"
)

// Cell is the machine's fundamental 32-bit value. One bit pattern backs
// two views: a signed integer and an IEEE-754 float. Constructing from
// one view and reading the other reinterprets the bits, it never converts.
// A Cell is immutable; operations produce new cells.
type Cell struct {
	bits uint32
}

// CellFromInt creates a cell carrying the bit pattern of a signed integer.
func CellFromInt(value int32) Cell {
	return Cell{bits: uint32(value)}
}

// CellFromFloat creates a cell carrying the bit pattern of a float.
func CellFromFloat(value float32) Cell {
	return Cell{bits: math.Float32bits(value)}
}

// Int returns the cell's bits read as a signed integer.
func (c Cell) Int() int32 {
	return int32(c.bits)
}

// Float returns the cell's bits read as an IEEE-754 float.
func (c Cell) Float() float32 {
	return math.Float32frombits(c.bits)
}

// Bits returns the raw bit pattern.
func (c Cell) Bits() uint32 {
	return c.bits
}

// String returns the cell's bit pattern as two hex quads.
func (c Cell) String() string {
	return fmt.Sprintf("%04X_%04X", c.bits>>16, c.bits&0xffff)
}
