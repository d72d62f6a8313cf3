package vm

import (
	"fmt"
	"iter"
)

const (
	REGISTER_COUNT = 16 // Size of the register bank
)

// Conventional register roles. None of these are enforced by the
// machine; they are calling conventions of the instruction set.
const (
	REG_ARG0    = 0 // First staged operand
	REG_ARG1    = 1 // Second staged operand
	REG_ARG2    = 2 // Third staged operand
	REG_ARG3    = 3 // Fourth staged operand
	REG_JUMP    = 7 // Jump-pending register, checked after every instruction
	REG_COUNTER = 8 // Loop counter by convention
)

// Registers is the machine's bank of sixteen cells, addressed 0-15.
// Addressing outside that range is a program validity error.
type Registers [REGISTER_COUNT]Cell

// Get reads the register at a program-computed index.
func (r *Registers) Get(index int32) (value Cell, err error) {
	if index < 0 || index >= REGISTER_COUNT {
		err = ErrRegisterRange(index)
		return
	}

	value = r[index]

	return
}

// Set writes the register at a program-computed index.
func (r *Registers) Set(index int32, value Cell) (err error) {
	if index < 0 || index >= REGISTER_COUNT {
		return ErrRegisterRange(index)
	}

	r[index] = value

	return
}

// Each iterates register name/value pairs in bank order.
func (r *Registers) Each() iter.Seq2[string, Cell] {
	return func(yield func(string, Cell) bool) {
		for n, value := range r {
			if !yield(fmt.Sprintf("r%d", n), value) {
				return
			}
		}
	}
}
