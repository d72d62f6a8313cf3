// Package vm implements a small virtual machine for a line-oriented
// assembly language.
//
// The machine consists of a bank of sixteen 32-bit registers, a bounded
// operand stack of 256 cells, and an instruction pointer that walks the
// program one text line at a time. Register slots r0-r3 stage the literal
// operands of each instruction, r7 is the jump-target register checked
// after every instruction, and r8 is by convention a loop counter.
//
// Program text passes through two preprocessing stages before execution:
// label resolution, which replaces symbolic labels with absolute line
// indexes, and pseudo-instruction expansion, which rewrites the ambiguous
// "move" mnemonic into one of its concrete forms.
package vm
