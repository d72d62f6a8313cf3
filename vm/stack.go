package vm

const (
	STACK_LIMIT = 256 // Maximum stack depth
)

// Stack is the machine's fixed-capacity operand stack. Pushing onto a
// full stack is refused with ErrStackFull rather than overwriting the
// last slot; popping an empty stack yields a zero cell and ErrStackEmpty.
// Neither condition is fatal to the caller.
type Stack struct {
	data [STACK_LIMIT]Cell
	used int
}

// Push places a cell on top of the stack.
func (s *Stack) Push(value Cell) (err error) {
	if s.used == STACK_LIMIT {
		return ErrStackFull
	}

	s.data[s.used] = value
	s.used++

	return
}

// Pop removes and returns the top cell, clearing the vacated slot.
func (s *Stack) Pop() (value Cell, err error) {
	if s.used == 0 {
		return Cell{}, ErrStackEmpty
	}

	s.used--
	value = s.data[s.used]
	s.data[s.used] = Cell{}

	return
}

// PeekBottom reads slot 0 regardless of the current depth. On an empty
// stack the slot holds a zero cell. The bottom read is part of the
// machine's jump semantics, not a mistaken top-of-stack peek.
func (s *Stack) PeekBottom() Cell {
	return s.data[0]
}

// Snapshot returns a copy of the cells currently in use, bottom first.
func (s *Stack) Snapshot() []Cell {
	out := make([]Cell, s.used)
	copy(out, s.data[:s.used])
	return out
}

// Depth returns the number of cells currently on the stack.
func (s *Stack) Depth() int {
	return s.used
}

func (s *Stack) Empty() bool {
	return s.used == 0
}

func (s *Stack) Full() bool {
	return s.used == STACK_LIMIT
}

// Reset clears the stack to its initial empty state.
func (s *Stack) Reset() {
	clear(s.data[:s.used])
	s.used = 0
}
