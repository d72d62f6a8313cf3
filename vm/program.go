package vm

// Program is a preprocessed sequence of text lines ready for execution.
// Every line is either empty, a comment, or a concrete instruction whose
// operands are integer literals; a line's index is the absolute address
// jumps land on.
type Program struct {
	Lines []string
}

// Len returns the number of program lines.
func (prog *Program) Len() int {
	return len(prog.Lines)
}
