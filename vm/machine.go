package vm

import (
	"fmt"
	"io"
	"iter"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/cellvm/cellvm/internal"
)

// Machine executes a preprocessed Program. All mutable state is owned by
// one Machine; execution is single-threaded and fully synchronous.
//
// Structural errors (unknown mnemonic, unparsable operand, register
// address out of range) abort the run. Stack overflow and underflow are
// logged and execution continues with a safe default.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Output io.Writer // Sink for the dmp/prt diagnostic opcodes.

	Register Registers // Register bank.
	Stack    Stack     // Operand stack.
	Ip       int       // Current instruction pointer (absolute line index).
	Steps    int       // Instructions executed since the last reset.

	program *Program
}

// NewMachine creates a machine for a preprocessed program.
func NewMachine(prog *Program) (m *Machine) {
	m = &Machine{
		Output:  os.Stdout,
		program: prog,
	}

	return
}

// Load replaces the machine's program and resets its state.
func (m *Machine) Load(prog *Program) {
	m.program = prog
	m.Reset()
}

// Reset clears the registers and stack and rewinds the instruction pointer.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("vm: reset")
	}

	clear(m.Register[:])
	m.Stack.Reset()
	m.Ip = 0
	m.Steps = 0
}

// Step fetches, decodes, and executes the instruction at the current
// line, then applies the jump register. done reports that the pointer
// ran past the end of the program.
func (m *Machine) Step() (done bool, err error) {
	if m.program == nil || m.Ip < 0 || m.Ip >= m.program.Len() {
		done = true
		return
	}

	lineno := m.Ip
	line := strings.TrimSpace(m.program.Lines[m.Ip])

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if len(line) == 0 || strings.HasPrefix(line, COMMENT_MARKER) {
		m.Ip++
		return
	}

	if m.Verbose {
		log.Printf("vm: %3d: %v", m.Ip, line)
	}

	mnemonic, rest, _ := strings.Cut(line, " ")
	op, err := ParseOpcode(mnemonic)
	if err != nil {
		return
	}

	err = m.stage(rest)
	if err != nil {
		return
	}

	err = m.execute(op)
	if err != nil {
		return
	}

	m.Steps++

	// A non-zero jump register redirects the instruction pointer and is
	// consumed; otherwise advance to the next line.
	if target := m.Register[REG_JUMP].Int(); target != 0 {
		m.Ip = int(target)
		m.Register[REG_JUMP] = Cell{}
	} else {
		m.Ip++
	}

	return
}

// Run executes until the instruction pointer falls off the end of the
// program, or a structural error aborts the run.
func (m *Machine) Run() (err error) {
	var done bool
	for !done {
		done, err = m.Step()
		if err != nil {
			return
		}
	}

	return
}

// stage parses the comma-separated operand literals and writes them into
// the staging registers r0, r1, ... in positional order.
func (m *Machine) stage(operands string) (err error) {
	if len(operands) == 0 {
		return
	}

	args := strings.Split(operands, ",")
	if len(args) > REG_ARG3+1 {
		return ErrOperandCount
	}

	for n, arg := range args {
		arg = strings.TrimSpace(arg)
		v64, perr := strconv.ParseInt(arg, 0, 32)
		if perr != nil {
			return ErrParseNumber(arg)
		}
		m.Register[n] = CellFromInt(int32(v64))
	}

	return
}

// execute dispatches one opcode against the registers and the stack.
func (m *Machine) execute(op Opcode) (err error) {
	switch op {
	case OP_PUSH:
		m.push(m.Register[REG_ARG0])
	case OP_POP:
		m.pop()
	case OP_ADD, OP_SUB, OP_MUL:
		a := m.pop().Int()
		b := m.pop().Int()
		var out int32
		switch op {
		case OP_ADD:
			out = a + b
		case OP_SUB:
			out = a - b
		case OP_MUL:
			out = a * b
		}
		m.push(CellFromInt(out))
	case OP_SET:
		err = m.Register.Set(m.Register[REG_ARG0].Int(), m.Register[REG_ARG1])
	case OP_DEC, OP_INC:
		index := m.Register[REG_ARG0].Int()
		var value Cell
		value, err = m.Register.Get(index)
		if err != nil {
			return
		}
		delta := int32(1)
		if op == OP_DEC {
			delta = -1
		}
		err = m.Register.Set(index, CellFromInt(value.Int()+delta))
	case OP_SWP:
		a := m.pop()
		b := m.pop()
		m.push(a)
		m.push(b)
	case OP_MOV_R2R:
		var value Cell
		value, err = m.Register.Get(m.Register[REG_ARG0].Int())
		if err != nil {
			return
		}
		err = m.Register.Set(m.Register[REG_ARG1].Int(), value)
	case OP_MOV_S2R:
		err = m.Register.Set(m.Register[REG_ARG0].Int(), m.Stack.PeekBottom())
	case OP_MOV_R2S:
		var value Cell
		value, err = m.Register.Get(m.Register[REG_ARG0].Int())
		if err != nil {
			return
		}
		m.push(value)
	case OP_JMP:
		m.Register[REG_JUMP] = m.Register[REG_ARG0]
	case OP_JZ:
		if m.Stack.PeekBottom().Int() == 0 {
			m.Register[REG_JUMP] = m.Register[REG_ARG0]
		}
	case OP_JNZ:
		if m.Stack.PeekBottom().Int() != 0 {
			m.Register[REG_JUMP] = m.Register[REG_ARG0]
		}
	case OP_JE:
		if m.Stack.PeekBottom().Int() == m.Register[REG_ARG1].Int() {
			m.Register[REG_JUMP] = m.Register[REG_ARG0]
		}
	case OP_JNE:
		if m.Stack.PeekBottom().Int() != m.Register[REG_ARG1].Int() {
			m.Register[REG_JUMP] = m.Register[REG_ARG0]
		}
	case OP_SHR, OP_SHL:
		index := m.Register[REG_ARG0].Int()
		var value Cell
		value, err = m.Register.Get(index)
		if err != nil {
			return
		}
		count := uint32(m.Register[REG_ARG1].Int()) & 0x1f // clamp to 31 bits of shift
		out := value.Int()
		if op == OP_SHL {
			out <<= count
		} else {
			out >>= count
		}
		err = m.Register.Set(index, CellFromInt(out))
	case OP_NOT, OP_STB, OP_CLR:
		index := m.Register[REG_ARG0].Int()
		var value Cell
		value, err = m.Register.Get(index)
		if err != nil {
			return
		}
		bit := uint32(m.Register[REG_ARG1].Int()) & 0x1f
		bits := value.Bits()
		switch op {
		case OP_NOT:
			bits ^= 1 << bit
		case OP_STB:
			bits |= 1 << bit
		case OP_CLR:
			bits &^= 1 << bit
		}
		err = m.Register.Set(index, CellFromInt(int32(bits)))
	case OP_DMP:
		fmt.Fprint(m.Output, m.String())
	case OP_PRT:
		fmt.Fprintf(m.Output, "%d\n", m.Stack.PeekBottom().Int())
	default:
		err = ErrMnemonic(op.String())
	}

	return
}

// push logs and drops the value when the stack is full. Overflow is not
// fatal; the machine keeps running.
func (m *Machine) push(value Cell) {
	err := m.Stack.Push(value)
	if err != nil {
		log.Printf("vm: %d: %v", m.Ip, err)
	}
}

// pop logs and substitutes a zero cell when the stack is empty.
func (m *Machine) pop() (value Cell) {
	value, err := m.Stack.Pop()
	if err != nil {
		log.Printf("vm: %d: %v", m.Ip, err)
	}

	return
}

// State iterates the register bank and the live stack cells as
// name/value pairs, registers first, both in index order.
func (m *Machine) State() iter.Seq2[string, string] {
	registers := func(yield func(string, string) bool) {
		for name, value := range m.Register.Each() {
			if !yield(name, value.String()) {
				return
			}
		}
	}
	stack := func(yield func(string, string) bool) {
		for n, value := range m.Stack.Snapshot() {
			if !yield(fmt.Sprintf("s%d", n), value.String()) {
				return
			}
		}
	}

	return internal.IterSeq2Concat(iter.Seq2[string, string](registers), iter.Seq2[string, string](stack))
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	for name, value := range m.State() {
		text += fmt.Sprintf("% 4s: %v\n", name, value)
	}

	return
}
