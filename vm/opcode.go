package vm

import (
	"fmt"
)

// Opcode is a concrete machine instruction. The set is closed: the
// engine dispatches through an exhaustive switch, and the only place a
// name lookup can fail is ParseOpcode.
type Opcode int

const (
	OP_PUSH    = Opcode(0)  // push
	OP_POP     = Opcode(1)  // pop
	OP_ADD     = Opcode(2)  // add
	OP_SUB     = Opcode(3)  // sub
	OP_MUL     = Opcode(4)  // mul
	OP_SET     = Opcode(5)  // set
	OP_DEC     = Opcode(6)  // dec
	OP_INC     = Opcode(7)  // inc
	OP_SWP     = Opcode(8)  // swp
	OP_MOV_R2R = Opcode(9)  // mov_r2r
	OP_MOV_S2R = Opcode(10) // mov_s2r
	OP_MOV_R2S = Opcode(11) // mov_r2s
	OP_JMP     = Opcode(12) // jmp
	OP_JZ      = Opcode(13) // jz
	OP_JNZ     = Opcode(14) // jnz
	OP_JE      = Opcode(15) // je
	OP_JNE     = Opcode(16) // jne
	OP_SHR     = Opcode(17) // shr
	OP_SHL     = Opcode(18) // shl
	OP_NOT     = Opcode(19) // not
	OP_STB     = Opcode(20) // stb
	OP_CLR     = Opcode(21) // clr
	OP_DMP     = Opcode(22) // dmp
	OP_PRT     = Opcode(23) // prt
)

// opcodeMnemonic maps each opcode to its source-language mnemonic.
var opcodeMnemonic = map[Opcode]string{
	OP_PUSH:    "push",
	OP_POP:     "pop",
	OP_ADD:     "add",
	OP_SUB:     "sub",
	OP_MUL:     "mul",
	OP_SET:     "set",
	OP_DEC:     "dec",
	OP_INC:     "inc",
	OP_SWP:     "swp",
	OP_MOV_R2R: "mov_r2r",
	OP_MOV_S2R: "mov_s2r",
	OP_MOV_R2S: "mov_r2s",
	OP_JMP:     "jmp",
	OP_JZ:      "jz",
	OP_JNZ:     "jnz",
	OP_JE:      "je",
	OP_JNE:     "jne",
	OP_SHR:     "shr",
	OP_SHL:     "shl",
	OP_NOT:     "not",
	OP_STB:     "stb",
	OP_CLR:     "clr",
	OP_DMP:     "dmp",
	OP_PRT:     "prt",
}

// mnemonicOpcode is the reverse lookup used at decode time.
var mnemonicOpcode = map[string]Opcode{}

func init() {
	for op, name := range opcodeMnemonic {
		mnemonicOpcode[name] = op
	}
}

// ParseOpcode decodes a mnemonic into its opcode.
func ParseOpcode(mnemonic string) (op Opcode, err error) {
	op, ok := mnemonicOpcode[mnemonic]
	if !ok {
		err = ErrMnemonic(mnemonic)
	}

	return
}

// String returns the opcode's mnemonic.
func (op Opcode) String() string {
	name, ok := opcodeMnemonic[op]
	if !ok {
		return fmt.Sprintf("Opcode(%d)", int(op))
	}

	return name
}
