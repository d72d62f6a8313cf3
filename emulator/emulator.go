package emulator

import (
	"bufio"
	"io"

	"github.com/cellvm/cellvm/vm"
)

// Emulator hosts a Machine: it loads raw program text, runs the
// preprocessing pipeline, and drives the execution loop. The machine's
// own loop is unbounded; the optional step limit lives here, at the host.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	MaxSteps int  // Abort Run after this many instructions; 0 means unbounded.

	*vm.Machine
}

// NewEmulator creates an emulator with an empty program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: vm.NewMachine(&vm.Program{}),
	}

	return
}

// Load reads raw program text, preprocesses it, and installs the result,
// resetting the machine.
func (emu *Emulator) Load(input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	prog, err := vm.Preprocess(lines)
	if err != nil {
		return
	}

	emu.Machine.Load(prog)

	return
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	done, err = emu.Machine.Step()
	if err != nil {
		return
	}

	if !done && emu.MaxSteps > 0 && emu.Machine.Steps >= emu.MaxSteps {
		err = ErrStepLimit
	}

	return
}

// Run drives Tick until the program halts, a structural error aborts the
// run, or the step limit is exceeded.
func (emu *Emulator) Run() (steps int, err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	steps = emu.Machine.Steps

	return
}
