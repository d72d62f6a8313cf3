package main

import (
	"flag"
	"log"
	"os"

	"github.com/cellvm/cellvm/emulator"
)

func main() {
	var input string
	var output string
	var steps int
	var verbose bool

	flag.StringVar(&input, "i", "-", "Program input")
	flag.StringVar(&output, "o", "-", "Diagnostic output")
	flag.IntVar(&steps, "n", 0, "Step limit (0 = unbounded)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() > 1 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args()[1:])
	}
	if flag.NArg() == 1 {
		input = flag.Arg(0)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.MaxSteps = steps

	in := os.Stdin
	if input != "-" {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		in = inf
	}

	if output != "-" {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Machine.Output = ouf
	}

	err := emu.Load(in)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	_, err = emu.Run()
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
}
