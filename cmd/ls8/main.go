// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
)

func main() {
	var compile string
	var image string
	var save bool
	var output string
	var verbose bool
	var strict bool
	var limit int

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&image, "i", "", ".ls8 image file to load")
	flag.BoolVar(&save, "s", false, "Save assembled .ls8 image to stdout, do not execute")
	flag.StringVar(&output, "o", "-", "Program output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&strict, "strict", false, "Make stack overflow and underflow fatal")
	flag.IntVar(&limit, "limit", 0, "Instruction limit (0 for none)")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	prog := &cpu.Program{}

	// Assemble a new program image.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	} else if len(image) != 0 {
		inf, err := os.Open(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		defer inf.Close()

		bytes, err := cpu.ReadImage(inf)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		prog = cpu.ImageProgram(bytes)
	} else {
		log.Fatalf("%v: Either -c or -i is required", os.Args[0])
	}

	if save {
		err := cpu.WriteImage(os.Stdout, prog)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose
	emu.Strict = strict
	emu.Limit = limit

	if output == "-" {
		emu.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Output = ouf
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}
}
