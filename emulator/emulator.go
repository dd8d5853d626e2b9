// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"io"

	"github.com/ezrec/ls8/cpu"
)

// Emulator binds an LS-8 machine to a program listing and an output sink.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	Strict   bool         // If set, stack overflow and underflow are fatal.
	*cpu.Cpu              // Reference to the machine simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Output io.Writer // PRN and diagnostic sink. Defaults to os.Stdout.
	Limit  int       // Instruction limit per Run. 0 means run until HLT.
}

// NewEmulator creates a new emulator with an empty program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Reset restores the machine to power-on state and reloads the program
// image at address 0.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Reset()
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Strict = emu.Strict
	if emu.Output != nil {
		emu.Cpu.Output = emu.Output
	}

	err = emu.Cpu.Load(emu.Program.Binary())

	return
}

// LineNo returns the source line number for the executing instruction, or
// 0 when the program has no listing for the current address.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick executes a single instruction. done reports that the machine has
// halted. Fatal machine errors are wrapped with their source location.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Cpu.Halted {
		done = true
		return
	}

	addr := emu.Cpu.Pc
	lineno := emu.LineNo()

	err = emu.Cpu.Step()
	if err != nil {
		err = &ErrRuntime{Addr: addr, LineNo: lineno, Err: err}
		return
	}

	done = emu.Cpu.Halted

	return
}

// Run executes until HLT, or until the instruction limit is reached.
func (emu *Emulator) Run() (err error) {
	for steps := 0; ; steps++ {
		if emu.Limit > 0 && steps >= emu.Limit {
			err = ErrLimit
			return
		}

		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}
}
