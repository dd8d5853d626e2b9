package cpu

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"os"

	"github.com/ezrec/ls8/internal"
)

const (
	RAM_SIZE       = 256  // Bytes of addressable RAM.
	REGISTER_COUNT = 8    // General purpose registers.
	SP             = 7    // Register index of the stack pointer.
	STACK_BASE     = 0xf4 // Initial stack pointer (empty stack).
)

var _machine_defines = map[string]string{
	"RAM_SIZE":       fmt.Sprintf("%v", RAM_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
	"SP":             fmt.Sprintf("%v", SP),
	"STACK_BASE":     fmt.Sprintf("0x%02x", STACK_BASE),
}

// Defines returns the machine constants and opcode values, for use as
// predeclared symbols in compile-time expressions.
func Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_machine_defines), maps.All(_opcode_defines))
}

// Flags is the comparison flag bitset. Only CMP writes it.
type Flags uint8

const (
	FLAG_EQ = Flags(0b001) // equal
	FLAG_GT = Flags(0b010) // greater-than
	FLAG_LT = Flags(0b100) // less-than
)

// String renders the flag bits as "LGE", with '-' for clear bits.
func (fl Flags) String() string {
	text := []byte("---")
	if fl&FLAG_LT != 0 {
		text[0] = 'L'
	}
	if fl&FLAG_GT != 0 {
		text[1] = 'G'
	}
	if fl&FLAG_EQ != 0 {
		text[2] = 'E'
	}
	return string(text)
}

// Action is a handler's program counter disposition for one cycle.
type Action int

const (
	ACTION_ADVANCE = Action(0) // Advance past the instruction and its operands.
	ACTION_JUMP    = Action(1) // The handler set the program counter.
)

// Cpu is the LS-8 machine state.
type Cpu struct {
	Verbose bool // Set to enable verbose execution logging.
	Strict  bool // Set to make stack overflow and underflow fatal.

	Ram      [RAM_SIZE]uint8       // Memory. Programs load at address 0.
	Register [REGISTER_COUNT]uint8 // Register bank. Register[SP] is the stack pointer.
	Pc       uint8                 // Program counter.
	Fl       Flags                 // Comparison flags.
	Halted   bool                  // Set by HLT.

	Ticks int // Executed instruction counter.

	Output io.Writer // Sink for PRN output and diagnostics. Defaults to os.Stdout.
}

// handler executes one instruction and reports the program counter
// disposition for the cycle.
type handler func(cpu *Cpu, a, b uint8) (action Action, err error)

// branchTable maps each wired opcode to its handler. Opcodes missing here
// (including the defined-but-unwired LD, ST, PRA, JLT, JLE, and IRET) take
// the non-fatal invalid-instruction path in Step.
var branchTable = map[Opcode]handler{
	HLT:  (*Cpu).hlt,
	LDI:  (*Cpu).ldi,
	PRN:  (*Cpu).prn,
	PSH:  (*Cpu).psh,
	POP:  (*Cpu).pop,
	CALL: (*Cpu).call,
	RET:  (*Cpu).ret,
	JMP:  (*Cpu).jmp,
	JEQ:  (*Cpu).jeq,
	JNE:  (*Cpu).jne,
	ADD:  (*Cpu).add,
	SUB:  (*Cpu).sub,
	MUL:  (*Cpu).mul,
	DIV:  (*Cpu).div,
	AND:  (*Cpu).and,
	OR:   (*Cpu).or,
	XOR:  (*Cpu).xor,
	SHL:  (*Cpu).shl,
	INC:  (*Cpu).inc,
	DEC:  (*Cpu).dec,
	CMP:  (*Cpu).cmp,
}

// NewCpu creates a machine with zeroed RAM and an empty stack.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Output: os.Stdout,
	}
	cpu.Register[SP] = STACK_BASE

	return
}

// Reset restores the machine to its power-on state. RAM, registers, and
// flags are cleared, and the stack pointer returns to the stack base.
func (cpu *Cpu) Reset() {
	clear(cpu.Ram[:])
	clear(cpu.Register[:])
	cpu.Register[SP] = STACK_BASE
	cpu.Pc = 0
	cpu.Fl = 0
	cpu.Halted = false
	cpu.Ticks = 0
}

// Load copies a program image into RAM starting at address 0.
func (cpu *Cpu) Load(image []uint8) (err error) {
	if len(image) > RAM_SIZE {
		err = ErrImageTooLarge
		return
	}

	copy(cpu.Ram[:], image)

	return
}

// String returns the current machine state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("   pc: 0x%02x\n   fl: %v\n halt: %v\n", cpu.Pc, cpu.Fl, cpu.Halted)
	for n, value := range cpu.Register {
		name := fmt.Sprintf("r%d", n)
		if n == SP {
			name = "sp"
		}
		text += fmt.Sprintf("% 5s: 0x%02x\n", name, value)
	}

	return
}

// Trace returns a one line dump of the execution state: the program
// counter, the three bytes at it, and the register bank.
func (cpu *Cpu) Trace() (text string) {
	text = fmt.Sprintf("%02X | %02X %02X %02X |",
		cpu.Pc, cpu.Ram[cpu.Pc], cpu.Ram[cpu.Pc+1], cpu.Ram[cpu.Pc+2])
	for _, value := range cpu.Register {
		text += fmt.Sprintf(" %02X", value)
	}

	return
}

// getRegister reads a register, validating the index.
func (cpu *Cpu) getRegister(index uint8) (value uint8, err error) {
	if int(index) >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}
	value = cpu.Register[index]

	return
}

// setRegister writes a register, validating the index.
func (cpu *Cpu) setRegister(index uint8, value uint8) (err error) {
	if int(index) >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}
	cpu.Register[index] = value

	return
}

// Step fetches, decodes, and executes a single instruction.
//
// An instruction byte that is not in the branch table is a non-fatal
// condition: a diagnostic line goes to the output sink, no machine state
// changes, and the program counter advances past the instruction and its
// decoded operand count. Handler errors are fatal and leave the program
// counter at the faulting instruction.
func (cpu *Cpu) Step() (err error) {
	ir := Opcode(cpu.Ram[cpu.Pc])

	// The two bytes after the instruction are always fetched; the handler
	// interprets only as many as the opcode encodes. Reads past the loaded
	// program land in zero-filled RAM, and the address arithmetic wraps.
	a := cpu.Ram[cpu.Pc+1]
	b := cpu.Ram[cpu.Pc+2]

	if cpu.Verbose {
		log.Printf("ls8: %v %v", cpu.Trace(), ir)
	}

	fn, ok := branchTable[ir]
	if !ok {
		fmt.Fprintf(cpu.Output, "Invalid instruction 0x%02x at address 0x%02x\n", uint8(ir), cpu.Pc)
		cpu.Pc += uint8(1 + ir.Operands())
		return
	}

	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction{Opcode: ir, Addr: cpu.Pc}, err)
		}
	}()

	action, err := fn(cpu, a, b)
	if err != nil {
		return
	}

	if action == ACTION_ADVANCE {
		cpu.Pc += uint8(1 + ir.Operands())
	}
	cpu.Ticks++

	return
}

// Run executes instructions until HLT.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		err = cpu.Step()
		if err != nil {
			return
		}
	}

	return
}

func (cpu *Cpu) hlt(a, b uint8) (action Action, err error) {
	cpu.Halted = true

	return
}

func (cpu *Cpu) ldi(a, b uint8) (action Action, err error) {
	err = cpu.setRegister(a, b)

	return
}

func (cpu *Cpu) prn(a, b uint8) (action Action, err error) {
	value, err := cpu.getRegister(a)
	if err != nil {
		return
	}

	_, err = fmt.Fprintf(cpu.Output, "%d\n", value)

	return
}

func (cpu *Cpu) jmp(a, b uint8) (action Action, err error) {
	target, err := cpu.getRegister(a)
	if err != nil {
		return
	}

	cpu.Pc = target
	action = ACTION_JUMP

	return
}

// jeq jumps when the EQ flag is set. When the branch is not taken the
// cycle falls back to the normal advance, even though JEQ decodes as a
// PC-setting instruction.
func (cpu *Cpu) jeq(a, b uint8) (action Action, err error) {
	if cpu.Fl&FLAG_EQ != 0 {
		return cpu.jmp(a, b)
	}

	return
}

// jne jumps when the EQ flag is clear; see jeq for the not-taken case.
func (cpu *Cpu) jne(a, b uint8) (action Action, err error) {
	if cpu.Fl&FLAG_EQ == 0 {
		return cpu.jmp(a, b)
	}

	return
}
