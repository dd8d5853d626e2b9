package cpu

import (
	"fmt"
	"strings"
)

// Opcode is a single LS-8 instruction byte.
//
// Bit layout, high to low: the top two bits are the number of operand
// bytes that follow the instruction, bit 5 marks an ALU instruction,
// bit 4 marks an instruction that sets the program counter, and the
// remaining bits (together with the rest) identify the instruction.
type Opcode uint8

const (
	HLT  = Opcode(0b00000001) // Halt the machine.
	RET  = Opcode(0b00010001) // Pop the program counter.
	IRET = Opcode(0b00010011) // Return from interrupt (not wired).
	PSH  = Opcode(0b01000101) // Push a register.
	POP  = Opcode(0b01000110) // Pop into a register.
	PRN  = Opcode(0b01000111) // Print a register in decimal.
	PRA  = Opcode(0b01001000) // Print a register as a character (not wired).
	CALL = Opcode(0b01010000) // Push the return address, jump to a register.
	JMP  = Opcode(0b01010100) // Jump to a register.
	JEQ  = Opcode(0b01010101) // Jump to a register if EQ is set.
	JNE  = Opcode(0b01010110) // Jump to a register if EQ is clear.
	JLT  = Opcode(0b01011000) // Jump if LT (not wired).
	JLE  = Opcode(0b01011001) // Jump if LT or EQ (not wired).
	INC  = Opcode(0b01100101) // Increment a register.
	DEC  = Opcode(0b01100110) // Decrement a register.
	LDI  = Opcode(0b10000010) // Load an immediate into a register.
	LD   = Opcode(0b10000011) // Load from memory (not wired).
	ST   = Opcode(0b10000100) // Store to memory (not wired).
	ADD  = Opcode(0b10100000) // ra += rb
	SUB  = Opcode(0b10100001) // ra -= rb
	MUL  = Opcode(0b10100010) // ra *= rb
	DIV  = Opcode(0b10100011) // ra /= rb (truncating)
	CMP  = Opcode(0b10100111) // Compare ra to rb, set flags.
	AND  = Opcode(0b10101000) // ra &= rb
	OR   = Opcode(0b10101010) // ra |= rb
	XOR  = Opcode(0b10101011) // ra ^= rb
	SHL  = Opcode(0b10101100) // ra <<= rb
)

// opcodeNames names every defined opcode, wired or not.
var opcodeNames = map[Opcode]string{
	HLT:  "HLT",
	RET:  "RET",
	IRET: "IRET",
	PSH:  "PSH",
	POP:  "POP",
	PRN:  "PRN",
	PRA:  "PRA",
	CALL: "CALL",
	JMP:  "JMP",
	JEQ:  "JEQ",
	JNE:  "JNE",
	JLT:  "JLT",
	JLE:  "JLE",
	INC:  "INC",
	DEC:  "DEC",
	LDI:  "LDI",
	LD:   "LD",
	ST:   "ST",
	ADD:  "ADD",
	SUB:  "SUB",
	MUL:  "MUL",
	DIV:  "DIV",
	CMP:  "CMP",
	AND:  "AND",
	OR:   "OR",
	XOR:  "XOR",
	SHL:  "SHL",
}

// mnemonicMap maps lower-cased mnemonics back to opcodes for the assembler.
var mnemonicMap = map[string]Opcode{}

var _opcode_defines = map[string]string{}

func init() {
	for op, name := range opcodeNames {
		mnemonicMap[strings.ToLower(name)] = op
		_opcode_defines[name] = fmt.Sprintf("0x%02x", uint8(op))
	}
}

// Operands returns the number of operand bytes encoded in the top two
// bits. Note that this is the raw field value; no defined opcode encodes
// more than 2, but an invalid instruction byte may decode as 3, and the
// auto-advance honors the raw value.
func (op Opcode) Operands() int {
	return int(op>>6) & 0b11
}

// SetsPC reports whether the instruction explicitly modifies the program
// counter. A conditional jump that does not branch falls back to the
// normal advance regardless.
func (op Opcode) SetsPC() bool {
	return (op>>4)&0b1 == 1
}

// IsAlu reports whether the instruction is handled by the ALU.
func (op Opcode) IsAlu() bool {
	return (op>>5)&0b1 == 1
}

// Defined reports whether the byte is a named LS-8 opcode. A defined
// opcode is not necessarily wired into the branch table.
func (op Opcode) Defined() bool {
	_, ok := opcodeNames[op]
	return ok
}

// String returns the opcode mnemonic, or the hex value if unnamed.
func (op Opcode) String() string {
	name, ok := opcodeNames[op]
	if !ok {
		return fmt.Sprintf("0x%02x", uint8(op))
	}
	return name
}
