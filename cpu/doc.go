// Package cpu implements the LS-8 8-bit register machine.
//
// The machine consists of 256 bytes of RAM, eight 8-bit registers (r7
// doubles as the stack pointer), a program counter, and a comparison flag
// register written only by CMP. A program is a flat byte image loaded at
// address 0 and executed one instruction at a time until HLT.
//
// The package also provides the .ls8 text image codec and a small two-pass
// assembler for LS-8 mnemonic source, with compile-time $(...) expression
// evaluation.
package cpu
