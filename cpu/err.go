package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrAluInvalid      = errors.New(f("unsupported alu operation"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrDivideByZero    = errors.New(f("divide by zero"))
	ErrStackOverflow   = errors.New(f("stack overflow"))
	ErrStackUnderflow  = errors.New(f("stack underflow"))

	// Image errors
	ErrImageTooLarge = errors.New(f("image larger than ram"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOpcodeMissing   = errors.New(f("opcode missing"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOpcodeExtraArgs = errors.New(f("excessive arguments"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrRegisterWanted  = errors.New(f("register wanted"))
)

// ErrInstruction indicates the instruction and address of a fatal
// execution error.
type ErrInstruction struct {
	Opcode Opcode
	Addr   uint8
}

func (ei ErrInstruction) Error() string {
	return f("instruction %v at address 0x%02x", ei.Opcode, ei.Addr)
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

// ErrLabelMissing indicates an unresolved label reference.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrSyntax indicates the location of an assembler or image parse error.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrParseNumber indicates a word that is not a numeric literal.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrParseByte indicates an image line that is not an 8-bit binary literal.
type ErrParseByte string

func (err ErrParseByte) Error() string {
	return f("'%v' is not an 8-bit binary literal", string(err))
}

// ErrParseExpression indicates a $(...) expression that did not evaluate
// to an 8-bit value.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
