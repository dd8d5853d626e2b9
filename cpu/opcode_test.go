package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcode_Table(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op       Opcode
		value    uint8
		operands int
		setsPC   bool
		alu      bool
	}){
		{HLT, 0x01, 0, false, false},
		{LDI, 0x82, 2, false, false},
		{PRN, 0x47, 1, false, false},
		{MUL, 0xa2, 2, false, true},
		{PSH, 0x45, 1, false, false},
		{POP, 0x46, 1, false, false},
		{CALL, 0x50, 1, true, false},
		{RET, 0x11, 0, true, false},
		{ADD, 0xa0, 2, false, true},
		{AND, 0xa8, 2, false, true},
		{CMP, 0xa7, 2, false, true},
		{DEC, 0x66, 1, false, true},
		{DIV, 0xa3, 2, false, true},
		{INC, 0x65, 1, false, true},
		{JEQ, 0x55, 1, true, false},
		{JMP, 0x54, 1, true, false},
		{JNE, 0x56, 1, true, false},
		{OR, 0xaa, 2, false, true},
		{SHL, 0xac, 2, false, true},
		{SUB, 0xa1, 2, false, true},
		{XOR, 0xab, 2, false, true},
		{LD, 0x83, 2, false, false},
		{ST, 0x84, 2, false, false},
		{PRA, 0x48, 1, false, false},
		{JLT, 0x58, 1, true, false},
		{JLE, 0x59, 1, true, false},
		{IRET, 0x13, 0, true, false},
	}

	for _, entry := range table {
		assert.Equal(entry.value, uint8(entry.op), entry.op.String())
		assert.Equal(entry.operands, entry.op.Operands(), entry.op.String())
		assert.Equal(entry.setsPC, entry.op.SetsPC(), entry.op.String())
		assert.Equal(entry.alu, entry.op.IsAlu(), entry.op.String())
		assert.True(entry.op.Defined(), entry.op.String())
	}
}

func TestOpcode_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("HLT", HLT.String())
	assert.Equal("MUL", MUL.String())
	assert.Equal("0xff", Opcode(0xff).String())
	assert.False(Opcode(0xff).Defined())
}

func TestOpcode_Unwired(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []Opcode{LD, ST, PRA, JLT, JLE, IRET} {
		_, wired := branchTable[op]
		assert.False(wired, op.String())
		assert.True(op.Defined(), op.String())
	}
}

func TestOpcode_InvalidOperandDecode(t *testing.T) {
	assert := assert.New(t)

	// An undefined instruction byte still decodes a raw operand count,
	// which drives the auto-advance on the diagnostic path.
	assert.Equal(3, Opcode(0xff).Operands())
	assert.Equal(0, Opcode(0x00).Operands())
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, value := range Defines() {
		defines[key] = value
	}

	assert.Equal("0x82", defines["LDI"])
	assert.Equal("0x01", defines["HLT"])
	assert.Equal("0xf4", defines["STACK_BASE"])
	assert.Equal("256", defines["RAM_SIZE"])
}
