package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlu_Binary(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		op   AluOp
		a    uint8
		b    uint8
		out  uint8
	}){
		{"add", ALU_OP_ADD, 3, 4, 7},
		{"add_wrap", ALU_OP_ADD, 200, 100, 44},
		{"sub", ALU_OP_SUB, 9, 5, 4},
		{"sub_wrap", ALU_OP_SUB, 5, 10, 251},
		{"mul", ALU_OP_MUL, 8, 9, 72},
		{"mul_wrap", ALU_OP_MUL, 20, 20, 144},
		{"div", ALU_OP_DIV, 9, 2, 4},
		{"div_exact", ALU_OP_DIV, 72, 9, 8},
		{"and", ALU_OP_AND, 0b1100, 0b1010, 0b1000},
		{"or", ALU_OP_OR, 0b1100, 0b1010, 0b1110},
		{"xor", ALU_OP_XOR, 0b1100, 0b1010, 0b0110},
		{"shl", ALU_OP_SHL, 0b101, 2, 0b10100},
		{"shl_wrap", ALU_OP_SHL, 0b10000001, 1, 0b10},
		{"shl_drain", ALU_OP_SHL, 0xff, 8, 0},
	}

	for _, entry := range table {
		cpu := NewCpu()
		cpu.Register[0] = entry.a
		cpu.Register[1] = entry.b

		err := cpu.alu(entry.op, 0, 1)
		assert.NoError(err, entry.name)
		assert.Equal(entry.out, cpu.Register[0], entry.name)
		// The second register is never written.
		assert.Equal(entry.b, cpu.Register[1], entry.name)
		// Flags are only written by CMP.
		assert.Equal(Flags(0), cpu.Fl, entry.name)
	}
}

func TestAlu_Unary(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Register[2] = 0xff

	err := cpu.alu(ALU_OP_INC, 2, 0)
	assert.NoError(err)
	assert.Equal(uint8(0), cpu.Register[2])

	err = cpu.alu(ALU_OP_DEC, 2, 0)
	assert.NoError(err)
	assert.Equal(uint8(0xff), cpu.Register[2])
}

func TestAlu_Cmp(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		a    uint8
		b    uint8
		fl   Flags
	}){
		{"lt", 1, 2, FLAG_LT},
		{"gt", 2, 1, FLAG_GT},
		{"eq", 7, 7, FLAG_EQ},
	}

	for _, entry := range table {
		cpu := NewCpu()
		// Pre-set all flags; CMP must leave exactly one.
		cpu.Fl = FLAG_LT | FLAG_GT | FLAG_EQ
		cpu.Register[0] = entry.a
		cpu.Register[1] = entry.b

		err := cpu.alu(ALU_OP_CMP, 0, 1)
		assert.NoError(err, entry.name)
		assert.Equal(entry.fl, cpu.Fl, entry.name)
		assert.Equal(entry.a, cpu.Register[0], entry.name)
		assert.Equal(entry.b, cpu.Register[1], entry.name)
	}
}

func TestAlu_DivideByZero(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Register[0] = 8

	err := cpu.alu(ALU_OP_DIV, 0, 1)
	assert.ErrorIs(err, ErrDivideByZero)
	assert.Equal(uint8(8), cpu.Register[0])
}

func TestAlu_InvalidOp(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	err := cpu.alu(AluOp(99), 0, 1)
	assert.ErrorIs(err, ErrAluInvalid)
}

func TestAlu_InvalidRegister(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	err := cpu.alu(ALU_OP_ADD, 8, 0)
	assert.ErrorIs(err, ErrRegisterInvalid)

	err = cpu.alu(ALU_OP_ADD, 0, 200)
	assert.ErrorIs(err, ErrRegisterInvalid)
}

func TestFlags_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("---", Flags(0).String())
	assert.Equal("--E", FLAG_EQ.String())
	assert.Equal("-G-", FLAG_GT.String())
	assert.Equal("L--", FLAG_LT.String())
	assert.Equal("LGE", (FLAG_LT | FLAG_GT | FLAG_EQ).String())
}
