package cpu

// AluOp identifies an ALU operation.
type AluOp int

const (
	ALU_OP_ADD = AluOp(0)  // add
	ALU_OP_SUB = AluOp(1)  // sub
	ALU_OP_MUL = AluOp(2)  // mul
	ALU_OP_DIV = AluOp(3)  // div
	ALU_OP_AND = AluOp(4)  // and
	ALU_OP_OR  = AluOp(5)  // or
	ALU_OP_XOR = AluOp(6)  // xor
	ALU_OP_SHL = AluOp(7)  // shl
	ALU_OP_INC = AluOp(8)  // inc
	ALU_OP_DEC = AluOp(9)  // dec
	ALU_OP_CMP = AluOp(10) // cmp
)

// alu performs op against registers a and b. Binary results land in
// register a; register b is never written. All results wrap modulo 256.
// DIV truncates, and division by zero is fatal. CMP writes no register
// and instead replaces the comparison flags with exactly one of LT, GT,
// or EQ.
//
// An unrecognized op is an internal consistency failure between the
// branch table and the ALU, reported as ErrAluInvalid. It is distinct
// from the non-fatal invalid-instruction path in Step.
func (cpu *Cpu) alu(op AluOp, a, b uint8) (err error) {
	va, err := cpu.getRegister(a)
	if err != nil {
		return
	}

	var out uint8

	switch op {
	case ALU_OP_INC:
		out = va + 1
	case ALU_OP_DEC:
		out = va - 1
	default:
		// Binary operations read the second register.
		var vb uint8
		vb, err = cpu.getRegister(b)
		if err != nil {
			return
		}

		switch op {
		case ALU_OP_ADD:
			out = va + vb
		case ALU_OP_SUB:
			out = va - vb
		case ALU_OP_MUL:
			out = va * vb
		case ALU_OP_DIV:
			if vb == 0 {
				err = ErrDivideByZero
				return
			}
			out = va / vb
		case ALU_OP_AND:
			out = va & vb
		case ALU_OP_OR:
			out = va | vb
		case ALU_OP_XOR:
			out = va ^ vb
		case ALU_OP_SHL:
			// Shifts of 8 or more drain to zero.
			out = va << vb
		case ALU_OP_CMP:
			cpu.Fl &^= FLAG_LT | FLAG_GT | FLAG_EQ
			switch {
			case va < vb:
				cpu.Fl |= FLAG_LT
			case va > vb:
				cpu.Fl |= FLAG_GT
			default:
				cpu.Fl |= FLAG_EQ
			}
			return
		default:
			err = ErrAluInvalid
			return
		}
	}

	cpu.Register[a] = out

	return
}

func (cpu *Cpu) add(a, b uint8) (action Action, err error) {
	err = cpu.alu(ALU_OP_ADD, a, b)
	return
}

func (cpu *Cpu) sub(a, b uint8) (action Action, err error) {
	err = cpu.alu(ALU_OP_SUB, a, b)
	return
}

func (cpu *Cpu) mul(a, b uint8) (action Action, err error) {
	err = cpu.alu(ALU_OP_MUL, a, b)
	return
}

func (cpu *Cpu) div(a, b uint8) (action Action, err error) {
	err = cpu.alu(ALU_OP_DIV, a, b)
	return
}

func (cpu *Cpu) and(a, b uint8) (action Action, err error) {
	err = cpu.alu(ALU_OP_AND, a, b)
	return
}

func (cpu *Cpu) or(a, b uint8) (action Action, err error) {
	err = cpu.alu(ALU_OP_OR, a, b)
	return
}

func (cpu *Cpu) xor(a, b uint8) (action Action, err error) {
	err = cpu.alu(ALU_OP_XOR, a, b)
	return
}

func (cpu *Cpu) shl(a, b uint8) (action Action, err error) {
	err = cpu.alu(ALU_OP_SHL, a, b)
	return
}

func (cpu *Cpu) inc(a, b uint8) (action Action, err error) {
	err = cpu.alu(ALU_OP_INC, a, b)
	return
}

func (cpu *Cpu) dec(a, b uint8) (action Action, err error) {
	err = cpu.alu(ALU_OP_DEC, a, b)
	return
}

func (cpu *Cpu) cmp(a, b uint8) (action Action, err error) {
	err = cpu.alu(ALU_OP_CMP, a, b)
	return
}
