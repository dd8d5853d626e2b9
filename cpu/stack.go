package cpu

// The stack lives in RAM and grows downward from STACK_BASE. Register[SP]
// always holds the address of the current top of stack. By default the
// stack pointer wraps modulo 256 without bounds checks, matching the
// hardware; Cpu.Strict turns overflow and underflow into fatal errors.

// pushValue decrements the stack pointer and writes value at the new top.
func (cpu *Cpu) pushValue(value uint8) (err error) {
	if cpu.Strict && cpu.Register[SP] == 0 {
		err = ErrStackOverflow
		return
	}

	cpu.Register[SP]--
	cpu.Ram[cpu.Register[SP]] = value

	return
}

// popValue reads the top of stack and increments the stack pointer.
func (cpu *Cpu) popValue() (value uint8, err error) {
	if cpu.Strict && cpu.Register[SP] == STACK_BASE {
		err = ErrStackUnderflow
		return
	}

	value = cpu.Ram[cpu.Register[SP]]
	cpu.Register[SP]++

	return
}

func (cpu *Cpu) psh(a, b uint8) (action Action, err error) {
	value, err := cpu.getRegister(a)
	if err != nil {
		return
	}

	err = cpu.pushValue(value)

	return
}

func (cpu *Cpu) pop(a, b uint8) (action Action, err error) {
	value, err := cpu.popValue()
	if err != nil {
		return
	}

	err = cpu.setRegister(a, value)

	return
}

// call pushes the address of the instruction after CALL and its operand,
// then transfers control to the address held in the named register.
func (cpu *Cpu) call(a, b uint8) (action Action, err error) {
	target, err := cpu.getRegister(a)
	if err != nil {
		return
	}

	err = cpu.pushValue(cpu.Pc + 2)
	if err != nil {
		return
	}

	cpu.Pc = target
	action = ACTION_JUMP

	return
}

func (cpu *Cpu) ret(a, b uint8) (action Action, err error) {
	value, err := cpu.popValue()
	if err != nil {
		return
	}

	cpu.Pc = value
	action = ACTION_JUMP

	return
}
