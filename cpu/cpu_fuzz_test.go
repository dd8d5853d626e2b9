package cpu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzStep(f *testing.F) {
	f.Add([]byte{uint8(LDI), 0, 8, uint8(PRN), 0, uint8(HLT)}, false)
	f.Add([]byte{0xff, 0xff, 0xff, 0xff}, false)
	f.Add([]byte{uint8(CALL), 9, uint8(RET)}, true)
	f.Add([]byte{uint8(CMP), 0, 1, uint8(JEQ), 2}, false)

	f.Fuzz(func(t *testing.T, data []byte, strict bool) {
		assert := assert.New(t)

		cpu := NewCpu()
		cpu.Strict = strict
		cpu.Output = &bytes.Buffer{}

		if len(data) > RAM_SIZE {
			data = data[:RAM_SIZE]
		}
		err := cpu.Load(data)
		assert.NoError(err)

		for range 64 {
			if cpu.Halted {
				break
			}
			err = cpu.Step()
			if err != nil {
				// Every fatal error names the faulting instruction.
				assert.ErrorIs(err, ErrInstruction{})
				break
			}
		}

		// The stack pointer and program counter are bytes, so RAM
		// indexing can never escape the address space.
		assert.Less(int(cpu.Pc), RAM_SIZE)
		assert.Less(int(cpu.Register[SP]), RAM_SIZE)

		if err != nil && errors.Is(err, ErrStackUnderflow) {
			assert.True(strict)
		}
	})
}
