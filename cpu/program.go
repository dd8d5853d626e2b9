package cpu

import (
	"iter"
)

// Line is one assembled source line: its load address, the bytes it
// emitted, and the source words it came from.
type Line struct {
	LineNo    int      // Source line number.
	Addr      int      // Load address of the first byte.
	Words     []string // Source words, comment stripped.
	Bytes     []uint8  // Emitted bytes.
	LinkLabel string   // Label referenced by the immediate, patched at link.
}

// Program is an assembled listing.
type Program struct {
	Lines []Line
}

// Debug is a source location for an address within a program.
type Debug struct {
	*Line
	Index int
}

// ImageProgram wraps a raw byte image as a listing with no source lines.
func ImageProgram(image []uint8) (prog *Program) {
	prog = &Program{}
	if len(image) != 0 {
		prog.Lines = []Line{{Addr: 0, Bytes: image}}
	}

	return
}

// Debug locates the source line covering an address.
func (prog *Program) Debug(addr uint8) (dbg Debug) {
	for n, line := range prog.Lines {
		if int(addr) >= line.Addr && int(addr) < line.Addr+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(addr) - line.Addr,
			}
			break
		}
	}

	return
}

// Bytes iterates the program image in address order.
func (prog *Program) Bytes() iter.Seq2[uint8, uint8] {
	return func(yield func(addr uint8, value uint8) bool) {
		for _, line := range prog.Lines {
			addr := uint8(line.Addr)
			for n, value := range line.Bytes {
				if !yield(addr+uint8(n), value) {
					return
				}
			}
		}
	}
}

// Binary flattens the listing into a loadable image.
func (prog *Program) Binary() (image []uint8) {
	for _, value := range prog.Bytes() {
		image = append(image, value)
	}

	return
}
