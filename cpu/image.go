package cpu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// The .ls8 image format is one instruction-or-operand byte per line,
// written as a binary literal. '#' starts a comment, and lines that are
// blank after comment stripping are skipped. Bytes load into RAM in file
// order starting at address 0.

// ReadImage parses a .ls8 text image into a byte image.
func ReadImage(in io.Reader) (image []uint8, err error) {
	scanner := bufio.NewScanner(in)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		line, _, _ = strings.Cut(line, "#")
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		value, verr := strconv.ParseUint(line, 2, 8)
		if verr != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: ErrParseByte(line)}
			return
		}

		if len(image) == RAM_SIZE {
			err = ErrImageTooLarge
			return
		}

		image = append(image, uint8(value))
	}
	err = scanner.Err()

	return
}

// WriteImage emits a program listing in the .ls8 text image format, with
// the source words of each line as a trailing comment on its first byte.
func WriteImage(out io.Writer, prog *Program) (err error) {
	for _, line := range prog.Lines {
		for n, value := range line.Bytes {
			comment := ""
			if n == 0 && len(line.Words) != 0 {
				comment = " # " + strings.Join(line.Words, " ")
			}
			_, err = fmt.Fprintf(out, "%08b%v\n", value, comment)
			if err != nil {
				return
			}
		}
	}

	return
}
