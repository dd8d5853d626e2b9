// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Assembler is a two pass assembler for LS-8 mnemonic source.
//
// Source lines are an optional `label:`, then a mnemonic and its comma or
// space separated operands. Operands are registers r0-r7 (sp aliases r7),
// except the LDI immediate, which may be a numeric literal in any base, a
// .equ name, a label, or a compile-time $(...) expression. Comments start
// with '#' or ';'. Labels are patched in a second (link) pass, so forward
// references are fine; $(...) expressions only see labels already defined.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of assembled lines.

	Label  map[string]int    // Map of labels to load addresses.
	Equate map[string]string // Map of equates.

	addr int // Next load address.
}

// registerMap is a map of register names to register indexes.
var registerMap = map[string]uint8{
	"r0": 0,
	"r1": 1,
	"r2": 2,
	"r3": 3,
	"r4": 4,
	"r5": 5,
	"r6": 6,
	"r7": 7,
	"sp": SP,
}

// Parse assembles mnemonic source into a program listing.
func (asm *Assembler) Parse(in io.Reader) (prog *Program, err error) {
	asm.Lines = nil
	asm.Label = make(map[string]int, 16)
	asm.Equate = make(map[string]string, 16)
	asm.addr = 0

	scanner := bufio.NewScanner(in)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		perr := asm.parseLine(line, lineno)
		if perr != nil {
			err = ErrSyntax{LineNo: lineno, Line: strings.TrimSpace(line), Err: perr}
			return
		}
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	err = asm.link()
	if err != nil {
		return
	}

	prog = &Program{Lines: asm.Lines}

	return
}

// parenEval does compile-time $(...) evaluations. The machine defines,
// all numeric equates, and every label defined so far are predeclared.
func (asm *Assembler) parenEval(expr string) (value uint8, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	pred := starlark.StringDict{}
	for key, str := range Defines() {
		value64, verr := strconv.ParseUint(str, 0, 16)
		if verr != nil {
			continue
		}
		pred[key] = starlark.MakeInt(int(value64))
	}
	for key, str := range asm.Equate {
		value64, verr := strconv.ParseUint(str, 0, 16)
		if verr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(value64))
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint8(st_int64)

	return
}

// parseLine parses a single source line.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line, _, _ = strings.Cut(line, "#")
	line, _, _ = strings.Cut(line, ";")

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	// Check for equates next
	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Verbose {
			log.Printf("asm: %v = 0x%02x", label, asm.addr)
		}
		asm.Label[label] = asm.addr
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return asm.parseWords(words, lineno)
}

// parseWords assembles a mnemonic and its operands into a Line.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	op, ok := mnemonicMap[strings.ToLower(words[0])]
	if !ok {
		err = ErrOpcodeMissing
		return
	}
	_, wired := branchTable[op]
	if !wired {
		// Defined in the instruction set, but not implemented.
		err = ErrOpcodeInvalid
		return
	}

	operands := words[1:]
	need := op.Operands()
	if len(operands) < need {
		err = ErrOperandMissing
		return
	}
	if len(operands) > need {
		err = ErrOpcodeExtraArgs
		return
	}

	line := Line{
		LineNo: lineno,
		Addr:   asm.addr,
		Words:  words,
		Bytes:  []uint8{uint8(op)},
	}

	for n, word := range operands {
		if op == LDI && n == 1 {
			// The LDI immediate: a value or a label reference.
			var value uint8
			var label string
			value, label, err = asm.valueOrLabel(word)
			if err != nil {
				return
			}
			line.LinkLabel = label
			line.Bytes = append(line.Bytes, value)
		} else {
			reg, ok := registerMap[strings.ToLower(word)]
			if !ok {
				err = ErrRegisterWanted
				return
			}
			line.Bytes = append(line.Bytes, reg)
		}
	}

	if asm.Verbose {
		log.Printf("asm: %3d 0x%02x % x %v", lineno, line.Addr, line.Bytes, words)
	}

	asm.Lines = append(asm.Lines, line)
	asm.addr += len(line.Bytes)

	return
}

// valueOrLabel resolves an immediate word to a value, or defers it to the
// link pass as a label reference.
func (asm *Assembler) valueOrLabel(word string) (value uint8, label string, err error) {
	value64, verr := strconv.ParseUint(word, 0, 8)
	if verr == nil {
		value = uint8(value64)
		return
	}

	if isIdentifier(word) {
		label = word
		return
	}

	err = ErrParseNumber(word)

	return
}

func isIdentifier(word string) bool {
	for n, r := range word {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			// pass
		case r >= '0' && r <= '9':
			if n == 0 {
				return false
			}
		default:
			return false
		}
	}

	return len(word) != 0
}

// link patches label references now that all labels are known.
func (asm *Assembler) link() (err error) {
	for n := range asm.Lines {
		line := &asm.Lines[n]
		if len(line.LinkLabel) == 0 {
			continue
		}

		addr, ok := asm.Label[line.LinkLabel]
		if !ok {
			err = ErrSyntax{LineNo: line.LineNo, Line: strings.Join(line.Words, " "), Err: ErrLabelMissing(line.LinkLabel)}
			return
		}

		line.Bytes[len(line.Bytes)-1] = uint8(addr)
	}

	return
}
