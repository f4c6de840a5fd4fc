// Package interp is a small brainfuck interpreter: a 30,000-cell
// wrapping byte tape, jump targets precomputed once up front, and a
// debug sentinel hook used by the compiler's test-mode output. See
// spec.md §4.6.
package interp

import (
	"io"

	"github.com/skx/lirbf/diagnostics"
)

// tapeSize is the fixed number of cells on the tape.
const tapeSize = 30000

// maxInstructions bounds how many primitive BF operations a run may
// execute, guarding against runaway loops in malformed programs.
const maxInstructions = 10_000_000

// tempPoolSize is how many cells, counting from cell 0, the debug
// sentinel asserts are zero. This interpreter's compiler places its
// temp pool at the low end of the tape (spec.md §3's "pack temps
// before user variables" layout), so the assertion checks cells
// 0..tempPoolSize-1 rather than the tape's far end.
const tempPoolSize = 17

// Interpreter executes brainfuck text against an input/output pair.
type Interpreter struct {
	tape             [tapeSize]byte
	pointer          int
	instructionsRan  int
	debug            bool
}

// New creates an Interpreter. debug enables the `#` sentinel check.
func New(debug bool) *Interpreter {
	return &Interpreter{debug: debug}
}

// Run executes code, reading `,` input from in and writing `.` output
// to out. It returns a diagnostics.Error (InterpreterFault) if the
// instruction cap is exceeded, a debug sentinel assertion fails, or
// writing output fails.
func (in *Interpreter) Run(code string, input io.Reader, output io.Writer) error {
	ops := []rune(code)
	jumps := computeJumps(ops)

	buf := make([]byte, 1)

	for ip := 0; ip < len(ops); ip++ {
		in.instructionsRan++
		if in.instructionsRan > maxInstructions {
			return diagnostics.Newf(diagnostics.InterpreterFault,
				"exceeded instruction cap of %d at index %d", maxInstructions, ip)
		}

		switch ops[ip] {
		case '>':
			in.pointer = wrap(in.pointer+1, tapeSize)
		case '<':
			in.pointer = wrap(in.pointer-1, tapeSize)
		case '+':
			in.tape[in.pointer]++
		case '-':
			in.tape[in.pointer]--
		case '.':
			if _, err := output.Write(in.tape[in.pointer : in.pointer+1]); err != nil {
				return diagnostics.Newf(diagnostics.InterpreterFault,
					"writing output at index %d: %s", ip, err)
			}
		case ',':
			n, err := input.Read(buf)
			if err != nil && err != io.EOF {
				return diagnostics.Newf(diagnostics.InterpreterFault,
					"reading input at index %d: %s", ip, err)
			}
			if n == 0 {
				in.tape[in.pointer] = 0
			} else {
				in.tape[in.pointer] = buf[0]
			}
		case '[':
			if in.tape[in.pointer] == 0 {
				ip = jumps[ip]
			}
		case ']':
			if in.tape[in.pointer] != 0 {
				ip = jumps[ip]
			}
		case '#':
			if in.debug {
				if cell, value, ok := in.firstNonzeroTemp(); ok {
					return diagnostics.Newf(diagnostics.InterpreterFault,
						"debug sentinel at instruction %d: temp cell %d is %d, want 0",
						ip, cell, value)
				}
			}
		default:
			// Any other byte (commentary, whitespace) is inert.
		}
	}

	return nil
}

// firstNonzeroTemp reports the first nonzero cell in 0..tempPoolSize-1,
// if any.
func (in *Interpreter) firstNonzeroTemp() (cell int, value byte, found bool) {
	for i := 0; i < tempPoolSize; i++ {
		if in.tape[i] != 0 {
			return i, in.tape[i], true
		}
	}
	return 0, 0, false
}

// computeJumps precomputes, for every '[' and ']' in ops, the index
// of its matching bracket.
func computeJumps(ops []rune) []int {
	jumps := make([]int, len(ops))
	var stack []int

	for i, c := range ops {
		switch c {
		case '[':
			stack = append(stack, i)
		case ']':
			if len(stack) > 0 {
				start := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				jumps[start] = i
				jumps[i] = start
			}
		}
	}

	return jumps
}

// wrap keeps a tape pointer within [0, size), wrapping past either end.
func wrap(p, size int) int {
	if p < 0 {
		return p + size
	}
	if p >= size {
		return p - size
	}
	return p
}
