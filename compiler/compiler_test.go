package compiler

import (
	"strings"
	"testing"

	"github.com/skx/lirbf/interp"
	"github.com/skx/lirbf/optim"
	"github.com/stretchr/testify/require"
)

// runLIR compiles src, optionally running it through the optimizer, and
// returns whatever the program printed.
func runLIR(t *testing.T, src string, optimizeIt bool) string {
	t.Helper()

	c := New(src)
	bf, err := c.Compile()
	require.NoError(t, err)

	if optimizeIt {
		bf = optim.Optimize(bf)
	}

	var out strings.Builder
	in := interp.New(false)
	err = in.Run(bf, strings.NewReader(""), &out)
	require.NoError(t, err)
	return out.String()
}

func TestCompileEmptyProgram(t *testing.T) {
	out, err := New("").Compile()
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestCompileBogusPrograms(t *testing.T) {
	tests := []string{
		"set x 999",
		"while_nz x",
		"end",
		"match k 2 1\n inc a\n end",
	}

	for _, src := range tests {
		_, err := New(src).Compile()
		require.Error(t, err, "expected an error compiling %q", src)
	}
}

func TestSetAndPrintC(t *testing.T) {
	out := runLIR(t, `
		set x 65
		printc x
	`, false)
	require.Equal(t, "65", out)
}

func TestPrintCZeroPrintsNothing(t *testing.T) {
	out := runLIR(t, `
		set x 0
		printc x
	`, false)
	require.Empty(t, out)
}

func TestPrintCThreeDigitsWithZeroOperands(t *testing.T) {
	out := runLIR(t, `
		set x 100
		printc x
	`, false)
	require.Equal(t, "100", out)
}

func TestPrint(t *testing.T) {
	out := runLIR(t, `
		set x 65
		print x
	`, false)
	require.Equal(t, "A", out)
}

func TestPrintMsg(t *testing.T) {
	out := runLIR(t, `print_msg "hi"`, false)
	require.Equal(t, "hi", out)
}

func TestAdd(t *testing.T) {
	out := runLIR(t, `
		set a 7
		set b 3
		add a b
		print a
	`, false)
	require.Equal(t, string(rune(10)), out)
}

func TestWhileNotZeroCountsDown(t *testing.T) {
	out := runLIR(t, `
		set n 5
		set one 1
		while_nz n
			printc n
			print_msg " "
			sub n one
		end
	`, false)
	require.Equal(t, "5 4 3 2 1 ", out)
}

func TestIfEqualBranches(t *testing.T) {
	out := runLIR(t, `
		set a 3
		set b 3
		if_eq a b
			print_msg "eq"
		end
	`, false)
	require.Equal(t, "eq", out)
}

func TestIfNotEqualBranches(t *testing.T) {
	out := runLIR(t, `
		set a 3
		set b 4
		if_neq a b
			print_msg "neq"
		end
	`, false)
	require.Equal(t, "neq", out)
}

func TestMatchDispatchesToRightCase(t *testing.T) {
	src := `
		set k 2
		match k 1 2 3
			print_msg "default"
		case
			print_msg "three"
		case
			print_msg "two"
		case
			print_msg "one"
		end
	`
	out := runLIR(t, src, false)
	require.Equal(t, "two", out)
}

func TestMatchFallsThroughToDefault(t *testing.T) {
	src := `
		set k 9
		match k 1 2 3
			print_msg "default"
		case
			print_msg "three"
		case
			print_msg "two"
		case
			print_msg "one"
		end
	`
	out := runLIR(t, src, false)
	require.Equal(t, "default", out)
}

func TestPushPopRoundTrips(t *testing.T) {
	out := runLIR(t, `
		set a 1
		set b 2
		push a
		push b
		pop a
		pop b
		print a
		print_msg " "
		print b
	`, false)
	require.Equal(t, string(rune(2))+" "+string(rune(1)), out)
}

func TestCompareResults(t *testing.T) {
	tests := []struct {
		a, b     byte
		expected byte
	}{
		{3, 3, 0},
		{2, 3, 1},
		{4, 3, 2},
		{0, 0, 0},
		{0, 100, 1},
		{5, 0, 2},
	}

	for _, tc := range tests {
		out := runLIR(t, `
			set a `+itoa(tc.a)+`
			set b `+itoa(tc.b)+`
			cmp a b res
			print res
		`, false)
		require.Equal(t, string(rune(tc.expected)), out)
	}
}

func itoa(b byte) string {
	if b == 0 {
		return "0"
	}
	var digits []byte
	for b > 0 {
		digits = append([]byte{'0' + b%10}, digits...)
		b /= 10
	}
	return string(digits)
}

// Optimizing the generated brainfuck must never change what the
// program prints (spec.md §8's round-trip property).
func TestOptimizerPreservesObservableBehaviour(t *testing.T) {
	src := `
		set n 5
		set one 1
		while_nz n
			printc n
			sub n one
		end
		print_msg " done"
	`

	raw := runLIR(t, src, false)
	optimized := runLIR(t, src, true)
	require.Equal(t, raw, optimized)
}

func TestDebugSentinelLeavesTempsZero(t *testing.T) {
	c := New(`
		set a 9
		set b 4
		div a b rem quot
		cmp a b res
		mul a b
		printc a
	`)
	c.SetDebug(true)
	bf, err := c.Compile()
	require.NoError(t, err)

	var out strings.Builder
	in := interp.New(true)
	err = in.Run(bf, strings.NewReader(""), &out)
	require.NoError(t, err, "debug sentinel should never fire on well-formed codegen output")
}
