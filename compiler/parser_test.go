package compiler

import (
	"testing"

	"github.com/skx/lirbf/instructions"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, src string) []instructions.Instruction {
	t.Helper()
	prog, err := newParser(src).parse()
	require.NoError(t, err)
	return prog
}

func TestParseSimpleInstructions(t *testing.T) {
	prog := parseOK(t, `
		set x 10
		inc x
		dec x
		inc_by x 5
		dec_by x 3
		copy x y
		add x y
		sub x y
		mul x y
	`)

	require.Len(t, prog, 9)
	require.Equal(t, instructions.Set, prog[0].Kind)
	require.Equal(t, "x", prog[0].A)
	require.Equal(t, byte(10), prog[0].Const)
	require.Equal(t, instructions.Copy, prog[5].Kind)
	require.Equal(t, "x", prog[5].A)
	require.Equal(t, "y", prog[5].B)
}

func TestParseDivAndCmp(t *testing.T) {
	prog := parseOK(t, `
		div a b r q
		cmp a b r
	`)
	require.Len(t, prog, 2)
	require.Equal(t, instructions.Div, prog[0].Kind)
	require.Equal(t, "r", prog[0].Res)
	require.Equal(t, "q", prog[0].Quot)
	require.Equal(t, instructions.Compare, prog[1].Kind)
}

func TestParseBlocks(t *testing.T) {
	prog := parseOK(t, `
		while_nz x
			dec x
		end
		if_eq a b
			inc a
		end
	`)
	require.Len(t, prog, 6)
	require.Equal(t, instructions.WhileNotZero, prog[0].Kind)
	require.Equal(t, instructions.End, prog[2].Kind)
}

func TestParseMatch(t *testing.T) {
	prog := parseOK(t, `
		match k 1 2 'c'
			inc a
		case
			inc b
		case
			inc c
		end
	`)
	require.Equal(t, instructions.Match, prog[0].Kind)
	require.Equal(t, []byte{1, 2, 'c'}, prog[0].Cases)
	require.Equal(t, instructions.Case, prog[2].Kind)
	require.Equal(t, instructions.Case, prog[4].Kind)
	require.Equal(t, instructions.End, prog[6].Kind)
}

func TestParsePrintMsgAndRaw(t *testing.T) {
	prog := parseOK(t, `
		print_msg "hello\n"
		raw "+++"
	`)
	require.Equal(t, "hello\n", prog[0].Str)
	require.Equal(t, "+++", prog[1].Str)
}

func TestParsePushPop(t *testing.T) {
	prog := parseOK(t, `
		push a
		pop a
	`)
	require.Equal(t, instructions.Push, prog[0].Kind)
	require.Equal(t, instructions.Pop, prog[1].Kind)
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"+",
		"copy a $",
		"set x",
		"set x 300",
		"inc",
		"unknown a b",
	}

	for _, src := range tests {
		_, err := newParser(src).parse()
		require.Error(t, err, "expected an error for %q", src)
	}
}

func TestParseEmptyProgram(t *testing.T) {
	prog := parseOK(t, "")
	require.Empty(t, prog)
}
