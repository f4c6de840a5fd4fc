package compiler

import (
	"testing"

	"github.com/skx/lirbf/diagnostics"
	"github.com/skx/lirbf/instructions"
	"github.com/stretchr/testify/require"
)

func TestVarMapFirstAppearanceOrder(t *testing.T) {
	prog := parseOK(t, `
		set b 1
		set a 2
		add a b
	`)

	vm, err := analyze(prog)
	require.NoError(t, err)
	require.Equal(t, 2, vm.Count())
	require.Equal(t, 0, vm.Index("b"))
	require.Equal(t, 1, vm.Index("a"))
}

func TestVarMapRepeatedNamesShareIndex(t *testing.T) {
	prog := parseOK(t, `
		set a 1
		inc a
		inc a
	`)

	vm, err := analyze(prog)
	require.NoError(t, err)
	require.Equal(t, 1, vm.Count())
}

func TestInvalidIdentifierRejected(t *testing.T) {
	prog := []instructions.Instruction{
		{Kind: instructions.Set, A: "9bad", Const: 1, Line: 1},
	}
	_, err := analyze(prog)
	require.Error(t, err)
}

func TestBlockBalanceOK(t *testing.T) {
	prog := parseOK(t, `
		set x 1
		set a 0
		set b 0
		while_nz x
			if_eq a b
				inc a
			end
		end
	`)
	_, err := analyze(prog)
	require.NoError(t, err)
}

func TestBlockBalanceUnclosed(t *testing.T) {
	prog := parseOK(t, `
		set x 1
		while_nz x
			dec x
	`)
	_, err := analyze(prog)
	require.Error(t, err)
}

func TestBlockBalanceStrayEnd(t *testing.T) {
	prog := parseOK(t, `end`)
	_, err := analyze(prog)
	require.Error(t, err)
}

func TestMatchOpensBlock(t *testing.T) {
	prog := parseOK(t, `
		set k 1
		match k 1 2
			inc a
		case
			inc b
		case
			inc c
		end
	`)
	_, err := analyze(prog)
	require.NoError(t, err)
}

func TestUseBeforeDefRejected(t *testing.T) {
	prog := parseOK(t, `print a`)
	_, err := analyze(prog)
	require.Error(t, err)

	var diagErr *diagnostics.Error
	require.ErrorAs(t, err, &diagErr)
	require.Equal(t, diagnostics.VariableMustBeAssigned, diagErr.Kind)
}

func TestIncDoesNotRequirePriorDef(t *testing.T) {
	prog := parseOK(t, `
		inc a
		print a
	`)
	_, err := analyze(prog)
	require.NoError(t, err)
}
