package optim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripsNonBrainfuckBytes(t *testing.T) {
	require.Equal(t, "[].,", Optimize("+-><[].,# comment\nwhitespace too"))
}

func TestCancelsOppositeMoves(t *testing.T) {
	require.Equal(t, "", Optimize("><"))
	require.Equal(t, "", Optimize("<>"))
}

func TestCancelsOppositeIncrements(t *testing.T) {
	require.Equal(t, "", Optimize("+-"))
	require.Equal(t, "", Optimize("-+"))
}

func TestCollapsesRedundantZeroLoop(t *testing.T) {
	require.Equal(t, "[-]", Optimize("[-][-]"))
}

func TestRewritesToFixedPoint(t *testing.T) {
	// Each pair cancels, then the newly-adjacent pair cancels too.
	require.Equal(t, "", Optimize("+><-"))
}

func TestLeavesUnrelatedCodeAlone(t *testing.T) {
	code := "+++[>++<-]>."
	require.Equal(t, code, Optimize(code))
}
