// Package optim is a brainfuck peephole optimizer: a small set of
// semantically-neutral local rewrites, applied repeatedly to a fixed
// point. See spec.md §4.7.
package optim

import "strings"

// bfChars is the classical 8-symbol brainfuck alphabet; everything
// else (comments, the debug sentinel) is stripped before rewriting.
const bfChars = "+-><[].,"

// Optimize strips non-brainfuck bytes from code, then repeatedly
// deletes adjacent inverse pairs and collapses redundant zero-loops
// until no rule applies. Every rewrite is a no-op identity on any
// program observed only through `.` (spec.md §8, optimizer soundness).
func Optimize(code string) string {
	code = stripNonBrainfuck(code)

	for {
		next := rewriteOnce(code)
		if next == code {
			return next
		}
		code = next
	}
}

func stripNonBrainfuck(code string) string {
	var sb strings.Builder
	for _, c := range code {
		if strings.ContainsRune(bfChars, c) {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

func rewriteOnce(code string) string {
	code = strings.ReplaceAll(code, "><", "")
	code = strings.ReplaceAll(code, "<>", "")
	code = strings.ReplaceAll(code, "+-", "")
	code = strings.ReplaceAll(code, "-+", "")
	code = strings.ReplaceAll(code, "[-][-]", "[-]")
	return code
}
