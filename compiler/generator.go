// generator.go is the codegen core: head tracking, the temp-cell
// protocol and the helper vocabulary (zero/set/copy/add/sub/mul/div/
// compare/printc/print_msg) that every higher-level emission in
// control.go, match.go and stackops.go is built from. See spec.md §4.3.
//
// Helpers are expressed over cell, an absolute tape index, so the same
// machinery serves both user variables and the seventeen temp cells:
// a helper that says it clobbers "temp 3" and one that operates on
// a user variable are the same code underneath.

package compiler

import (
	"fmt"
	"strings"

	"github.com/skx/lirbf/diagnostics"
	"github.com/skx/lirbf/instructions"
	"github.com/skx/lirbf/stack"
)

// numTemps is the size of the reserved scratch pool ("0".."16").
const numTemps = 17

// cell is an absolute tape index. Temps occupy 0..16; user variables
// occupy 17..16+V, placing the whole temp pool at a fixed offset from
// every variable, so goto arithmetic is a single subtraction.
type cell int

// frame is a block-stack entry: the opener's kind and the operands the
// matching End needs to emit the closing fragment.
type frame struct {
	kind instructions.Kind
	a, b string
	k    byte

	// cases and caseIdx are used only by Match frames (match.go).
	cases   []byte
	caseIdx int
}

// Generator holds codegen's mutable state: the emitted BF buffer, the
// head position, the block stack, and a read-only reference to the
// analyzer's VarMap.
type Generator struct {
	buf    strings.Builder
	head   cell
	blocks *stack.Stack[frame]
	vm     *VarMap
	debug  bool
}

// newGenerator creates a Generator over an already-analyzed program.
func newGenerator(vm *VarMap, debug bool) *Generator {
	return &Generator{blocks: stack.New[frame](), vm: vm, debug: debug}
}

// temp returns the cell for reserved scratch name ("0".."16").
func temp(name string) cell {
	var n int
	fmt.Sscanf(name, "%d", &n)
	return cell(n)
}

// v returns the cell for user variable name.
func (g *Generator) v(name string) cell {
	return cell(numTemps) + cell(g.vm.Index(name))
}

// endOfVars returns the cell immediately past the last user variable,
// the base of the push/pop bump stack.
func (g *Generator) endOfVars() cell {
	return cell(numTemps) + cell(g.vm.Count())
}

// emit appends raw BF bytes to the buffer without touching head.
func (g *Generator) emit(s string) {
	g.buf.WriteString(s)
}

// goto moves the head to c, emitting the necessary run of >/< .
func (g *Generator) goTo(c cell) {
	delta := int(c - g.head)
	if delta > 0 {
		g.emit(strings.Repeat(">", delta))
	} else if delta < 0 {
		g.emit(strings.Repeat("<", -delta))
	}
	g.head = c
}

// sentinel emits the debug instruction-separator byte. The
// interpreter's debug hook asserts every temp cell is zero whenever
// it sees one.
func (g *Generator) sentinel() {
	if g.debug {
		g.emit("#")
	}
}

// --- helpers (spec.md §4.3), over absolute cells ---------------------------

// zero sets c to 0.
func (g *Generator) zero(c cell) {
	g.goTo(c)
	g.emit("[-]")
}

// set assigns the constant k to c.
func (g *Generator) set(c cell, k byte) {
	g.zero(c)
	g.incBy(c, k)
}

func (g *Generator) incBy(c cell, k byte) {
	g.goTo(c)
	g.emit(strings.Repeat("+", int(k)))
}

func (g *Generator) decBy(c cell, k byte) {
	g.goTo(c)
	g.emit(strings.Repeat("-", int(k)))
}

// moveValue sets dst = src, src = 0.
func (g *Generator) moveValue(src, dst cell) {
	g.zero(dst)
	g.goTo(src)
	g.emit("[-")
	g.goTo(dst)
	g.emit("+")
	g.goTo(src)
	g.emit("]")
}

// copy is a nondestructive copy: dst = src, src preserved. Uses temps
// 0 and 1 as scratch; both are zero on entry and exit.
func (g *Generator) copy(src, dst cell) {
	t0, t1 := temp("0"), temp("1")

	g.zero(dst)
	g.goTo(src)
	g.emit("[-")
	g.goTo(t0)
	g.emit("+")
	g.goTo(t1)
	g.emit("+")
	g.goTo(src)
	g.emit("]")

	g.moveValue(t0, src)
	g.moveValue(t1, dst)
}

// accumulate drains src into dst using op ('+' to add, '-' to
// subtract), src preserved, dst accumulated. Temps 0 and 1 are
// scratch, zero on entry and exit.
func (g *Generator) accumulate(src, dst cell, op string) {
	t0, t1 := temp("0"), temp("1")

	g.goTo(src)
	g.emit("[-")
	g.goTo(t0)
	g.emit("+")
	g.goTo(t1)
	g.emit("+")
	g.goTo(src)
	g.emit("]")

	g.moveValue(t0, src)

	g.goTo(t1)
	g.emit("[-")
	g.goTo(dst)
	g.emit(op)
	g.goTo(t1)
	g.emit("]")
}

// add sets dst += src, src preserved.
func (g *Generator) add(dst, src cell) {
	g.accumulate(src, dst, "+")
}

// sub sets dst -= src, src preserved.
func (g *Generator) sub(dst, src cell) {
	g.accumulate(src, dst, "-")
}

// mul sets a *= b, b preserved. Uses temps 2 and 3.
func (g *Generator) mul(a, b cell) {
	t2, t3 := temp("2"), temp("3")

	g.copy(b, t2)
	g.zero(t3)

	g.goTo(t2)
	g.emit("[")
	g.decBy(t2, 1)
	g.accumulate(a, t3, "+")
	g.goTo(t2)
	g.emit("]")

	g.moveValue(t3, a)
}

// div sets quot = a/b, rem = a mod b (Euclidean), preserving a and b.
// Uses temps 6..9.
func (g *Generator) div(a, b, rem, quot cell) {
	t6, t7, t8, t9 := temp("6"), temp("7"), temp("8"), temp("9")

	g.copy(a, t9)
	g.copy(b, t8)
	g.zero(rem)
	g.zero(quot)

	g.set(t7, 1)
	g.goTo(t7)
	g.emit("[")
	g.compare(a, b, t6)
	g.ifCellNotEqualConst(t6, 1, func() {
		g.sub(a, b)
		g.incBy(quot, 1)
	})
	g.ifCellNotEqualConst(t6, 2, func() {
		g.set(t7, 0)
	})
	g.goTo(t7)
	g.emit("]")

	g.zero(t6)
	g.moveValue(a, rem)
	g.moveValue(t9, a)
	g.moveValue(t8, b)
	g.goTo(quot)
}

// compare sets res to 0/1/2 (a==b / a<b / a>b), preserving a and b.
// a==0 and b==0 are guarded before the decrement loop runs: decrementing
// a cell that is already 0 would wrap it to 255 and invert the result,
// so whichever side is 0 settles the comparison immediately (a != b is
// already established, so a==0 means a<b and b==0 means a>b). Uses temps
// 4 and 5 for the decrement loop, reusing the if_eq_c/if_neq_c gates'
// temps 2 and 3 for the zero guard: safe to nest, since each of those
// gates zeroes its own flag cell(s) before running its body.
func (g *Generator) compare(a, b, res cell) {
	t4, t5 := temp("4"), temp("5")

	g.zero(res)
	g.ifNotEqual(a, b, func() {
		g.ifCellEqualConst(a, 0, func() {
			g.set(res, 1)
		})
		g.ifCellNotEqualConst(a, 0, func() {
			g.ifCellEqualConst(b, 0, func() {
				g.set(res, 2)
			})
			g.ifCellNotEqualConst(b, 0, func() {
				g.set(t4, 1)
				g.set(t5, 0)

				g.goTo(t4)
				g.emit("[")
				g.decBy(a, 1)
				g.decBy(b, 1)
				g.incBy(t5, 1)
				g.ifCellEqualConst(a, 0, func() {
					g.set(res, 1)
					g.set(t4, 0)
				})
				g.ifCellEqualConst(b, 0, func() {
					g.set(res, 2)
					g.set(t4, 0)
				})
				g.goTo(t4)
				g.emit("]")

				// Replay t5 onto both a and b to restore their values.
				g.goTo(t5)
				g.emit("[")
				g.incBy(a, 1)
				g.incBy(b, 1)
				g.decBy(t5, 1)
				g.goTo(t5)
				g.emit("]")
			})
		})
	})
}

// printc prints the decimal ASCII representation of c (0-255),
// eliding leading zeros; c=0 prints nothing (spec.md §9, open
// question 1). Uses temps 10..15.
func (g *Generator) printc(c cell) {
	t10, t11, t12, t13, t14, t15 := temp("10"), temp("11"), temp("12"), temp("13"), temp("14"), temp("15")

	g.set(t15, 100)
	g.div(c, t15, t10, t11)
	g.set(t15, 10)
	g.div(t10, t15, t12, t14)

	// t13 turns nonzero at the first nonzero digit; every digit from
	// there on is printed, zeros included.
	for _, d := range []cell{t11, t14, t12} {
		g.ifCellNotEqualConst(d, 0, func() {
			g.set(t13, 1)
		})
		g.ifCellNotEqualConst(t13, 0, func() {
			g.incBy(d, 48)
			g.goTo(d)
			g.emit(".")
		})
	}

	for i := 10; i <= 15; i++ {
		g.zero(temp(fmt.Sprintf("%d", i)))
	}
}

// printMsg emits the literal bytes of s, tracking the previous byte's
// value in temp 0 so each character costs |delta| +/- steps instead
// of a full zero/set round-trip.
func (g *Generator) printMsg(s string) {
	t0 := temp("0")
	g.zero(t0)
	g.goTo(t0)

	prev := 0
	for i := 0; i < len(s); i++ {
		b := int(s[i])
		delta := b - prev
		if delta > 0 {
			g.emit(strings.Repeat("+", delta))
		} else if delta < 0 {
			g.emit(strings.Repeat("-", -delta))
		}
		g.emit(".")
		prev = b
	}

	g.zero(t0)
}

// gotoEndOfVars moves the head to the cell immediately past the last
// user variable, the base used by the push/pop bump stack.
func (g *Generator) gotoEndOfVars() {
	g.goTo(g.endOfVars())
}

// fault raises a CodegenInvariantViolation: codegen bugs are never
// recovered from, per spec.md §7.
func fault(format string, args ...any) error {
	return diagnostics.Newf(diagnostics.CodegenInvariantViolation, format, args...)
}
