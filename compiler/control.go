// control.go implements the structured block constructs of spec.md
// §4.4: while_nz, until_eq, if_eq, if_neq, if_eq_c, if_neq_c. Each
// opener pushes a frame onto the generator's block stack; End pops it
// and dispatches to the matching close* function.
//
// Two flavours of "if" exist here: the block-stack pair (open*/close*)
// driven by the LIR instruction stream, and the immediate-mode
// ifNotEqual/ifCellEqualConst/ifCellNotEqualConst helpers in this file
// used internally by compare and div, where the "body" is a Go
// closure rather than a run of LIR instructions between two
// instructions.Instruction values.

package compiler

import "github.com/skx/lirbf/instructions"

// openBlock pushes a frame for inst and emits the opener's BF fragment.
func (g *Generator) openBlock(inst instructions.Instruction) {
	switch inst.Kind {
	case instructions.WhileNotZero:
		g.blocks.Push(frame{kind: inst.Kind, a: inst.A})
		g.goTo(g.v(inst.A))
		g.emit("[")

	case instructions.UntilEqual:
		g.blocks.Push(frame{kind: inst.Kind, a: inst.A, b: inst.B})
		g.sub(g.v(inst.A), g.v(inst.B))
		g.goTo(g.v(inst.A))
		g.emit("[")
		g.add(g.v(inst.A), g.v(inst.B))

	case instructions.IfNotEqual:
		g.blocks.Push(frame{kind: inst.Kind, a: inst.A, b: inst.B})
		g.openIfNotEqual(g.v(inst.A), g.v(inst.B))

	case instructions.IfEqual:
		g.blocks.Push(frame{kind: inst.Kind, a: inst.A, b: inst.B})
		g.openIfEqual(g.v(inst.A), g.v(inst.B))

	case instructions.IfNotEqualConst:
		g.blocks.Push(frame{kind: inst.Kind, a: inst.A, k: inst.Const})
		g.openIfNotEqualConst(g.v(inst.A), inst.Const)

	case instructions.IfEqualConst:
		g.blocks.Push(frame{kind: inst.Kind, a: inst.A, k: inst.Const})
		g.openIfEqualConst(g.v(inst.A), inst.Const)
	}
}

// closeBlock pops the innermost frame and emits its closing fragment.
func (g *Generator) closeBlock() error {
	fr, err := g.blocks.Pop()
	if err != nil {
		return fault("'end' with no open block")
	}

	switch fr.kind {
	case instructions.WhileNotZero:
		g.goTo(g.v(fr.a))
		g.emit("]")

	case instructions.UntilEqual:
		g.sub(g.v(fr.a), g.v(fr.b))
		g.goTo(g.v(fr.a))
		g.emit("]")
		g.add(g.v(fr.a), g.v(fr.b))

	case instructions.IfNotEqual:
		g.closeIfCellFlag()

	case instructions.IfEqual:
		g.closeIfCellFlag()

	case instructions.IfNotEqualConst:
		g.closeIfCellFlag()

	case instructions.IfEqualConst:
		g.closeIfCellFlag()

	case instructions.Match:
		g.closeMatch()

	default:
		return fault("unexpected frame kind %s on block stack", fr.kind)
	}
	return nil
}

// closeIfCellFlag closes any of the four if_* forms: they all reduce
// to "the flag in temp 2 is zero, close the loop it opened".
func (g *Generator) closeIfCellFlag() {
	t2 := temp("2")
	g.goTo(t2)
	g.zero(t2)
	g.emit("]")
}

// openIfNotEqual gates a subsequent body on a != b. Uses temp 2.
func (g *Generator) openIfNotEqual(a, b cell) {
	t2 := temp("2")
	g.sub(a, b)
	g.copy(a, t2)
	g.add(a, b)
	g.goTo(t2)
	g.emit("[")
	g.zero(t2)
}

// openIfEqual gates a subsequent body on a == b. Uses temps 2 and 3.
func (g *Generator) openIfEqual(a, b cell) {
	t2, t3 := temp("2"), temp("3")
	g.set(t2, 1)
	g.sub(a, b)
	g.copy(a, t3)
	g.goTo(t3)
	g.emit("[")
	g.zero(t2)
	g.zero(t3)
	g.emit("]")
	g.add(a, b)
	g.goTo(t2)
	g.emit("[")
	g.zero(t2)
}

// openIfNotEqualConst gates a subsequent body on a != k. Uses temp 2.
func (g *Generator) openIfNotEqualConst(a cell, k byte) {
	t2 := temp("2")
	g.decBy(a, k)
	g.copy(a, t2)
	g.incBy(a, k)
	g.goTo(t2)
	g.emit("[")
	g.zero(t2)
}

// openIfEqualConst gates a subsequent body on a == k. Uses temps 2
// and 3.
func (g *Generator) openIfEqualConst(a cell, k byte) {
	t2, t3 := temp("2"), temp("3")
	g.set(t2, 1)
	g.decBy(a, k)
	g.copy(a, t3)
	g.goTo(t3)
	g.emit("[")
	g.zero(t2)
	g.zero(t3)
	g.emit("]")
	g.incBy(a, k)
	g.goTo(t2)
	g.emit("[")
	g.zero(t2)
}

// ifNotEqual is the immediate-mode form: body runs at most once, iff
// a != b, used internally by compare. Uses temp 2.
func (g *Generator) ifNotEqual(a, b cell, body func()) {
	g.openIfNotEqual(a, b)
	body()
	g.closeIfCellFlag()
}

// ifCellEqualConst is the immediate-mode form of if_eq_c, used
// internally by compare.
func (g *Generator) ifCellEqualConst(c cell, k byte, body func()) {
	g.openIfEqualConst(c, k)
	body()
	g.closeIfCellFlag()
}

// ifCellNotEqualConst is the immediate-mode form of if_neq_c, used
// internally by compare, div and printc.
func (g *Generator) ifCellNotEqualConst(c cell, k byte, body func()) {
	g.openIfNotEqualConst(c, k)
	body()
	g.closeIfCellFlag()
}
