// stackops.go implements the Push/Pop bump-stack of spec.md §4.5: a
// region strictly to the right of the last user variable, used as a
// dedicated side-tape stack. Neither operation bounds-checks; see
// spec.md §9 open question 5.
//
// Layout, relative to endOfVars() == E:
//
//	E: guard, permanently 0
//	E+1: unused
//	E+2: tag_0   E+3: value_0
//	E+4: tag_1   E+5: value_1
//	...          tag_i = E+2+2i, value_i = tag_i+1
//
// forwardScanToFirstUnoccupiedTag's unconditional leading ">>" steps
// past the guard and the unused cell to land on tag_0 before the scan
// loop even starts testing.
//
// A tag of 0 means the slot is unoccupied. Finding the first
// unoccupied slot, or the topmost occupied one, means walking from E
// at a fixed stride while the tag encountered is nonzero — the
// classic "scan to the first/last marked cell" idiom. Because the
// landing cell's absolute tape index depends on how many slots are
// occupied, it is not known at codegen time; these scans are emitted
// as raw BF and the generator's head bookkeeping is resynchronised to
// endOfVars() (a cell whose index *is* known) once a scan walks back
// to it, rather than tracked through the dynamic middle.

package compiler

// forwardScanToFirstUnoccupiedTag must be called with the head at
// endOfVars(). It leaves the head, dynamically, at the first tag
// cell holding 0.
func (g *Generator) forwardScanToFirstUnoccupiedTag() {
	g.emit(">>[>>]")
}

// backwardScanFromTag walks back from a tag cell to endOfVars() and
// resynchronises head bookkeeping.
func (g *Generator) backwardScanFromTag() {
	g.emit("<<[<<]")
	g.head = g.endOfVars()
}

// backwardScanFromValue walks back from a value cell to endOfVars()
// and resynchronises head bookkeeping.
func (g *Generator) backwardScanFromValue() {
	g.emit("<<<[<<]")
	g.head = g.endOfVars()
}

// push transfers x's value onto the first free slot and zeroes x.
// The transfer moves one unit at a time, each round trip starting
// and ending at the known cell t2, so that the free slot's unknown
// absolute position never needs to be addressed by goTo; only the
// symmetric scan-out/scan-back idiom touches it.
func (g *Generator) push(x cell) {
	t2 := temp("2")
	g.copy(x, t2)

	g.goTo(t2)
	g.emit("[")
	g.decBy(t2, 1)
	g.goTo(g.endOfVars())
	g.forwardScanToFirstUnoccupiedTag()
	g.emit(">+") // step onto the slot's value cell, add the unit
	g.backwardScanFromValue()
	g.goTo(t2)
	g.emit("]")

	// All units transferred; the slot is still the same one (its tag
	// hasn't moved, since we never touched it above), so mark it.
	g.goTo(g.endOfVars())
	g.forwardScanToFirstUnoccupiedTag()
	g.emit("+")
	g.backwardScanFromTag()

	g.zero(x)
}

// pop drains the topmost occupied slot into x, then clears its tag.
// Undefined if the stack is empty, per spec.md §9.
func (g *Generator) pop(x cell) {
	g.zero(x)

	g.goTo(g.endOfVars())
	g.forwardScanToFirstUnoccupiedTag() // one past the top
	g.emit("<<")                        // step back onto the top slot's tag
	g.emit(">")                         // and its value cell

	// Drain the value cell into x one unit at a time; each round
	// trip returns to the (dynamic) value cell so the enclosing BF
	// loop's bracket test, which reads that same cell, stays valid.
	g.emit("[-")
	g.backwardScanFromValue()
	g.goTo(x)
	g.emit("+")
	g.goTo(g.endOfVars())
	g.forwardScanToFirstUnoccupiedTag()
	g.emit("<<>")
	g.emit("]")

	g.backwardScanFromValue()

	// Clear the now-empty slot's tag.
	g.goTo(g.endOfVars())
	g.forwardScanToFirstUnoccupiedTag()
	g.emit("<<")
	g.emit("[-]")
	g.backwardScanFromTag()
}
