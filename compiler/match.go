// match.go implements the Match/Case/End decrement-chain dispatch of
// spec.md §4.4. The Match instruction carries the full, sorted key
// list up front, so its entire nested-bracket preamble is emitted in
// one shot, landing at the default body. Each subsequent Case then
// closes one tier of nesting and opens the next body's flag-gate;
// the final body (for the smallest key) is closed by End.
//
// Bodies appear in the LIR source in the reverse of numeric order:
// default, then k_n, k_(n-1), ..., k_1 — a direct consequence of the
// decrement chain nesting outside-in (spec.md §9, "Match ordering
// quirk").

package compiler

import "github.com/skx/lirbf/instructions"

// openMatch emits the preamble for a Match instruction and pushes its
// frame, leaving the head positioned for the default body. Uses
// temps 2 (running countdown, a copy of v) and 3 (the "already
// matched" flag).
func (g *Generator) openMatch(inst instructions.Instruction) error {
	for i := 1; i < len(inst.Cases); i++ {
		if inst.Cases[i] <= inst.Cases[i-1] {
			return fault("match cases must be strictly ascending, got %v", inst.Cases)
		}
	}

	t2, t3 := temp("2"), temp("3")

	g.copy(g.v(inst.A), t2)
	g.set(t3, 1)

	prev := byte(0)
	for _, k := range inst.Cases {
		d := k - prev
		g.decBy(t2, d)
		g.goTo(t2)
		g.emit("[")
		prev = k
	}

	g.blocks.Push(frame{kind: instructions.Match, a: inst.A, cases: inst.Cases})

	// Default body: zero the countdown (it is whatever leftover value
	// didn't match any key), mark the dispatch as settled, then fall
	// into the default instructions that follow in the stream.
	g.zero(t2)
	g.goTo(t3)
	g.emit("-")
	return nil
}

// matchCase handles a Case marker: it closes the tier bracket for the
// body that just ended and opens the flag-gate for the next one.
func (g *Generator) matchCase() error {
	fr, err := g.blocks.Pop()
	if err != nil || fr.kind != instructions.Match {
		if err == nil {
			g.blocks.Push(fr)
		}
		return fault("'case' outside of a match block")
	}

	t2, t3 := temp("2"), temp("3")

	if fr.caseIdx > 0 {
		// Close the previous body's flag-gate.
		g.goTo(t3)
		g.emit("]")
	}

	// Close the tier bracket this body was nested inside.
	g.goTo(t2)
	g.emit("]")

	// Open the next body's flag-gate.
	g.goTo(t3)
	g.emit("[")
	g.emit("-")

	fr.caseIdx++
	g.blocks.Push(fr)
	return nil
}

// closeMatch handles the End that terminates a match: it closes the
// final (k_1) body's flag-gate. The tier brackets are all already
// closed, one per Case.
func (g *Generator) closeMatch() {
	t3 := temp("3")
	g.goTo(t3)
	g.emit("]")
}
