// The compiler package contains the core of lirbf's compiler.
//
// We go through a three-step process:
//
//  1. Parse the LIR source into a list of instructions.
//  2. Analyze that list: check names and block balance, and assign
//     every variable a tape index.
//  3. Walk the list once, generating brainfuck for each instruction.
//
// The hard part is (3); see generator.go, control.go, match.go and
// stackops.go for the code-generation machinery itself.
package compiler

import (
	"github.com/skx/lirbf/instructions"
)

// Compiler holds our object-state.
type Compiler struct {
	// debug enables the interpreter-debug sentinel between
	// instructions, and sets up the generator accordingly.
	debug bool

	// source holds the LIR program text we're compiling.
	source string
}

// New creates a new compiler over the given LIR source.
func New(source string) *Compiler {
	return &Compiler{source: source}
}

// SetDebug toggles emission of the `#` debug sentinel between
// instructions.
func (c *Compiler) SetDebug(val bool) {
	c.debug = val
}

// Compile runs the full pipeline: parse, analyze, generate. It
// returns the generated brainfuck text, or the first diagnostics.Error
// encountered.
func (c *Compiler) Compile() (string, error) {
	prog, err := newParser(c.source).parse()
	if err != nil {
		return "", err
	}

	vm, err := analyze(prog)
	if err != nil {
		return "", err
	}

	g := newGenerator(vm, c.debug)
	if err := g.generate(prog); err != nil {
		return "", err
	}

	return g.buf.String(), nil
}

// generate walks prog once, emitting brainfuck for every instruction.
// Structured blocks are handled by pushing/popping frame values on
// g.blocks; everything else is a direct, single-instruction emission.
func (g *Generator) generate(prog []instructions.Instruction) error {
	for _, inst := range prog {
		if err := g.emitInstruction(inst); err != nil {
			return err
		}
		g.sentinel()
	}

	if !g.blocks.Empty() {
		return fault("%d block(s) left open at end of program", g.blocks.Len())
	}
	return nil
}

// emitInstruction dispatches a single instruction to its codegen.
func (g *Generator) emitInstruction(inst instructions.Instruction) error {
	switch inst.Kind {
	case instructions.Copy:
		g.copy(g.v(inst.A), g.v(inst.B))

	case instructions.Set:
		g.set(g.v(inst.A), inst.Const)

	case instructions.Inc:
		g.incBy(g.v(inst.A), 1)

	case instructions.Dec:
		g.decBy(g.v(inst.A), 1)

	case instructions.IncBy:
		g.incBy(g.v(inst.A), inst.Const)

	case instructions.DecBy:
		g.decBy(g.v(inst.A), inst.Const)

	case instructions.Read:
		g.zero(g.v(inst.A))
		g.goTo(g.v(inst.A))
		g.emit(",")

	case instructions.Print:
		g.goTo(g.v(inst.A))
		g.emit(".")

	case instructions.PrintC:
		g.printc(g.v(inst.A))

	case instructions.PrintMsg:
		g.printMsg(inst.Str)

	case instructions.Add:
		g.add(g.v(inst.A), g.v(inst.B))

	case instructions.Sub:
		g.sub(g.v(inst.A), g.v(inst.B))

	case instructions.Mul:
		g.mul(g.v(inst.A), g.v(inst.B))

	case instructions.Div:
		g.div(g.v(inst.A), g.v(inst.B), g.v(inst.Res), g.v(inst.Quot))

	case instructions.Compare:
		g.compare(g.v(inst.A), g.v(inst.B), g.v(inst.Res))

	case instructions.Push:
		g.push(g.v(inst.A))

	case instructions.Pop:
		g.pop(g.v(inst.A))

	case instructions.Raw:
		g.emit(inst.Str)

	case instructions.WhileNotZero, instructions.UntilEqual,
		instructions.IfNotEqual, instructions.IfEqual,
		instructions.IfNotEqualConst, instructions.IfEqualConst:
		g.openBlock(inst)

	case instructions.Match:
		return g.openMatch(inst)

	case instructions.Case:
		return g.matchCase()

	case instructions.End:
		return g.closeBlock()

	default:
		return fault("codegen does not know how to emit %s", inst.Kind)
	}

	return nil
}
