// Package instructions contains the LIR instruction model: one tagged
// variant per instruction kind, and the operand shape it carries.
//
// The parser produces a slice of Instruction values; the analyzer
// validates it and assigns tape positions to every named variable; the
// compiler package's codegen walks it once, emitting brainfuck.
package instructions

// Kind holds the type of a single LIR instruction.
type Kind int

const (
	Copy Kind = iota
	Set
	Inc
	Dec
	IncBy
	DecBy
	Read
	Print
	PrintMsg
	PrintC
	Add
	Sub
	Mul
	Div
	IfEqual
	IfNotEqual
	IfEqualConst
	IfNotEqualConst
	UntilEqual
	WhileNotZero
	Match
	Case
	End
	Compare
	Push
	Pop
	Raw
)

// names gives a human-readable label for each Kind, used in diagnostics.
var names = map[Kind]string{
	Copy:            "copy",
	Set:             "set",
	Inc:             "inc",
	Dec:             "dec",
	IncBy:           "inc_by",
	DecBy:           "dec_by",
	Read:            "read",
	Print:           "print",
	PrintMsg:        "print_msg",
	PrintC:          "printc",
	Add:             "add",
	Sub:             "sub",
	Mul:             "mul",
	Div:             "div",
	IfEqual:         "if_eq",
	IfNotEqual:      "if_neq",
	IfEqualConst:    "if_eq_c",
	IfNotEqualConst: "if_neq_c",
	UntilEqual:      "until_eq",
	WhileNotZero:    "while_nz",
	Match:           "match",
	Case:            "case",
	End:             "end",
	Compare:         "cmp",
	Push:            "push",
	Pop:             "pop",
	Raw:             "raw",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}

// Instruction is a single LIR instruction. Not every field is meaningful
// for every Kind; see the per-field comments and the table in spec.md §3.
type Instruction struct {
	Kind Kind

	// A, B, Res, Quot are variable-name operands. Their role depends on
	// Kind: e.g. for Copy, A is the source and B is the destination;
	// for Div, A/B are dividend/divisor, Res is the remainder and Quot
	// is the quotient.
	A, B, Res, Quot string

	// Const holds the immediate byte operand for Set/IncBy/DecBy/
	// IfEqualConst/IfNotEqualConst.
	Const byte

	// Str holds the literal payload for PrintMsg/Raw.
	Str string

	// Cases holds the strictly ascending match keys for Match.
	Cases []byte

	// Line is the source line this instruction was parsed from, for
	// diagnostics.
	Line int
}

// OpensBlock reports whether this instruction pushes a frame onto the
// codegen's block stack, requiring a matching End.
func (i Instruction) OpensBlock() bool {
	switch i.Kind {
	case IfEqual, IfNotEqual, IfEqualConst, IfNotEqualConst, UntilEqual, WhileNotZero, Match:
		return true
	default:
		return false
	}
}
