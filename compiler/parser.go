// parser.go turns a token stream into a list of instructions.Instruction
// values. The grammar is flat and keyword-led: one instruction per
// leading keyword, followed by a fixed number of operands determined
// by that keyword. See spec.md §4.1 for the grammar.

package compiler

import (
	"fmt"

	"github.com/skx/lirbf/diagnostics"
	"github.com/skx/lirbf/instructions"
	"github.com/skx/lirbf/lexer"
	"github.com/skx/lirbf/token"
)

// parser holds the state used while converting a token stream into
// instructions.
type parser struct {
	lexed *lexer.Lexer
	cur   token.Token
	peek  token.Token
}

// newParser creates a parser over the given LIR source text.
func newParser(input string) *parser {
	p := &parser{lexed: lexer.New(input)}
	p.advance()
	p.advance()
	return p
}

func (p *parser) advance() {
	p.cur = p.peek
	p.peek = p.lexed.NextToken()
}

// parse consumes the whole token stream, returning the instruction list
// or the first parse error encountered.
func (p *parser) parse() ([]instructions.Instruction, error) {
	var out []instructions.Instruction

	for p.cur.Type != token.EOF {
		if p.cur.Type == token.ERROR {
			return nil, diagnostics.New(diagnostics.ParseError, p.cur.Literal).At(p.cur.Line)
		}

		if !token.IsKeyword(p.cur.Type) {
			return nil, diagnostics.Newf(diagnostics.ParseError,
				"expected an instruction keyword, found %q", p.cur.Literal).At(p.cur.Line)
		}

		inst, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}

	return out, nil
}

// parseInstruction parses a single instruction, dispatching on the
// leading keyword.
func (p *parser) parseInstruction() (instructions.Instruction, error) {
	line := p.cur.Line
	kw := p.cur.Type
	p.advance()

	switch kw {
	case token.COPY:
		return p.twoVars(instructions.Copy, line)
	case token.SET:
		return p.varConst(instructions.Set, line)
	case token.INC:
		return p.oneVar(instructions.Inc, line)
	case token.DEC:
		return p.oneVar(instructions.Dec, line)
	case token.INC_BY:
		return p.varConst(instructions.IncBy, line)
	case token.DEC_BY:
		return p.varConst(instructions.DecBy, line)
	case token.READ:
		return p.oneVar(instructions.Read, line)
	case token.PRINT:
		return p.oneVar(instructions.Print, line)
	case token.PRINTC:
		return p.oneVar(instructions.PrintC, line)
	case token.PRINT_MSG:
		return p.oneStr(instructions.PrintMsg, line)
	case token.ADD:
		return p.twoVars(instructions.Add, line)
	case token.SUB:
		return p.twoVars(instructions.Sub, line)
	case token.MUL:
		return p.twoVars(instructions.Mul, line)
	case token.DIV:
		return p.div(line)
	case token.IF_EQ:
		return p.twoVars(instructions.IfEqual, line)
	case token.IF_NEQ:
		return p.twoVars(instructions.IfNotEqual, line)
	case token.IF_EQ_C:
		return p.varConst(instructions.IfEqualConst, line)
	case token.IF_NEQ_C:
		return p.varConst(instructions.IfNotEqualConst, line)
	case token.UNTIL_EQ:
		return p.twoVars(instructions.UntilEqual, line)
	case token.WHILE_NZ:
		return p.oneVar(instructions.WhileNotZero, line)
	case token.MATCH:
		return p.match(line)
	case token.CASE:
		return instructions.Instruction{Kind: instructions.Case, Line: line}, nil
	case token.END:
		return instructions.Instruction{Kind: instructions.End, Line: line}, nil
	case token.CMP:
		return p.cmp(line)
	case token.PUSH:
		return p.oneVar(instructions.Push, line)
	case token.POP:
		return p.oneVar(instructions.Pop, line)
	case token.RAW:
		return p.oneStr(instructions.Raw, line)
	}

	return instructions.Instruction{}, diagnostics.Newf(diagnostics.ParseError,
		"unhandled keyword %q", kw).At(line)
}

// expectIdent consumes and returns an IDENT token's literal.
func (p *parser) expectIdent() (string, error) {
	if p.cur.Type != token.IDENT {
		return "", diagnostics.Newf(diagnostics.ParseError,
			"expected a variable name, found %q", p.cur.Literal).At(p.cur.Line)
	}
	lit := p.cur.Literal
	p.advance()
	return lit, nil
}

// expectByte consumes an INT or CHAR token and returns its byte value.
func (p *parser) expectByte() (byte, error) {
	switch p.cur.Type {
	case token.INT:
		var v int
		if _, err := fmt.Sscanf(p.cur.Literal, "%d", &v); err != nil || v < 0 || v > 255 {
			return 0, diagnostics.Newf(diagnostics.ParseError,
				"integer operand %q out of range 0..255", p.cur.Literal).At(p.cur.Line)
		}
		p.advance()
		return byte(v), nil
	case token.CHAR:
		b := p.cur.Literal[0]
		p.advance()
		return b, nil
	default:
		return 0, diagnostics.Newf(diagnostics.ParseError,
			"expected an integer or char literal, found %q", p.cur.Literal).At(p.cur.Line)
	}
}

// expectString consumes a STRING token and returns its literal.
func (p *parser) expectString() (string, error) {
	if p.cur.Type != token.STRING {
		return "", diagnostics.Newf(diagnostics.ParseError,
			"expected a string literal, found %q", p.cur.Literal).At(p.cur.Line)
	}
	lit := p.cur.Literal
	p.advance()
	return lit, nil
}

func (p *parser) oneVar(kind instructions.Kind, line int) (instructions.Instruction, error) {
	a, err := p.expectIdent()
	if err != nil {
		return instructions.Instruction{}, err
	}
	return instructions.Instruction{Kind: kind, A: a, Line: line}, nil
}

func (p *parser) twoVars(kind instructions.Kind, line int) (instructions.Instruction, error) {
	a, err := p.expectIdent()
	if err != nil {
		return instructions.Instruction{}, err
	}
	b, err := p.expectIdent()
	if err != nil {
		return instructions.Instruction{}, err
	}
	return instructions.Instruction{Kind: kind, A: a, B: b, Line: line}, nil
}

func (p *parser) varConst(kind instructions.Kind, line int) (instructions.Instruction, error) {
	a, err := p.expectIdent()
	if err != nil {
		return instructions.Instruction{}, err
	}
	k, err := p.expectByte()
	if err != nil {
		return instructions.Instruction{}, err
	}
	return instructions.Instruction{Kind: kind, A: a, Const: k, Line: line}, nil
}

func (p *parser) oneStr(kind instructions.Kind, line int) (instructions.Instruction, error) {
	s, err := p.expectString()
	if err != nil {
		return instructions.Instruction{}, err
	}
	return instructions.Instruction{Kind: kind, Str: s, Line: line}, nil
}

func (p *parser) div(line int) (instructions.Instruction, error) {
	a, err := p.expectIdent()
	if err != nil {
		return instructions.Instruction{}, err
	}
	b, err := p.expectIdent()
	if err != nil {
		return instructions.Instruction{}, err
	}
	rem, err := p.expectIdent()
	if err != nil {
		return instructions.Instruction{}, err
	}
	quot, err := p.expectIdent()
	if err != nil {
		return instructions.Instruction{}, err
	}
	return instructions.Instruction{Kind: instructions.Div, A: a, B: b, Res: rem, Quot: quot, Line: line}, nil
}

func (p *parser) cmp(line int) (instructions.Instruction, error) {
	a, err := p.expectIdent()
	if err != nil {
		return instructions.Instruction{}, err
	}
	b, err := p.expectIdent()
	if err != nil {
		return instructions.Instruction{}, err
	}
	res, err := p.expectIdent()
	if err != nil {
		return instructions.Instruction{}, err
	}
	return instructions.Instruction{Kind: instructions.Compare, A: a, B: b, Res: res, Line: line}, nil
}

// match parses "match v k1 k2 ... kn", where each k_i is an integer or
// char literal. Keys must be given in strictly ascending order; this is
// enforced by codegen (openMatch in match.go), not here.
func (p *parser) match(line int) (instructions.Instruction, error) {
	v, err := p.expectIdent()
	if err != nil {
		return instructions.Instruction{}, err
	}

	var cases []byte
	for p.cur.Type == token.INT || p.cur.Type == token.CHAR {
		k, kerr := p.expectByte()
		if kerr != nil {
			return instructions.Instruction{}, kerr
		}
		cases = append(cases, k)
	}

	return instructions.Instruction{Kind: instructions.Match, A: v, Cases: cases, Line: line}, nil
}
