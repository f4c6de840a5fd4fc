// analyzer.go implements the two-pass semantic check described in
// spec.md §4.2: use/def and identifier validity in the first pass,
// block balance in the second. Its output is a VarMap giving each
// user variable a stable tape index in first-appearance order.

package compiler

import (
	"regexp"

	"github.com/skx/lirbf/diagnostics"
	"github.com/skx/lirbf/instructions"
)

// VarMap assigns every user variable a tape index, 0..count-1, in the
// order it was first mentioned.
type VarMap struct {
	index map[string]int
	count int
}

// Index returns the tape index assigned to name.
func (m *VarMap) Index(name string) int {
	return m.index[name]
}

// Count returns the number of distinct user variables.
func (m *VarMap) Count() int {
	return m.count
}

var identRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// analyze validates prog and builds its VarMap. It never mutates prog.
func analyze(prog []instructions.Instruction) (*VarMap, error) {
	vm := &VarMap{index: make(map[string]int)}

	define := func(name string, mustBeDefined bool, line int) error {
		if name == "" {
			return nil
		}
		_, ok := vm.index[name]
		if mustBeDefined && !ok {
			return diagnostics.Newf(diagnostics.VariableMustBeAssigned,
				"%q must be assigned before use", name).At(line)
		}
		if ok {
			return nil
		}
		if !identRe.MatchString(name) {
			return diagnostics.Newf(diagnostics.InvalidVariableName,
				"%q is not a valid identifier", name).At(line)
		}
		vm.index[name] = vm.count
		vm.count++
		return nil
	}

	for _, inst := range prog {
		for _, op := range operandVars(inst) {
			if err := define(op.name, op.mustBeDefined, inst.Line); err != nil {
				return nil, err
			}
		}
	}

	if err := checkBlockBalance(prog); err != nil {
		return nil, err
	}

	return vm, nil
}

// operand pairs a variable-name operand with whether it must already be
// defined (a use) or may be defined here (a write/output).
type operand struct {
	name          string
	mustBeDefined bool
}

// operandVars returns the variable-name operands an instruction carries,
// each tagged with whether that operand must already be defined,
// following spec.md §4.2's use-before-def rule. The must-be-defined flag
// per operand per Kind mirrors the teacher's original
// build_variable_hashmap: reads and read-modify-writes that reference an
// existing value (Print, PrintC, Add/Sub/Mul's operands, the comparison
// and loop conditions' operands, Push, Copy's source) must already be in
// the map; pure writes (Set, Read, Copy's destination, Div's remainder
// and quotient, Pop, and Inc/Dec and their *By forms, which the original
// also treats as defining rather than using) may be defined here.
func operandVars(inst instructions.Instruction) []operand {
	switch inst.Kind {
	case instructions.Copy:
		return []operand{{inst.A, true}, {inst.B, false}}
	case instructions.Set, instructions.Read:
		return []operand{{inst.A, false}}
	case instructions.Inc, instructions.Dec, instructions.IncBy, instructions.DecBy:
		return []operand{{inst.A, false}}
	case instructions.Print, instructions.PrintC:
		return []operand{{inst.A, true}}
	case instructions.Add, instructions.Sub, instructions.Mul:
		return []operand{{inst.A, true}, {inst.B, true}}
	case instructions.Div:
		return []operand{{inst.A, true}, {inst.B, true}, {inst.Res, false}, {inst.Quot, false}}
	case instructions.IfEqual, instructions.IfNotEqual, instructions.UntilEqual:
		return []operand{{inst.A, true}, {inst.B, true}}
	case instructions.IfEqualConst, instructions.IfNotEqualConst:
		return []operand{{inst.A, true}}
	case instructions.WhileNotZero, instructions.Match, instructions.Push:
		return []operand{{inst.A, true}}
	case instructions.Pop:
		return []operand{{inst.A, false}}
	case instructions.Compare:
		return []operand{{inst.A, true}, {inst.B, true}, {inst.Res, false}}
	default:
		return nil
	}
}

// checkBlockBalance walks prog counting openers against End markers.
func checkBlockBalance(prog []instructions.Instruction) error {
	depth := 0
	for _, inst := range prog {
		if inst.OpensBlock() {
			depth++
		}
		if inst.Kind == instructions.End {
			depth--
			if depth < 0 {
				return diagnostics.New(diagnostics.UnevenAmountOfBlocks,
					"'end' does not match any open block").At(inst.Line)
			}
		}
	}
	if depth != 0 {
		return diagnostics.Newf(diagnostics.UnevenAmountOfBlocks,
			"%d block(s) left unclosed", depth)
	}
	return nil
}
