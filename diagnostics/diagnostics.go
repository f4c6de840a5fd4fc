// Package diagnostics holds the error type shared by the pipeline
// stages (compiler's parser/analyzer/codegen, interp), so the CLI has
// one uniform shape to render to stderr. Lexer errors reach it as
// ERROR tokens that the parser turns into ParseErrors.
package diagnostics

import "fmt"

// Kind categorizes an Error, matching spec.md §7's error kinds.
type Kind int

const (
	// ParseError: malformed LIR token stream.
	ParseError Kind = iota
	// InvalidVariableName: a name violates the identifier rules.
	InvalidVariableName
	// VariableMustBeAssigned: a use precedes any def.
	VariableMustBeAssigned
	// UnevenAmountOfBlocks: block openers not matched by End.
	UnevenAmountOfBlocks
	// CodegenInvariantViolation: a debug sentinel or helper
	// precondition tripped; indicates a bug in codegen itself.
	CodegenInvariantViolation
	// InterpreterFault: debug sentinel failure, instruction cap
	// exceeded, or an I/O error on the sink.
	InterpreterFault
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "parse error"
	case InvalidVariableName:
		return "invalid variable name"
	case VariableMustBeAssigned:
		return "variable must be assigned"
	case UnevenAmountOfBlocks:
		return "uneven amount of blocks"
	case CodegenInvariantViolation:
		return "codegen invariant violation"
	case InterpreterFault:
		return "interpreter fault"
	default:
		return "error"
	}
}

// Error is the uniform diagnostic type. Line is 0 when no source
// position applies (e.g. a codegen or interpreter fault).
type Error struct {
	Kind    Kind
	Message string
	Line    int
}

// New creates an Error with no source position.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At attaches a source line to an Error and returns it, for chaining:
// diagnostics.New(diagnostics.ParseError, "...").At(line).
func (e *Error) At(line int) *Error {
	e.Line = line
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
