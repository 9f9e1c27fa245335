package errors

import (
	"fmt"
	"strings"

	"veritas-hq/praetor/pkg/sdl/ast"
)

// Kind categorizes a fatal SDL diagnostic.
type Kind string

const (
	// KindUnclosedComment is a block comment with no terminator. The
	// location is the opening "/*" when known.
	KindUnclosedComment Kind = "unclosed_comment"

	// KindSyntax is an unexpected or malformed token sequence.
	KindSyntax Kind = "syntax"

	// KindUndefinedReference is a name that resolves to nothing.
	KindUndefinedReference Kind = "undefined_reference"

	// KindInvalidCondition is a condition that is well-formed syntax but
	// can never be compiled, such as a malformed regex literal.
	KindInvalidCondition Kind = "invalid_condition"

	// KindSerialization wraps an error bubbled up from the generic
	// JSON/YAML (de)serializer.
	KindSerialization Kind = "serialization"
)

// Error is the single error type for every fatal SDL diagnostic. The Kind
// field selects the variant; parsing aborts on the first Error raised.
type Error struct {
	Kind     Kind
	Message  string
	Location ast.SourceLocation // zero value when the position is unknown
	Expected string             // syntax errors: the construct being parsed
	Found    string             // syntax errors: the offending token
	Hint     string             // optional corrective suggestion
	Name     string             // undefined references: the unresolved name
	Err      error              // serialization errors: the wrapped cause
}

// NewUnclosedComment builds an unclosed-comment error. Pass hasLoc=false
// when the opening "/*" position is unknown.
func NewUnclosedComment(loc ast.SourceLocation, hasLoc bool) *Error {
	e := &Error{Kind: KindUnclosedComment, Message: "Unclosed block comment"}
	if hasLoc {
		e.Location = loc
	}
	return e
}

// NewSyntax builds a syntax error with expected/found context.
func NewSyntax(loc ast.SourceLocation, expected, found string) *Error {
	return &Error{
		Kind:     KindSyntax,
		Message:  fmt.Sprintf("Expected %s, found %s", expected, found),
		Location: loc,
		Expected: expected,
		Found:    found,
	}
}

// WithHint attaches a corrective hint and returns the error.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// NewUndefinedReference builds an undefined-reference error.
func NewUndefinedReference(loc ast.SourceLocation, name, hint string) *Error {
	return &Error{
		Kind:     KindUndefinedReference,
		Message:  fmt.Sprintf("Undefined reference %q", name),
		Location: loc,
		Name:     name,
		Hint:     hint,
	}
}

// NewInvalidCondition builds a parse-time semantic error.
func NewInvalidCondition(message string) *Error {
	return &Error{Kind: KindInvalidCondition, Message: message}
}

// NewSerialization wraps a (de)serializer error.
func NewSerialization(op string, err error) *Error {
	return &Error{
		Kind:    KindSerialization,
		Message: fmt.Sprintf("%s failed: %v", op, err),
		Err:     err,
	}
}

// Error implements the error interface. The message always includes the
// line:column location when one is known, what was expected, what was
// found, and the hint when available.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Kind, e.Message))
	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Location))
	}
	if e.Hint != "" {
		sb.WriteString(fmt.Sprintf("\n  = hint: %s", e.Hint))
	}

	return sb.String()
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Span returns the source span the error points at. Variants that only
// know a single location report a point span; errors with no position
// report the zero span.
func (e *Error) Span() ast.SourceSpan {
	return ast.PointSpan(e.Location)
}
