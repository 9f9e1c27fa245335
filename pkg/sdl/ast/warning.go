package ast

import "fmt"

// WarningKind categorizes non-fatal diagnostics.
type WarningKind string

const (
	// WarningDeprecatedSyntax flags a legacy keyword parsed with
	// modern-keyword semantics.
	WarningDeprecatedSyntax WarningKind = "deprecated_syntax"

	// WarningDuplicateClause flags a clause that may appear at most once
	// but appeared again; the last occurrence wins.
	WarningDuplicateClause WarningKind = "duplicate_clause"
)

// Warning is a non-fatal diagnostic accumulated during a parse. Warnings
// never affect parse success.
type Warning struct {
	Kind      WarningKind    `json:"kind" yaml:"kind"`
	Location  SourceLocation `json:"location" yaml:"location"`
	OldSyntax string         `json:"old_syntax,omitempty" yaml:"old_syntax,omitempty"`
	NewSyntax string         `json:"new_syntax,omitempty" yaml:"new_syntax,omitempty"`
	Message   string         `json:"message" yaml:"message"`
}

// String formats the warning with its location.
func (w Warning) String() string {
	return fmt.Sprintf("%s: [%s] %s", w.Location, w.Kind, w.Message)
}
