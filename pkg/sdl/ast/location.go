package ast

import (
	"fmt"
	"strings"
)

// SourceLocation identifies a position in SDL source text.
// Line and Column are 1-based; Offset is the 0-based byte offset
// from the start of the source.
type SourceLocation struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
	Offset int `json:"offset" yaml:"offset"`
}

// FromOffset computes the line and column for a byte offset into source.
// The column is the distance to the preceding newline, so the first
// character of every line has column 1.
func FromOffset(offset int, source string) SourceLocation {
	if offset > len(source) {
		offset = len(source)
	}

	line := 1 + strings.Count(source[:offset], "\n")
	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1

	return SourceLocation{
		Line:   line,
		Column: offset - lineStart + 1,
		Offset: offset,
	}
}

// String returns a human-readable "line:column" representation.
func (l SourceLocation) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// IsValid returns true if the location carries real position information.
func (l SourceLocation) IsValid() bool {
	return l.Line > 0
}

// SourceSpan is a half-open range [Start.Offset, End.Offset) of source text.
// Start must not come after End.
type SourceSpan struct {
	Start SourceLocation `json:"start" yaml:"start"`
	End   SourceLocation `json:"end" yaml:"end"`
}

// PointSpan returns a zero-length span at the given location.
func PointSpan(loc SourceLocation) SourceSpan {
	return SourceSpan{Start: loc, End: loc}
}

// Len returns the number of bytes covered by the span.
func (s SourceSpan) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Text returns the slice of source covered by the span.
// It is empty exactly when Start == End.
func (s SourceSpan) Text(source string) string {
	start, end := s.Start.Offset, s.End.Offset
	if start < 0 || end > len(source) || start > end {
		return ""
	}
	return source[start:end]
}

// String formats a single-line span as "L:C1-C2" and a multi-line span
// as "L1:C1 to L2:C2".
func (s SourceSpan) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%d:%d-%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s to %s", s.Start, s.End)
}
