package ast

import (
	"fmt"
	"strings"
)

// ValueKind discriminates the closed set of condition value variants.
type ValueKind string

const (
	ValueNumber ValueKind = "number" // signed integer
	ValueString ValueKind = "string" // quoted string literal
	ValueDate   ValueKind = "date"   // ISO date kept as written
	ValueSet    ValueKind = "set"    // set algebra expression
)

// ConditionValue is a literal operand of a condition. The Kind field
// selects the variant; only the matching field is set.
type ConditionValue struct {
	Kind   ValueKind      `json:"kind" yaml:"kind"`
	Number int64          `json:"number,omitempty" yaml:"number,omitempty"`
	String string         `json:"string,omitempty" yaml:"string,omitempty"`
	Date   string         `json:"date,omitempty" yaml:"date,omitempty"`
	Set    *SetExpression `json:"set,omitempty" yaml:"set,omitempty"`
}

// NumberValue builds a number value.
func NumberValue(n int64) ConditionValue {
	return ConditionValue{Kind: ValueNumber, Number: n}
}

// StringValue builds a string value.
func StringValue(s string) ConditionValue {
	return ConditionValue{Kind: ValueString, String: s}
}

// DateValue builds a date value. The date string is kept as written and is
// not validated as a calendar value.
func DateValue(d string) ConditionValue {
	return ConditionValue{Kind: ValueDate, Date: d}
}

// SetValue builds a set-expression value.
func SetValue(set *SetExpression) ConditionValue {
	return ConditionValue{Kind: ValueSet, Set: set}
}

// Display returns the value formatted roughly as it appears in source.
func (v ConditionValue) Display() string {
	switch v.Kind {
	case ValueNumber:
		return fmt.Sprintf("%d", v.Number)
	case ValueString:
		return fmt.Sprintf("%q", v.String)
	case ValueDate:
		return v.Date
	case ValueSet:
		return v.Set.Display()
	}
	return ""
}

// SetKind discriminates the set expression variants.
type SetKind string

const (
	SetValues    SetKind = "values"     // literal value list
	SetUnion     SetKind = "union"      // elements of either operand
	SetIntersect SetKind = "intersect"  // elements of both operands
	SetDiff      SetKind = "difference" // elements of left not in right
)

// SetExpression is a recursive set-algebra expression over condition values.
// The surface grammar only produces literal value lists (via IN and range
// clauses); union, intersection and difference nodes are constructible
// programmatically for callers composing eligibility sets.
type SetExpression struct {
	Kind   SetKind          `json:"kind" yaml:"kind"`
	Values []ConditionValue `json:"values,omitempty" yaml:"values,omitempty"`
	Left   *SetExpression   `json:"left,omitempty" yaml:"left,omitempty"`
	Right  *SetExpression   `json:"right,omitempty" yaml:"right,omitempty"`
}

// NewValueSet builds a literal value-list set.
func NewValueSet(values ...ConditionValue) *SetExpression {
	return &SetExpression{Kind: SetValues, Values: values}
}

// Union builds the union of two set expressions.
func Union(left, right *SetExpression) *SetExpression {
	return &SetExpression{Kind: SetUnion, Left: left, Right: right}
}

// Intersect builds the intersection of two set expressions.
func Intersect(left, right *SetExpression) *SetExpression {
	return &SetExpression{Kind: SetIntersect, Left: left, Right: right}
}

// Difference builds the difference of two set expressions.
func Difference(left, right *SetExpression) *SetExpression {
	return &SetExpression{Kind: SetDiff, Left: left, Right: right}
}

// Display returns a readable rendering of the set expression.
func (s *SetExpression) Display() string {
	if s == nil {
		return "()"
	}
	switch s.Kind {
	case SetValues:
		parts := make([]string, len(s.Values))
		for i, v := range s.Values {
			parts[i] = v.Display()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case SetUnion:
		return s.Left.Display() + " union " + s.Right.Display()
	case SetIntersect:
		return s.Left.Display() + " intersect " + s.Right.Display()
	case SetDiff:
		return s.Left.Display() + " difference " + s.Right.Display()
	}
	return ""
}
