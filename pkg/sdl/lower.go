package sdl

import (
	"fmt"

	"veritas-hq/praetor/pkg/sdl/ast"
	sdlerrors "veritas-hq/praetor/pkg/sdl/errors"
)

// Statute is the lowered single-statute shape: just enough for callers
// that map eligibility conditions to an effect. It drops document-only
// features (imports, exceptions, amendments, defaults, raw trees).
type Statute struct {
	ID            string         `json:"id" yaml:"id"`
	Title         string         `json:"title" yaml:"title"`
	Preconditions []Precondition `json:"preconditions" yaml:"preconditions"`
	Effect        ast.Effect     `json:"effect" yaml:"effect"`
	Discretion    string         `json:"discretion,omitempty" yaml:"discretion,omitempty"`
	Jurisdiction  string         `json:"jurisdiction,omitempty" yaml:"jurisdiction,omitempty"`
	Version       int            `json:"version" yaml:"version"`
	EffectiveDate string         `json:"effective_date,omitempty" yaml:"effective_date,omitempty"`
	ExpiryDate    string         `json:"expiry_date,omitempty" yaml:"expiry_date,omitempty"`
}

// PreconditionKind discriminates the lowered condition variants.
type PreconditionKind string

const (
	PrecondAllOf        PreconditionKind = "all_of"
	PrecondAnyOf        PreconditionKind = "any_of"
	PrecondNot          PreconditionKind = "not"
	PrecondHasAttribute PreconditionKind = "has_attribute"
	PrecondComparison   PreconditionKind = "comparison"
	PrecondBetween      PreconditionKind = "between"
	PrecondIn           PreconditionKind = "in"
	PrecondLike         PreconditionKind = "like"
	PrecondTemporal     PreconditionKind = "temporal"
)

// Precondition is the downstream condition shape a ConditionNode subset
// lowers onto. Scalar operands are int64 for numbers and string for
// strings and dates.
type Precondition struct {
	Kind     PreconditionKind `json:"kind" yaml:"kind"`
	Field    string           `json:"field,omitempty" yaml:"field,omitempty"`
	Key      string           `json:"key,omitempty" yaml:"key,omitempty"`
	Operator string           `json:"operator,omitempty" yaml:"operator,omitempty"`
	Pattern  string           `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Value    any              `json:"value,omitempty" yaml:"value,omitempty"`
	Values   []any            `json:"values,omitempty" yaml:"values,omitempty"`
	Low      any              `json:"low,omitempty" yaml:"low,omitempty"`
	High     any              `json:"high,omitempty" yaml:"high,omitempty"`
	Children []*Precondition  `json:"children,omitempty" yaml:"children,omitempty"`
}

func errSingleStatute(count int) error {
	return sdlerrors.NewInvalidCondition(
		fmt.Sprintf("simplified API expects exactly one statute, found %d", count))
}

// Lower maps a parsed statute onto the simplified Statute shape.
//
// Condition variants with no downstream equivalent are rejected rather
// than approximated: MATCHES, IN_RANGE, NOT_IN_RANGE and set-algebra
// values fail with an invalid-condition error naming the construct.
// Statutes using them remain fully available through the document API.
func Lower(statute *ast.StatuteNode) (*Statute, error) {
	preconditions := make([]Precondition, 0, len(statute.Conditions))
	for _, cond := range statute.Conditions {
		lowered, err := lowerCondition(cond)
		if err != nil {
			return nil, err
		}
		preconditions = append(preconditions, *lowered)
	}

	return &Statute{
		ID:            statute.ID,
		Title:         statute.Title,
		Preconditions: preconditions,
		Effect:        statute.Effect,
		Discretion:    statute.Discretion,
		Jurisdiction:  statute.Jurisdiction,
		Version:       statute.Version,
		EffectiveDate: statute.EffectiveDate,
		ExpiryDate:    statute.ExpiryDate,
	}, nil
}

func lowerCondition(cond *ast.ConditionNode) (*Precondition, error) {
	switch cond.Kind {
	case ast.ConditionAnd, ast.ConditionOr, ast.ConditionNot:
		kind := PrecondAllOf
		switch cond.Kind {
		case ast.ConditionOr:
			kind = PrecondAnyOf
		case ast.ConditionNot:
			kind = PrecondNot
		}
		children := make([]*Precondition, 0, len(cond.Children))
		for _, child := range cond.Children {
			lowered, err := lowerCondition(child)
			if err != nil {
				return nil, err
			}
			children = append(children, lowered)
		}
		return &Precondition{Kind: kind, Children: children}, nil

	case ast.ConditionHasAttribute:
		return &Precondition{Kind: PrecondHasAttribute, Key: cond.Key}, nil

	case ast.ConditionComparison:
		value, err := lowerValue(*cond.Value)
		if err != nil {
			return nil, err
		}
		return &Precondition{
			Kind:     PrecondComparison,
			Field:    cond.Field,
			Operator: cond.Operator,
			Value:    value,
		}, nil

	case ast.ConditionBetween:
		low, err := lowerValue(*cond.Min)
		if err != nil {
			return nil, err
		}
		high, err := lowerValue(*cond.Max)
		if err != nil {
			return nil, err
		}
		return &Precondition{Kind: PrecondBetween, Field: cond.Field, Low: low, High: high}, nil

	case ast.ConditionIn:
		values := make([]any, 0, len(cond.Values))
		for _, v := range cond.Values {
			lowered, err := lowerValue(v)
			if err != nil {
				return nil, err
			}
			values = append(values, lowered)
		}
		return &Precondition{Kind: PrecondIn, Field: cond.Field, Values: values}, nil

	case ast.ConditionLike:
		return &Precondition{Kind: PrecondLike, Field: cond.Field, Pattern: cond.Pattern}, nil

	case ast.ConditionTemporal:
		field := "current_date"
		if cond.Temporal != nil && cond.Temporal.Kind == ast.TemporalDateField {
			field = cond.Temporal.Name
		}
		return &Precondition{
			Kind:     PrecondTemporal,
			Field:    field,
			Operator: cond.Operator,
			Value:    cond.Date,
		}, nil

	case ast.ConditionMatches, ast.ConditionInRange, ast.ConditionNotInRange:
		return nil, sdlerrors.NewInvalidCondition(fmt.Sprintf(
			"cannot lower %s condition to the simplified statute shape; use the document API", cond.Kind))
	}

	return nil, sdlerrors.NewInvalidCondition(fmt.Sprintf("unknown condition kind %q", cond.Kind))
}

func lowerValue(v ast.ConditionValue) (any, error) {
	switch v.Kind {
	case ast.ValueNumber:
		return v.Number, nil
	case ast.ValueString:
		return v.String, nil
	case ast.ValueDate:
		return v.Date, nil
	case ast.ValueSet:
		return nil, sdlerrors.NewInvalidCondition(
			"cannot lower set-algebra values to the simplified statute shape; use the document API")
	}
	return nil, sdlerrors.NewInvalidCondition(fmt.Sprintf("unknown value kind %q", v.Kind))
}
