package ast

// EffectType is the legal effect a statute produces when its conditions hold.
type EffectType string

const (
	EffectGrant      EffectType = "grant"
	EffectObligation EffectType = "obligation"
	EffectProhibit   EffectType = "prohibit"
	EffectRevoke     EffectType = "revoke"
)

// Effect is the outcome clause of a statute.
type Effect struct {
	Type        EffectType `json:"type" yaml:"type"`
	Description string     `json:"description" yaml:"description"`
}

// ExceptionClause carves out a case where the statute does not apply.
// Conditions is empty when the exception is unconditional.
type ExceptionClause struct {
	Conditions  []*ConditionNode `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Description string           `json:"description" yaml:"description"`
}

// AmendmentClause records a change this statute makes to another statute.
// Date is stored as an unpadded "Y-M-D" string exactly as the parser
// normalizes it; it is not validated as a calendar value.
type AmendmentClause struct {
	TargetID    string `json:"target_id" yaml:"target_id"`
	Version     int    `json:"version,omitempty" yaml:"version,omitempty"`
	Date        string `json:"date,omitempty" yaml:"date,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// DefaultClause supplies a default value for an input field.
type DefaultClause struct {
	Field string         `json:"field" yaml:"field"`
	Value ConditionValue `json:"value" yaml:"value"`
}

// StatuteNode is one parsed STATUTE block.
//
// Conditions holds the WHEN clauses and desugared UNLESS clauses in source
// order; the list is an implicit conjunction. Version defaults to 1 when no
// VERSION clause is present.
type StatuteNode struct {
	ID            string            `json:"id" yaml:"id"`
	Title         string            `json:"title" yaml:"title"`
	Jurisdiction  string            `json:"jurisdiction,omitempty" yaml:"jurisdiction,omitempty"`
	Version       int               `json:"version" yaml:"version"`
	EffectiveDate string            `json:"effective_date,omitempty" yaml:"effective_date,omitempty"`
	ExpiryDate    string            `json:"expiry_date,omitempty" yaml:"expiry_date,omitempty"`
	Conditions    []*ConditionNode  `json:"conditions" yaml:"conditions"`
	Effect        Effect            `json:"effect" yaml:"effect"`
	Discretion    string            `json:"discretion,omitempty" yaml:"discretion,omitempty"`
	Exceptions    []ExceptionClause `json:"exceptions,omitempty" yaml:"exceptions,omitempty"`
	Amendments    []AmendmentClause `json:"amendments,omitempty" yaml:"amendments,omitempty"`
	Supersedes    []string          `json:"supersedes,omitempty" yaml:"supersedes,omitempty"`
	Requires      []string          `json:"requires,omitempty" yaml:"requires,omitempty"`
	Defaults      []DefaultClause   `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	Location      SourceLocation    `json:"location" yaml:"location"`
}
