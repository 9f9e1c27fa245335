package ast

// ConditionKind discriminates the closed set of condition node variants.
type ConditionKind string

const (
	ConditionAnd          ConditionKind = "and"           // binary conjunction
	ConditionOr           ConditionKind = "or"            // binary disjunction
	ConditionNot          ConditionKind = "not"           // negation
	ConditionHasAttribute ConditionKind = "has_attribute" // attribute presence check
	ConditionComparison   ConditionKind = "comparison"    // field op value
	ConditionBetween      ConditionKind = "between"       // inclusive bounds on both ends
	ConditionIn           ConditionKind = "in"            // membership in a value list
	ConditionLike         ConditionKind = "like"          // wildcard pattern match
	ConditionMatches      ConditionKind = "matches"       // regular expression match
	ConditionTemporal     ConditionKind = "temporal"      // date comparison
	ConditionInRange      ConditionKind = "in_range"      // numeric range with bound flags
	ConditionNotInRange   ConditionKind = "not_in_range"  // complement of in_range
)

// TemporalFieldKind discriminates the date source of a temporal comparison.
type TemporalFieldKind string

const (
	TemporalCurrentDate TemporalFieldKind = "current_date" // evaluation-time date
	TemporalDateField   TemporalFieldKind = "date_field"   // named date attribute
)

// TemporalField is the left-hand side of a temporal comparison: either the
// current date or a named date field of the subject.
type TemporalField struct {
	Kind TemporalFieldKind `json:"kind" yaml:"kind"`
	Name string            `json:"name,omitempty" yaml:"name,omitempty"`
}

// ConditionNode is one node of a boolean condition tree. The Kind field
// selects the variant; only the fields relevant to that variant are set.
// Nodes exclusively own their children: trees never share subtrees and
// never contain cycles, and they are immutable once built.
type ConditionNode struct {
	Kind ConditionKind `json:"kind" yaml:"kind"`

	// Children of logical operators. And/Or carry exactly two children,
	// Not exactly one.
	Children []*ConditionNode `json:"children,omitempty" yaml:"children,omitempty"`

	// Key of a has_attribute check.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	// Field name, lower-cased by the parser. Used by comparison, between,
	// in, like, matches, in_range and not_in_range.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`

	// Operator of a comparison or temporal comparison (>=, <=, ==, !=, >, <).
	Operator string `json:"operator,omitempty" yaml:"operator,omitempty"`

	// Value of a comparison.
	Value *ConditionValue `json:"value,omitempty" yaml:"value,omitempty"`

	// Min and Max bounds of a between clause.
	Min *ConditionValue `json:"min,omitempty" yaml:"min,omitempty"`
	Max *ConditionValue `json:"max,omitempty" yaml:"max,omitempty"`

	// Values of an in clause.
	Values []ConditionValue `json:"values,omitempty" yaml:"values,omitempty"`

	// Pattern of a like (wildcard) or matches (regex) clause. Matches
	// patterns are validated at parse time; they are stored verbatim.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Temporal is the date source of a temporal comparison; Date is the
	// ISO date literal it is compared against.
	Temporal *TemporalField `json:"temporal,omitempty" yaml:"temporal,omitempty"`
	Date     string         `json:"date,omitempty" yaml:"date,omitempty"`

	// Numeric bounds and inclusivity flags of in_range / not_in_range.
	RangeMin     int64 `json:"range_min,omitempty" yaml:"range_min,omitempty"`
	RangeMax     int64 `json:"range_max,omitempty" yaml:"range_max,omitempty"`
	InclusiveMin bool  `json:"inclusive_min,omitempty" yaml:"inclusive_min,omitempty"`
	InclusiveMax bool  `json:"inclusive_max,omitempty" yaml:"inclusive_max,omitempty"`
}

// And builds a binary conjunction node.
func And(left, right *ConditionNode) *ConditionNode {
	return &ConditionNode{Kind: ConditionAnd, Children: []*ConditionNode{left, right}}
}

// Or builds a binary disjunction node.
func Or(left, right *ConditionNode) *ConditionNode {
	return &ConditionNode{Kind: ConditionOr, Children: []*ConditionNode{left, right}}
}

// Not builds a negation node.
func Not(inner *ConditionNode) *ConditionNode {
	return &ConditionNode{Kind: ConditionNot, Children: []*ConditionNode{inner}}
}

// IsLogical returns true for and/or/not nodes.
func (c *ConditionNode) IsLogical() bool {
	return c.Kind == ConditionAnd || c.Kind == ConditionOr || c.Kind == ConditionNot
}

// Walk calls fn for the node and every descendant in depth-first order.
// Traversal stops early if fn returns false.
func (c *ConditionNode) Walk(fn func(*ConditionNode) bool) bool {
	if c == nil {
		return true
	}
	if !fn(c) {
		return false
	}
	for _, child := range c.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}
