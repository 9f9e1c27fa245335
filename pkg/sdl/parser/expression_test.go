package parser

import (
	"reflect"
	"strings"
	"testing"

	"veritas-hq/praetor/pkg/sdl/ast"
	sdlerrors "veritas-hq/praetor/pkg/sdl/errors"
)

func mustParseCondition(t *testing.T, source string) *ast.ConditionNode {
	t.Helper()
	cond, err := New().ParseCondition(source)
	if err != nil {
		t.Fatalf("ParseCondition(%q) failed: %v", source, err)
	}
	return cond
}

func comparison(field, op string, value ast.ConditionValue) *ast.ConditionNode {
	return &ast.ConditionNode{
		Kind:     ast.ConditionComparison,
		Field:    field,
		Operator: op,
		Value:    &value,
	}
}

func TestParser_ParseCondition_Comparison(t *testing.T) {
	cond := mustParseCondition(t, "AGE >= 18")

	want := comparison("age", ">=", ast.NumberValue(18))
	if !reflect.DeepEqual(cond, want) {
		t.Errorf("ParseCondition = %+v, want %+v", cond, want)
	}
}

func TestParser_ParseCondition_Precedence(t *testing.T) {
	// AND binds tighter than OR: X OR Y AND Z parses as Or(X, And(Y, Z)).
	cond := mustParseCondition(t, "X == 1 OR Y == 2 AND Z == 3")

	want := ast.Or(
		comparison("x", "==", ast.NumberValue(1)),
		ast.And(
			comparison("y", "==", ast.NumberValue(2)),
			comparison("z", "==", ast.NumberValue(3)),
		),
	)
	if !reflect.DeepEqual(cond, want) {
		t.Errorf("ParseCondition = %+v, want %+v", cond, want)
	}
}

func TestParser_ParseCondition_ParensOverridePrecedence(t *testing.T) {
	cond := mustParseCondition(t, "(X == 1 OR Y == 2) AND Z == 3")

	want := ast.And(
		ast.Or(
			comparison("x", "==", ast.NumberValue(1)),
			comparison("y", "==", ast.NumberValue(2)),
		),
		comparison("z", "==", ast.NumberValue(3)),
	)
	if !reflect.DeepEqual(cond, want) {
		t.Errorf("ParseCondition = %+v, want %+v", cond, want)
	}
}

func TestParser_ParseCondition_LeftAssociativeChains(t *testing.T) {
	cond := mustParseCondition(t, "A == 1 OR B == 2 OR C == 3")

	want := ast.Or(
		ast.Or(
			comparison("a", "==", ast.NumberValue(1)),
			comparison("b", "==", ast.NumberValue(2)),
		),
		comparison("c", "==", ast.NumberValue(3)),
	)
	if !reflect.DeepEqual(cond, want) {
		t.Errorf("ParseCondition = %+v, want %+v", cond, want)
	}
}

func TestParser_ParseCondition_NotBindsTighterThanAnd(t *testing.T) {
	cond := mustParseCondition(t, "NOT X == 1 AND Y == 2")

	want := ast.And(
		ast.Not(comparison("x", "==", ast.NumberValue(1))),
		comparison("y", "==", ast.NumberValue(2)),
	)
	if !reflect.DeepEqual(cond, want) {
		t.Errorf("ParseCondition = %+v, want %+v", cond, want)
	}
}

func TestParser_ParseCondition_DoubleNegation(t *testing.T) {
	cond := mustParseCondition(t, "NOT NOT HAS license")

	want := ast.Not(ast.Not(&ast.ConditionNode{Kind: ast.ConditionHasAttribute, Key: "license"}))
	if !reflect.DeepEqual(cond, want) {
		t.Errorf("ParseCondition = %+v, want %+v", cond, want)
	}
}

func TestParser_ParseCondition_HasAttribute(t *testing.T) {
	cond := mustParseCondition(t, `HAS "residence permit"`)
	if cond.Kind != ast.ConditionHasAttribute {
		t.Fatalf("Kind = %q, want has_attribute", cond.Kind)
	}
	if cond.Key != "residence permit" {
		t.Errorf("Key = %q, want %q", cond.Key, "residence permit")
	}
}

func TestParser_ParseCondition_Between(t *testing.T) {
	cond := mustParseCondition(t, "INCOME BETWEEN 1000 AND 5000")

	if cond.Kind != ast.ConditionBetween {
		t.Fatalf("Kind = %q, want between", cond.Kind)
	}
	if cond.Field != "income" {
		t.Errorf("Field = %q, want income", cond.Field)
	}
	if cond.Min.Number != 1000 || cond.Max.Number != 5000 {
		t.Errorf("bounds = %d..%d, want 1000..5000", cond.Min.Number, cond.Max.Number)
	}
}

func TestParser_ParseCondition_BetweenDoesNotSwallowAnd(t *testing.T) {
	// The AND inside BETWEEN is part of the clause; a following AND is a
	// conjunction.
	cond := mustParseCondition(t, "INCOME BETWEEN 1000 AND 5000 AND AGE >= 18")
	if cond.Kind != ast.ConditionAnd {
		t.Fatalf("Kind = %q, want and", cond.Kind)
	}
	if cond.Children[0].Kind != ast.ConditionBetween {
		t.Errorf("left child = %q, want between", cond.Children[0].Kind)
	}
	if cond.Children[1].Kind != ast.ConditionComparison {
		t.Errorf("right child = %q, want comparison", cond.Children[1].Kind)
	}
}

func TestParser_ParseCondition_In(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"parenthesized", `REGION IN ("north", "south", "east")`},
		{"bare", `REGION IN "north", "south", "east"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := mustParseCondition(t, tt.source)
			if cond.Kind != ast.ConditionIn {
				t.Fatalf("Kind = %q, want in", cond.Kind)
			}
			if len(cond.Values) != 3 {
				t.Fatalf("len(Values) = %d, want 3", len(cond.Values))
			}
			if cond.Values[0].String != "north" {
				t.Errorf("Values[0] = %q, want north", cond.Values[0].String)
			}
		})
	}
}

func TestParser_ParseCondition_Like(t *testing.T) {
	cond := mustParseCondition(t, `NAME LIKE "Mc%"`)
	if cond.Kind != ast.ConditionLike {
		t.Fatalf("Kind = %q, want like", cond.Kind)
	}
	if cond.Pattern != "Mc%" {
		t.Errorf("Pattern = %q, want %q", cond.Pattern, "Mc%")
	}
}

func TestParser_ParseCondition_Matches(t *testing.T) {
	cond := mustParseCondition(t, `POSTCODE MATCHES "^\d{5}$"`)
	if cond.Kind != ast.ConditionMatches {
		t.Fatalf("Kind = %q, want matches", cond.Kind)
	}
	if cond.Pattern != `^\d{5}$` {
		t.Errorf("Pattern = %q, want backslashes preserved", cond.Pattern)
	}
}

func TestParser_ParseCondition_MatchesInvalidRegex(t *testing.T) {
	_, err := New().ParseCondition(`field MATCHES "[invalid(regex"`)
	if err == nil {
		t.Fatal("expected error for invalid regex")
	}

	var parseErr *sdlerrors.Error
	if ok := asSDLError(err, &parseErr); !ok {
		t.Fatalf("error type = %T, want *sdlerrors.Error", err)
	}
	if parseErr.Kind != sdlerrors.KindInvalidCondition {
		t.Errorf("Kind = %q, want invalid_condition", parseErr.Kind)
	}
	if !strings.Contains(parseErr.Message, "Invalid regex pattern") {
		t.Errorf("Message = %q, want it to name the invalid regex", parseErr.Message)
	}
}

func TestParser_ParseCondition_Temporal(t *testing.T) {
	cond := mustParseCondition(t, "CURRENT_DATE >= 2024-01-01")
	if cond.Kind != ast.ConditionTemporal {
		t.Fatalf("Kind = %q, want temporal", cond.Kind)
	}
	if cond.Temporal.Kind != ast.TemporalCurrentDate {
		t.Errorf("Temporal.Kind = %q, want current_date", cond.Temporal.Kind)
	}
	if cond.Date != "2024-01-01" {
		t.Errorf("Date = %q, want 2024-01-01", cond.Date)
	}
}

func TestParser_ParseCondition_TemporalAliases(t *testing.T) {
	for _, alias := range []string{"NOW", "TODAY"} {
		cond := mustParseCondition(t, alias+" < 2030-12-31")
		if cond.Kind != ast.ConditionTemporal {
			t.Errorf("%s: Kind = %q, want temporal", alias, cond.Kind)
		}
	}
}

func TestParser_ParseCondition_DateField(t *testing.T) {
	cond := mustParseCondition(t, "DATE_FIELD birthdate <= 2006-08-29")
	if cond.Kind != ast.ConditionTemporal {
		t.Fatalf("Kind = %q, want temporal", cond.Kind)
	}
	if cond.Temporal.Kind != ast.TemporalDateField {
		t.Errorf("Temporal.Kind = %q, want date_field", cond.Temporal.Kind)
	}
	if cond.Temporal.Name != "birthdate" {
		t.Errorf("Temporal.Name = %q, want birthdate", cond.Temporal.Name)
	}
}

func TestParser_ParseCondition_QuotedDateClassifiesAsDate(t *testing.T) {
	cond := mustParseCondition(t, `START == "2024-03-15"`)
	if cond.Value.Kind != ast.ValueDate {
		t.Errorf("Value.Kind = %q, want date", cond.Value.Kind)
	}
	if cond.Value.Date != "2024-03-15" {
		t.Errorf("Value.Date = %q, want 2024-03-15", cond.Value.Date)
	}
}

func TestParser_ParseCondition_Ranges(t *testing.T) {
	tests := []struct {
		source       string
		kind         ast.ConditionKind
		inclusiveMin bool
		inclusiveMax bool
	}{
		{"SCORE IN_RANGE 10..20", ast.ConditionInRange, true, true},
		{"SCORE IN_RANGE 10...20", ast.ConditionInRange, true, false},
		{"SCORE IN_RANGE (10..20)", ast.ConditionInRange, false, false},
		{"SCORE NOT_IN_RANGE 10..20", ast.ConditionNotInRange, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			cond := mustParseCondition(t, tt.source)
			if cond.Kind != tt.kind {
				t.Fatalf("Kind = %q, want %q", cond.Kind, tt.kind)
			}
			if cond.RangeMin != 10 || cond.RangeMax != 20 {
				t.Errorf("range = %d..%d, want 10..20", cond.RangeMin, cond.RangeMax)
			}
			if cond.InclusiveMin != tt.inclusiveMin {
				t.Errorf("InclusiveMin = %v, want %v", cond.InclusiveMin, tt.inclusiveMin)
			}
			if cond.InclusiveMax != tt.inclusiveMax {
				t.Errorf("InclusiveMax = %v, want %v", cond.InclusiveMax, tt.inclusiveMax)
			}
		})
	}
}

func TestParser_ParseCondition_TrailingInput(t *testing.T) {
	_, err := New().ParseCondition("AGE >= 18 BOGUS trailing")
	if err == nil {
		t.Fatal("expected error for trailing input")
	}
}

// asSDLError unwraps err into an *sdlerrors.Error.
func asSDLError(err error, target **sdlerrors.Error) bool {
	e, ok := err.(*sdlerrors.Error)
	if ok {
		*target = e
	}
	return ok
}
