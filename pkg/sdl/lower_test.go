package sdl

import (
	"errors"
	"strings"
	"testing"

	"veritas-hq/praetor/pkg/sdl/ast"
	sdlerrors "veritas-hq/praetor/pkg/sdl/errors"
)

func TestParseStatute_Basic(t *testing.T) {
	statute, warnings, err := ParseStatute(`STATUTE entry_age: "Minimum Entry Age" {
    JURISDICTION "federal"
    WHEN AGE >= 18 AND INCOME <= 5000000
    THEN GRANT "venue entry"
    DISCRETION "officials may demand identification"
}`)
	if err != nil {
		t.Fatalf("ParseStatute failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("len(warnings) = %d, want 0", len(warnings))
	}

	if statute.ID != "entry_age" {
		t.Errorf("ID = %q, want entry_age", statute.ID)
	}
	if statute.Effect.Type != ast.EffectGrant {
		t.Errorf("Effect.Type = %q, want grant", statute.Effect.Type)
	}
	if statute.Discretion != "officials may demand identification" {
		t.Errorf("Discretion = %q", statute.Discretion)
	}
	if statute.Version != 1 {
		t.Errorf("Version = %d, want 1", statute.Version)
	}

	if len(statute.Preconditions) != 1 {
		t.Fatalf("len(Preconditions) = %d, want 1", len(statute.Preconditions))
	}
	root := statute.Preconditions[0]
	if root.Kind != PrecondAllOf {
		t.Fatalf("root Kind = %q, want all_of", root.Kind)
	}
	if len(root.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(root.Children))
	}

	left := root.Children[0]
	if left.Kind != PrecondComparison || left.Field != "age" || left.Operator != ">=" {
		t.Errorf("left child = %+v, want age >= comparison", left)
	}
	if left.Value != int64(18) {
		t.Errorf("left value = %v (%T), want int64 18", left.Value, left.Value)
	}
}

func TestParseStatute_ConditionVariants(t *testing.T) {
	statute, _, err := ParseStatute(`STATUTE s: "S" {
    WHEN HAS license
    WHEN INCOME BETWEEN 1000 AND 5000
    WHEN REGION IN ("north", "south")
    WHEN NAME LIKE "Mc%"
    WHEN CURRENT_DATE >= 2024-01-01
    UNLESS HAS exemption
    THEN OBLIGATION "register"
}`)
	if err != nil {
		t.Fatalf("ParseStatute failed: %v", err)
	}

	wantKinds := []PreconditionKind{
		PrecondHasAttribute,
		PrecondBetween,
		PrecondIn,
		PrecondLike,
		PrecondTemporal,
		PrecondNot,
	}
	if len(statute.Preconditions) != len(wantKinds) {
		t.Fatalf("len(Preconditions) = %d, want %d", len(statute.Preconditions), len(wantKinds))
	}
	for i, want := range wantKinds {
		if statute.Preconditions[i].Kind != want {
			t.Errorf("Preconditions[%d].Kind = %q, want %q", i, statute.Preconditions[i].Kind, want)
		}
	}

	between := statute.Preconditions[1]
	if between.Low != int64(1000) || between.High != int64(5000) {
		t.Errorf("between bounds = %v / %v, want 1000 / 5000", between.Low, between.High)
	}

	in := statute.Preconditions[2]
	if len(in.Values) != 2 || in.Values[0] != "north" {
		t.Errorf("in values = %v, want [north south]", in.Values)
	}

	temporal := statute.Preconditions[4]
	if temporal.Field != "current_date" || temporal.Value != "2024-01-01" {
		t.Errorf("temporal = %+v", temporal)
	}
}

func TestParseStatute_RejectsMultipleStatutes(t *testing.T) {
	_, _, err := ParseStatute(`STATUTE a: "A" { WHEN X == 1 THEN GRANT "x" }
STATUTE b: "B" { WHEN Y == 2 THEN GRANT "y" }`)
	if err == nil {
		t.Fatal("expected error for two statutes")
	}
	if !strings.Contains(err.Error(), "exactly one statute, found 2") {
		t.Errorf("error %q does not name the statute count", err.Error())
	}
}

func TestParseStatute_RejectsEmptyDocument(t *testing.T) {
	_, _, err := ParseStatute("")
	if err == nil {
		t.Fatal("expected error for empty document")
	}
	if !strings.Contains(err.Error(), "found 0") {
		t.Errorf("error %q does not name the statute count", err.Error())
	}
}

func TestLower_RejectsMatches(t *testing.T) {
	_, _, err := ParseStatute(`STATUTE s: "S" {
    WHEN POSTCODE MATCHES "^\d{5}$"
    THEN GRANT "x"
}`)
	if err == nil {
		t.Fatal("expected error lowering a MATCHES condition")
	}

	var parseErr *sdlerrors.Error
	if !errors.As(err, &parseErr) {
		t.Fatalf("error type = %T, want *sdlerrors.Error", err)
	}
	if parseErr.Kind != sdlerrors.KindInvalidCondition {
		t.Errorf("Kind = %q, want invalid_condition", parseErr.Kind)
	}
	if !strings.Contains(err.Error(), "document API") {
		t.Errorf("error %q should point at the document API", err.Error())
	}
}

func TestLower_RejectsRanges(t *testing.T) {
	for _, clause := range []string{
		"SCORE IN_RANGE 10..20",
		"SCORE NOT_IN_RANGE 10..20",
	} {
		_, _, err := ParseStatute(`STATUTE s: "S" {
    WHEN ` + clause + `
    THEN GRANT "x"
}`)
		if err == nil {
			t.Errorf("%s: expected lowering error", clause)
			continue
		}
		var parseErr *sdlerrors.Error
		if !errors.As(err, &parseErr) || parseErr.Kind != sdlerrors.KindInvalidCondition {
			t.Errorf("%s: error = %v, want invalid_condition", clause, err)
		}
	}
}

func TestLower_RejectsSetValues(t *testing.T) {
	statute := &ast.StatuteNode{
		ID:      "s",
		Title:   "S",
		Version: 1,
		Conditions: []*ast.ConditionNode{{
			Kind:     ast.ConditionComparison,
			Field:    "region",
			Operator: "==",
			Value: &ast.ConditionValue{
				Kind: ast.ValueSet,
				Set:  ast.NewValueSet(ast.StringValue("north")),
			},
		}},
	}

	_, err := Lower(statute)
	if err == nil {
		t.Fatal("expected error lowering a set value")
	}
	if !strings.Contains(err.Error(), "set-algebra") {
		t.Errorf("error %q should name set-algebra values", err.Error())
	}
}

func TestLower_NestedLogical(t *testing.T) {
	statute, _, err := ParseStatute(`STATUTE s: "S" {
    WHEN (A == 1 OR B == 2) AND NOT HAS waiver
    THEN PROHIBIT "entry"
}`)
	if err != nil {
		t.Fatalf("ParseStatute failed: %v", err)
	}

	root := statute.Preconditions[0]
	if root.Kind != PrecondAllOf {
		t.Fatalf("root Kind = %q, want all_of", root.Kind)
	}
	if root.Children[0].Kind != PrecondAnyOf {
		t.Errorf("left Kind = %q, want any_of", root.Children[0].Kind)
	}
	if root.Children[1].Kind != PrecondNot {
		t.Errorf("right Kind = %q, want not", root.Children[1].Kind)
	}
	if root.Children[1].Children[0].Kind != PrecondHasAttribute {
		t.Errorf("negated Kind = %q, want has_attribute", root.Children[1].Children[0].Kind)
	}
}
