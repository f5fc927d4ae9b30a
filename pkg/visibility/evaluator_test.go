package visibility

import (
	"testing"

	"github.com/relayform/leadform/pkg/field"
)

func TestVisibleWithoutConditional(t *testing.T) {
	t.Parallel()

	plain := field.FormField{ID: "name", Type: field.TypeText}
	if !Visible(plain, Values{}) {
		t.Fatalf("field without conditional logic must always be visible")
	}
	if !Visible(plain, nil) {
		t.Fatalf("nil values must not change unconditional visibility")
	}
}

func TestVisibleEmptyShowIf(t *testing.T) {
	t.Parallel()

	vacuous := field.FormField{
		ID:          "name",
		Conditional: &field.ConditionalLogic{Logic: field.LogicAnd},
	}
	if !Visible(vacuous, Values{}) {
		t.Fatalf("empty showIf list must be vacuously visible")
	}
}

func TestIsEmptyOperator(t *testing.T) {
	t.Parallel()

	rule := field.ConditionalLogic{
		Logic:  field.LogicAnd,
		ShowIf: []field.Condition{{FieldID: "a", Operator: field.OpIsEmpty}},
	}

	if !Evaluate(rule, Values{}) {
		t.Fatalf("absent key must count as empty")
	}
	if Evaluate(rule, Values{"a": "x"}) {
		t.Fatalf("non-empty value must not count as empty")
	}
	if !Evaluate(rule, Values{"a": ""}) {
		t.Fatalf("empty string must count as empty")
	}
	if !Evaluate(rule, Values{"a": []any{}}) {
		t.Fatalf("empty collection must count as empty")
	}
}

func TestLogicCombination(t *testing.T) {
	t.Parallel()

	conditions := []field.Condition{
		{FieldID: "a", Operator: field.OpEquals, Value: "yes"},
		{FieldID: "b", Operator: field.OpEquals, Value: "yes"},
	}
	values := Values{"a": "yes", "b": "no"}

	and := field.ConditionalLogic{Logic: field.LogicAnd, ShowIf: conditions}
	if Evaluate(and, values) {
		t.Fatalf("and with one false condition must be false")
	}

	or := field.ConditionalLogic{Logic: field.LogicOr, ShowIf: conditions}
	if !Evaluate(or, values) {
		t.Fatalf("or with one true condition must be true")
	}
}

func TestOperators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cond   field.Condition
		values Values
		want   bool
	}{
		{"equals string", field.Condition{FieldID: "a", Operator: field.OpEquals, Value: "x"}, Values{"a": "x"}, true},
		{"equals numeric coercion", field.Condition{FieldID: "a", Operator: field.OpEquals, Value: "5"}, Values{"a": 5}, true},
		{"not_equals", field.Condition{FieldID: "a", Operator: field.OpNotEquals, Value: "x"}, Values{"a": "y"}, true},
		{"contains substring", field.Condition{FieldID: "a", Operator: field.OpContains, Value: "ell"}, Values{"a": "hello"}, true},
		{"contains membership", field.Condition{FieldID: "a", Operator: field.OpContains, Value: "b"}, Values{"a": []any{"a", "b"}}, true},
		{"contains miss", field.Condition{FieldID: "a", Operator: field.OpContains, Value: "z"}, Values{"a": []string{"a", "b"}}, false},
		{"contains absent value", field.Condition{FieldID: "a", Operator: field.OpContains, Value: "z"}, Values{}, false},
		{"greater_than true", field.Condition{FieldID: "a", Operator: field.OpGreaterThan, Value: 3}, Values{"a": 7}, true},
		{"greater_than string operand", field.Condition{FieldID: "a", Operator: field.OpGreaterThan, Value: 3}, Values{"a": "10"}, true},
		{"greater_than non-numeric", field.Condition{FieldID: "a", Operator: field.OpGreaterThan, Value: 3}, Values{"a": "soon"}, false},
		{"less_than", field.Condition{FieldID: "a", Operator: field.OpLessThan, Value: 3}, Values{"a": 2}, true},
		{"is_not_empty absent", field.Condition{FieldID: "a", Operator: field.OpIsNotEmpty}, Values{}, false},
		{"is_not_empty present", field.Condition{FieldID: "a", Operator: field.OpIsNotEmpty}, Values{"a": "x"}, true},
		{"unknown operator", field.Condition{FieldID: "a", Operator: field.Operator("matches")}, Values{"a": "x"}, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rule := field.ConditionalLogic{Logic: field.LogicAnd, ShowIf: []field.Condition{tc.cond}}
			if got := Evaluate(rule, tc.values); got != tc.want {
				t.Fatalf("Evaluate(%+v, %+v) = %v, want %v", tc.cond, tc.values, got, tc.want)
			}
		})
	}
}

func TestDanglingReferenceNeverPanics(t *testing.T) {
	t.Parallel()

	rule := field.ConditionalLogic{
		Logic: field.LogicAnd,
		ShowIf: []field.Condition{
			{FieldID: "removed", Operator: field.OpEquals, Value: "yes"},
		},
	}
	if Evaluate(rule, Values{"other": "yes"}) {
		t.Fatalf("condition against a missing field must treat the value as absent")
	}

	empty := field.ConditionalLogic{
		Logic:  field.LogicOr,
		ShowIf: []field.Condition{{FieldID: "removed", Operator: field.OpIsEmpty}},
	}
	if !Evaluate(empty, Values{}) {
		t.Fatalf("is_empty against a missing field must be true")
	}
}
