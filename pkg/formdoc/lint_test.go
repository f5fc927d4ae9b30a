package formdoc

import (
	"strings"
	"testing"

	"github.com/relayform/leadform/pkg/field"
)

func lintMessages(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Message)
	}
	return out
}

func assertIssue(t *testing.T, issues []Issue, fragment string) {
	t.Helper()
	for _, issue := range issues {
		if strings.Contains(issue.Message, fragment) {
			return
		}
	}
	t.Fatalf("expected an issue containing %q, got %v", fragment, lintMessages(issues))
}

func TestLintCleanForm(t *testing.T) {
	t.Parallel()

	form := Form{
		Title: "Early access",
		Fields: []field.FormField{
			{ID: "name", Type: field.TypeText, Label: "Name", Order: 0},
			{
				ID: "plan", Type: field.TypeSelect, Label: "Plan", Order: 1,
				Config: &field.ChoiceConfig{Options: []field.Option{{Label: "Pro", Value: "pro"}}},
			},
			{
				ID: "seats", Type: field.TypeNumber, Label: "Seats", Order: 2,
				Conditional: &field.ConditionalLogic{
					Logic:  field.LogicAnd,
					ShowIf: []field.Condition{{FieldID: "plan", Operator: field.OpEquals, Value: "pro"}},
				},
			},
		},
	}

	if issues := Lint(form); len(issues) != 0 {
		t.Fatalf("clean form must produce no issues, got %v", lintMessages(issues))
	}
}

func TestLintStructuralProblems(t *testing.T) {
	t.Parallel()

	form := Form{
		Fields: []field.FormField{
			{ID: "dup", Type: field.TypeText},
			{ID: "dup", Type: field.TypeText},
			{ID: "", Type: field.TypeText},
			{ID: "mystery", Type: field.Type("hologram")},
			{ID: "choices", Type: field.TypeRadio},
			{ID: "range", Type: field.TypeSlider, Config: &field.SliderConfig{Min: 10, Max: 5, Step: 0}},
			{
				ID: "gated", Type: field.TypeText,
				Conditional: &field.ConditionalLogic{
					Logic: field.LogicMode("xor"),
					ShowIf: []field.Condition{
						{FieldID: "ghost", Operator: field.OpEquals},
						{FieldID: "gated", Operator: field.OpIsEmpty},
						{FieldID: "dup", Operator: field.Operator("matches")},
					},
				},
			},
			{
				ID: "bounded", Type: field.TypeNumber,
				Validation: field.ValidationRules{
					Min: floatPtr(10), Max: floatPtr(5),
					Pattern: "([",
				},
			},
		},
	}

	issues := Lint(form)
	assertIssue(t, issues, "form title is required")
	assertIssue(t, issues, "duplicate field id")
	assertIssue(t, issues, "missing an id")
	assertIssue(t, issues, `unknown field type "hologram"`)
	assertIssue(t, issues, "at least one option")
	assertIssue(t, issues, "slider min must be below max")
	assertIssue(t, issues, "slider step must be positive")
	assertIssue(t, issues, "conditional logic must be")
	assertIssue(t, issues, `references unknown field "ghost"`)
	assertIssue(t, issues, "references its own field")
	assertIssue(t, issues, `unknown conditional operator "matches"`)
	assertIssue(t, issues, "validation min exceeds max")
	assertIssue(t, issues, "pattern does not compile")
}

func TestLintFlatOptionsSatisfyChoiceFields(t *testing.T) {
	t.Parallel()

	form := Form{
		Title: "T",
		Fields: []field.FormField{
			{ID: "color", Type: field.TypeRadio, Options: []string{"red", "blue"}},
		},
	}
	if issues := Lint(form); len(issues) != 0 {
		t.Fatalf("legacy flat options must satisfy the choice check, got %v", lintMessages(issues))
	}
}

func floatPtr(v float64) *float64 { return &v }
