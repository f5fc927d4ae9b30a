package leadform

import (
	"testing"

	"github.com/relayform/leadform/pkg/field"
)

func TestValidateSubmissionSkipsHiddenFields(t *testing.T) {
	t.Parallel()

	maximum := 100.0
	fields := []FormField{
		{ID: "newsletter", Type: field.TypeCheckbox, Label: "Newsletter"},
		{
			ID: "frequency", Type: field.TypeNumber, Label: "Frequency",
			Required:   true,
			Validation: field.ValidationRules{Max: &maximum},
			Conditional: &field.ConditionalLogic{
				Logic:  field.LogicAnd,
				ShowIf: []field.Condition{{FieldID: "newsletter", Operator: field.OpEquals, Value: true}},
			},
		},
	}

	// Hidden: the required frequency field must not be validated.
	result := ValidateSubmission(fields, Data{"newsletter": false})
	if !result.Valid {
		t.Fatalf("hidden required field must be skipped, got %v", result.Errors)
	}

	// Visible and out of bounds.
	result = ValidateSubmission(fields, Data{"newsletter": true, "frequency": 500})
	if result.Valid {
		t.Fatalf("visible out-of-bounds field must fail")
	}
	if got := result.Errors["frequency"]; got != "Maximum value is 100" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	session := NewSession()
	added := session.Add(field.TypeEmail)

	hydrated := HydrateSession(session.Snapshot())
	if hydrated.Len() != 1 {
		t.Fatalf("hydrated session must carry the snapshot fields")
	}
	got, ok := hydrated.Field(added.ID)
	if !ok || got.Type != field.TypeEmail {
		t.Fatalf("field lost in round trip: %+v", got)
	}
}
