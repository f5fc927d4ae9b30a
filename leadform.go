// Package leadform ties the form core together: the field model, conditional
// visibility, submission validation, and the builder session. It re-exports
// the entry points most callers need so typical use requires a single import.
package leadform

import (
	"github.com/relayform/leadform/pkg/builder"
	"github.com/relayform/leadform/pkg/field"
	"github.com/relayform/leadform/pkg/formdoc"
	"github.com/relayform/leadform/pkg/submission"
	"github.com/relayform/leadform/pkg/visibility"
)

// Form is the persisted form document.
type Form = formdoc.Form

// FormField is one question inside a form.
type FormField = field.FormField

// Data maps field ids to submitted values.
type Data = submission.Data

// Result is the aggregate validation verdict for one submission.
type Result = submission.Result

// Session is the in-memory builder state behind the form editor.
type Session = builder.Session

// NewSession creates an empty builder session.
func NewSession() *Session {
	return builder.New(builder.Options{})
}

// HydrateSession creates a builder session from a loaded form's fields.
func HydrateSession(fields []FormField) *Session {
	return builder.Hydrate(fields, builder.Options{})
}

// VisibleFields filters the field list down to the fields currently shown,
// given the in-progress submission values.
func VisibleFields(fields []FormField, data Data) []FormField {
	out := make([]FormField, 0, len(fields))
	for _, f := range fields {
		if visibility.Visible(f, visibility.Values(data)) {
			out = append(out, f)
		}
	}
	return out
}

// ValidateSubmission runs the full intake pipeline: hidden fields are
// filtered out, then the remaining answers are validated and free-text values
// sanitized in place.
func ValidateSubmission(fields []FormField, data Data) Result {
	return submission.Validate(VisibleFields(fields, data), data)
}

// Lint checks a form document for structural problems.
func Lint(form Form) []formdoc.Issue {
	return formdoc.Lint(form)
}
