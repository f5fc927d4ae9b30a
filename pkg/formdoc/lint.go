package formdoc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/relayform/leadform/pkg/field"
)

// Issue is a single structural problem found in a form document. FieldID is
// empty for form-level issues.
type Issue struct {
	FieldID string `json:"fieldId,omitempty"`
	Message string `json:"message"`
}

// Lint checks a form document for structural problems that would make it
// unusable at submission time: duplicate or blank field ids, unknown types,
// dangling conditional references, missing choice options, and inconsistent
// bounds. Issues are reported, never thrown; an empty slice means the
// document is sound.
func Lint(form Form) []Issue {
	var issues []Issue

	if strings.TrimSpace(form.Title) == "" {
		issues = append(issues, Issue{Message: "form title is required"})
	}

	ids := make(map[string]bool, len(form.Fields))
	for _, f := range form.Fields {
		if strings.TrimSpace(f.ID) == "" {
			issues = append(issues, Issue{Message: "field is missing an id"})
			continue
		}
		if ids[f.ID] {
			issues = append(issues, Issue{FieldID: f.ID, Message: "duplicate field id"})
			continue
		}
		ids[f.ID] = true
	}

	for _, f := range form.Fields {
		issues = append(issues, lintField(f, ids)...)
	}
	return issues
}

func lintField(f field.FormField, ids map[string]bool) []Issue {
	var issues []Issue

	report := func(format string, args ...any) {
		issues = append(issues, Issue{FieldID: f.ID, Message: fmt.Sprintf(format, args...)})
	}

	if !field.Known(f.Type) {
		report("unknown field type %q", f.Type)
	}

	switch f.Type {
	case field.TypeRadio, field.TypeCheckbox, field.TypeSelect:
		if !hasChoices(f) {
			report("choice field needs at least one option")
		}
	case field.TypeSlider:
		if cfg, ok := f.Config.(*field.SliderConfig); ok {
			if cfg.Min >= cfg.Max {
				report("slider min must be below max")
			}
			if cfg.Step <= 0 {
				report("slider step must be positive")
			}
		}
	case field.TypeRating:
		if cfg, ok := f.Config.(*field.RatingConfig); ok && cfg.MaxRating < 1 {
			report("rating needs a positive maximum")
		}
	case field.TypeFile:
		if cfg, ok := f.Config.(*field.FileConfig); ok && cfg.MaxFileSize < 0 {
			report("file size limit cannot be negative")
		}
	}

	rules := f.Validation
	if rules.Min != nil && rules.Max != nil && *rules.Min > *rules.Max {
		report("validation min exceeds max")
	}
	if rules.MinLength != nil && rules.MaxLength != nil && *rules.MinLength > *rules.MaxLength {
		report("validation minLength exceeds maxLength")
	}
	if rules.Pattern != "" {
		if _, err := regexp.Compile(rules.Pattern); err != nil {
			report("validation pattern does not compile: %v", err)
		}
	}

	if f.Conditional != nil {
		switch f.Conditional.Logic {
		case field.LogicAnd, field.LogicOr, "":
		default:
			report("conditional logic must be %q or %q", field.LogicAnd, field.LogicOr)
		}
		for _, cond := range f.Conditional.ShowIf {
			if cond.FieldID == f.ID {
				report("conditional rule references its own field")
				continue
			}
			if !ids[cond.FieldID] {
				report("conditional rule references unknown field %q", cond.FieldID)
			}
			if !knownOperator(cond.Operator) {
				report("unknown conditional operator %q", cond.Operator)
			}
		}
	}

	return issues
}

func hasChoices(f field.FormField) bool {
	if len(f.Options) > 0 {
		return true
	}
	cfg, ok := f.Config.(*field.ChoiceConfig)
	return ok && len(cfg.Options) > 0
}

func knownOperator(op field.Operator) bool {
	switch op {
	case field.OpEquals, field.OpNotEquals, field.OpContains,
		field.OpGreaterThan, field.OpLessThan, field.OpIsEmpty, field.OpIsNotEmpty:
		return true
	default:
		return false
	}
}
