// Package submission validates end-user answers against a form's field list
// before they are handed to the backend. Validation never fails hard: every
// problem is collected as a per-field message and the caller decides how to
// surface them. As a side effect, free-text values are sanitized in place.
package submission

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/relayform/leadform/pkg/field"
)

// Data maps field ids to the values an end user entered. Value shapes vary by
// field type: strings, numbers, string slices for multi-choice fields, file
// references for uploads.
type Data map[string]any

// Result is the aggregate verdict for one submission. Errors holds only the
// fields that failed, keyed by field id.
type Result struct {
	Valid  bool              `json:"isValid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Pragmatic email grammar, close to the HTML5 input[type=email] rule rather
// than full RFC 5322.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// Validate checks data against the field list in list order. Text and
// textarea values are sanitized and written back into data, so the validator
// normalizes input as well as judging it. Conditional visibility is not
// consulted here; callers filter the field list with pkg/visibility first when
// hidden fields should be skipped.
func Validate(fields []field.FormField, data Data) Result {
	errors := make(map[string]string)

	for _, f := range fields {
		value, present := data[f.ID]

		if isRequired(f) && (!present || isBlankString(value)) {
			errors[f.ID] = errorMessage(f, labelFor(f)+" is required")
			continue
		}

		// Absent optional answers are always valid.
		if !present || isBlank(value) {
			continue
		}

		switch f.Type {
		case field.TypeEmail:
			if !emailPattern.MatchString(strings.TrimSpace(asString(value))) {
				errors[f.ID] = errorMessage(f, "Please enter a valid email address")
			}
		case field.TypeText, field.TypeTextarea:
			if text, ok := value.(string); ok {
				data[f.ID] = Sanitize(text)
			}
			// MinLength/MaxLength are declared on ValidationRules but not
			// enforced pending product confirmation; see the package tests
			// pinning this behaviour.
		case field.TypeNumber, field.TypeSlider:
			number, ok := asNumber(value)
			if !ok {
				errors[f.ID] = errorMessage(f, "Please enter a valid number")
				continue
			}
			if f.Validation.Min != nil && number < *f.Validation.Min {
				errors[f.ID] = errorMessage(f, "Minimum value is "+formatNumber(*f.Validation.Min))
			}
			if f.Validation.Max != nil && number > *f.Validation.Max {
				errors[f.ID] = errorMessage(f, "Maximum value is "+formatNumber(*f.Validation.Max))
			}
		}
	}

	if len(errors) == 0 {
		return Result{Valid: true}
	}
	return Result{Valid: false, Errors: errors}
}

func isRequired(f field.FormField) bool {
	return f.Required || f.Validation.Required
}

func labelFor(f field.FormField) string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.ID
}

// errorMessage applies the author-provided override when one is declared.
func errorMessage(f field.FormField, fallback string) string {
	if custom := strings.TrimSpace(f.Validation.CustomMessage); custom != "" {
		return custom
	}
	return fallback
}

func isBlankString(value any) bool {
	if value == nil {
		return true
	}
	text, ok := value.(string)
	return ok && strings.TrimSpace(text) == ""
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	default:
		return false
	}
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
