// Package visibility decides whether a form field should currently be shown,
// based on its conditional-display rules and the in-progress submission
// values. Evaluation is pure: callers re-run it whenever values change.
package visibility

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/relayform/leadform/pkg/field"
)

// Values maps field ids to their current submitted values. A missing key is
// treated the same as an absent/empty value.
type Values map[string]any

// Visible reports whether the field should be displayed given the current
// submission values. Fields without conditional logic are always visible, as
// are rules with an empty ShowIf list.
func Visible(f field.FormField, values Values) bool {
	if f.Conditional == nil {
		return true
	}
	return Evaluate(*f.Conditional, values)
}

// Evaluate runs a conditional rule against the current values. Conditions
// referencing removed or unknown field ids evaluate against a nil value and
// never fail.
func Evaluate(rule field.ConditionalLogic, values Values) bool {
	if len(rule.ShowIf) == 0 {
		return true
	}

	switch rule.Logic {
	case field.LogicOr:
		for _, cond := range rule.ShowIf {
			if holds(cond, values) {
				return true
			}
		}
		return false
	default:
		// "and" is the default combination mode.
		for _, cond := range rule.ShowIf {
			if !holds(cond, values) {
				return false
			}
		}
		return true
	}
}

func holds(cond field.Condition, values Values) bool {
	value := values[cond.FieldID]

	switch cond.Operator {
	case field.OpEquals:
		return looselyEqual(value, cond.Value)
	case field.OpNotEquals:
		return !looselyEqual(value, cond.Value)
	case field.OpContains:
		return contains(value, cond.Value)
	case field.OpGreaterThan:
		return numericCompare(value, cond.Value, func(a, b float64) bool { return a > b })
	case field.OpLessThan:
		return numericCompare(value, cond.Value, func(a, b float64) bool { return a < b })
	case field.OpIsEmpty:
		return isEmpty(value)
	case field.OpIsNotEmpty:
		return !isEmpty(value)
	default:
		return false
	}
}

// looselyEqual compares after coercing both sides to a comparable primitive:
// numerically when both sides parse as numbers, otherwise as strings.
func looselyEqual(got, want any) bool {
	gotNum, gotOK := coerceNumber(got)
	wantNum, wantOK := coerceNumber(want)
	if gotOK && wantOK {
		return gotNum == wantNum
	}
	return coerceString(got) == coerceString(want)
}

func contains(value, needle any) bool {
	target := coerceString(needle)
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if coerceString(item) == target {
				return true
			}
		}
		return false
	case []string:
		for _, item := range v {
			if item == target {
				return true
			}
		}
		return false
	default:
		if value == nil {
			return false
		}
		return strings.Contains(coerceString(value), target)
	}
}

func numericCompare(value, bound any, cmp func(a, b float64) bool) bool {
	got, ok := coerceNumber(value)
	if !ok {
		return false
	}
	want, ok := coerceNumber(bound)
	if !ok {
		return false
	}
	return cmp(got, want)
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

func coerceNumber(value any) (float64, bool) {
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
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}
