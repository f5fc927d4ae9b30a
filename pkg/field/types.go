package field

// Type is the closed enumeration of supported form field kinds.
type Type string

const (
	TypeText     Type = "text"
	TypeTextarea Type = "textarea"
	TypeEmail    Type = "email"
	TypeNumber   Type = "number"
	TypeRadio    Type = "radio"
	TypeCheckbox Type = "checkbox"
	TypeSelect   Type = "select"
	TypeSlider   Type = "slider"
	TypeDate     Type = "date"
	TypeFile     Type = "file"
	TypeRating   Type = "rating"
)

// Types lists every supported field type in display order.
func Types() []Type {
	return []Type{
		TypeText, TypeTextarea, TypeEmail, TypeNumber, TypeRadio,
		TypeCheckbox, TypeSelect, TypeSlider, TypeDate, TypeFile, TypeRating,
	}
}

// Known reports whether t is a member of the closed type enumeration.
func Known(t Type) bool {
	switch t {
	case TypeText, TypeTextarea, TypeEmail, TypeNumber, TypeRadio,
		TypeCheckbox, TypeSelect, TypeSlider, TypeDate, TypeFile, TypeRating:
		return true
	default:
		return false
	}
}

// ValidationRules captures the optional per-field constraints a form author
// can declare. MinLength/MaxLength are part of the declared rule set but are
// not currently enforced by the submission validator; see pkg/submission.
type ValidationRules struct {
	Required      bool     `json:"required,omitempty"`
	MinLength     *int     `json:"minLength,omitempty"`
	MaxLength     *int     `json:"maxLength,omitempty"`
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
	Pattern       string   `json:"pattern,omitempty"`
	CustomMessage string   `json:"customMessage,omitempty"`
}

// Option is a single selectable choice for radio/checkbox/select fields.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Operator identifies a conditional-logic comparison.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpIsEmpty     Operator = "is_empty"
	OpIsNotEmpty  Operator = "is_not_empty"
)

// LogicMode selects how multiple conditions combine.
type LogicMode string

const (
	LogicAnd LogicMode = "and"
	LogicOr  LogicMode = "or"
)

// Condition compares the submitted value of another field against Value.
type Condition struct {
	FieldID  string   `json:"fieldId"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value,omitempty"`
}

// ConditionalLogic controls field visibility. An empty ShowIf list is
// vacuously visible; a missing referenced field is treated as an absent value.
type ConditionalLogic struct {
	ShowIf []Condition `json:"showIf"`
	Logic  LogicMode   `json:"logic"`
}

// FormField is one question inside a form. ID identifies the field within the
// builder session and submissions; SecondaryID carries the identifier assigned
// by the backend once the form is persisted.
type FormField struct {
	ID          string            `json:"id"`
	SecondaryID string            `json:"_id,omitempty"`
	Type        Type              `json:"type"`
	Label       string            `json:"label"`
	Options     []string          `json:"options,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Required    bool              `json:"required,omitempty"`
	Order       int               `json:"order"`
	Validation  ValidationRules   `json:"validation,omitempty"`
	Config      Config            `json:"config,omitempty"`
	Conditional *ConditionalLogic `json:"conditional,omitempty"`
}

// Clone returns a deep copy of the field so builder snapshots cannot alias
// session-owned state.
func (f FormField) Clone() FormField {
	out := f
	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}
	if f.Validation.MinLength != nil {
		v := *f.Validation.MinLength
		out.Validation.MinLength = &v
	}
	if f.Validation.MaxLength != nil {
		v := *f.Validation.MaxLength
		out.Validation.MaxLength = &v
	}
	if f.Validation.Min != nil {
		v := *f.Validation.Min
		out.Validation.Min = &v
	}
	if f.Validation.Max != nil {
		v := *f.Validation.Max
		out.Validation.Max = &v
	}
	if f.Config != nil {
		out.Config = f.Config.clone()
	}
	if f.Conditional != nil {
		cond := ConditionalLogic{
			Logic:  f.Conditional.Logic,
			ShowIf: append([]Condition(nil), f.Conditional.ShowIf...),
		}
		out.Conditional = &cond
	}
	return out
}
