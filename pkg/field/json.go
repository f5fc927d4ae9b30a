package field

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeConfig parses a raw configuration object into the variant matching the
// field type. An empty payload yields the type's default configuration so
// loaded forms are seeded the same way the builder seeds new fields.
func DecodeConfig(t Type, raw []byte) (Config, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return DefaultConfig(t), nil
	}

	cfg := DefaultConfig(t)
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("field: decode %s config: %w", t, err)
	}
	return cfg, nil
}

// UnmarshalJSON decodes a field, resolving the config union variant from the
// declared field type.
func (f *FormField) UnmarshalJSON(data []byte) error {
	type shadow struct {
		ID          string            `json:"id"`
		SecondaryID string            `json:"_id"`
		Type        Type              `json:"type"`
		Label       string            `json:"label"`
		Options     []string          `json:"options"`
		Placeholder string            `json:"placeholder"`
		Description string            `json:"description"`
		Required    bool              `json:"required"`
		Order       int               `json:"order"`
		Validation  ValidationRules   `json:"validation"`
		Config      json.RawMessage   `json:"config"`
		Conditional *ConditionalLogic `json:"conditional"`
	}

	var s shadow
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("field: decode field: %w", err)
	}

	cfg, err := DecodeConfig(s.Type, s.Config)
	if err != nil {
		return err
	}

	f.ID = s.ID
	f.SecondaryID = s.SecondaryID
	f.Type = s.Type
	f.Label = s.Label
	f.Options = s.Options
	f.Placeholder = s.Placeholder
	f.Description = s.Description
	f.Required = s.Required
	f.Order = s.Order
	f.Validation = s.Validation
	f.Config = cfg
	f.Conditional = s.Conditional
	return nil
}
