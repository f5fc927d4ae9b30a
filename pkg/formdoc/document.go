// Package formdoc models the persisted form document exchanged with the
// backend form service: metadata, campaign association, and the ordered field
// list. Documents decode from JSON or YAML and normalize the shape quirks the
// backend emits.
package formdoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/relayform/leadform/pkg/field"
)

// CampaignID is the marketing-campaign association for a form. The backend
// returns it either as a bare id string or as a nested object carrying an
// `_id` key; both shapes decode to the flat id.
type CampaignID string

// UnmarshalJSON accepts both campaign shapes.
func (c *CampaignID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = ""
		return nil
	}

	if trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return fmt.Errorf("formdoc: decode campaign id: %w", err)
		}
		*c = CampaignID(id)
		return nil
	}

	var nested struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(trimmed, &nested); err != nil {
		return fmt.Errorf("formdoc: decode campaign object: %w", err)
	}
	*c = CampaignID(nested.ID)
	return nil
}

// Form is the persisted form document.
type Form struct {
	ID          string            `json:"id,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	CampaignID  CampaignID        `json:"campaignId,omitempty"`
	IsPublic    bool              `json:"isPublic,omitempty"`
	Fields      []field.FormField `json:"fields"`
}

// Decode parses a form document from JSON or YAML. JSON is tried first; YAML
// input is converted through JSON so field configs resolve to the right
// variant either way.
func Decode(raw []byte) (Form, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Form{}, errors.New("formdoc: document is empty")
	}

	var form Form
	if err := json.Unmarshal(raw, &form); err == nil {
		return form, nil
	}

	var tree any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return Form{}, errors.New("formdoc: document is neither valid JSON nor YAML")
	}
	converted, err := json.Marshal(tree)
	if err != nil {
		return Form{}, fmt.Errorf("formdoc: convert YAML document: %w", err)
	}
	if err := json.Unmarshal(converted, &form); err != nil {
		return Form{}, fmt.Errorf("formdoc: decode document: %w", err)
	}
	return form, nil
}

// Normalize returns a copy of the form with fields sorted by their declared
// order and order values reassigned to match list position, restoring the
// monotonic-order invariant for documents saved by older clients.
func Normalize(form Form) Form {
	out := form
	out.Fields = make([]field.FormField, 0, len(form.Fields))
	for _, f := range form.Fields {
		out.Fields = append(out.Fields, f.Clone())
	}
	sort.SliceStable(out.Fields, func(i, j int) bool {
		return out.Fields[i].Order < out.Fields[j].Order
	})
	for index := range out.Fields {
		out.Fields[index].Order = index
	}
	return out
}
