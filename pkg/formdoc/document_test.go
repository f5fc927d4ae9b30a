package formdoc

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/relayform/leadform/pkg/field"
)

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"id": "form-1",
		"title": "Early access",
		"campaignId": "cmp-42",
		"fields": [
			{"id": "email", "type": "email", "label": "Email", "required": true, "order": 0}
		]
	}`)

	form, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if form.Title != "Early access" || form.CampaignID != "cmp-42" {
		t.Fatalf("unexpected document: %+v", form)
	}
	if len(form.Fields) != 1 || form.Fields[0].Type != field.TypeEmail {
		t.Fatalf("fields not decoded: %+v", form.Fields)
	}
}

func TestDecodeNestedCampaignObject(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"title": "Early access",
		"campaignId": {"_id": "cmp-42", "name": "Launch"},
		"fields": []
	}`)

	form, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if form.CampaignID != "cmp-42" {
		t.Fatalf("nested campaign object must normalize to the id, got %q", form.CampaignID)
	}
}

func TestDecodeYAML(t *testing.T) {
	t.Parallel()

	raw := []byte(`
title: Early access
campaignId: cmp-42
fields:
  - id: volume
    type: slider
    label: Volume
    order: 0
    config:
      min: 1
      max: 10
      step: 1
      showValue: true
`)

	form, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	cfg, ok := form.Fields[0].Config.(*field.SliderConfig)
	if !ok {
		t.Fatalf("YAML config must resolve to the slider variant, got %T", form.Fields[0].Config)
	}
	want := &field.SliderConfig{Min: 1, Max: 10, Step: 1, ShowValue: true}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("slider config mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := Decode(nil); err == nil {
		t.Fatalf("empty document must fail")
	}
	if _, err := Decode([]byte("{not json: [")); err == nil {
		t.Fatalf("malformed document must fail")
	}
}

func TestNormalizeReordersAndReindexes(t *testing.T) {
	t.Parallel()

	form := Form{
		Title: "T",
		Fields: []field.FormField{
			{ID: "b", Type: field.TypeText, Order: 9},
			{ID: "a", Type: field.TypeText, Order: 3},
		},
	}

	normalized := Normalize(form)
	if normalized.Fields[0].ID != "a" || normalized.Fields[1].ID != "b" {
		t.Fatalf("fields must sort by declared order: %+v", normalized.Fields)
	}
	if normalized.Fields[0].Order != 0 || normalized.Fields[1].Order != 1 {
		t.Fatalf("orders must be reindexed: %+v", normalized.Fields)
	}

	// The input document is left untouched.
	if form.Fields[0].ID != "b" || form.Fields[0].Order != 9 {
		t.Fatalf("Normalize must not mutate its input: %+v", form.Fields)
	}
}
