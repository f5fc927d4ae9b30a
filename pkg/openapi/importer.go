// Package openapi seeds a form's field list from an OpenAPI operation, so a
// lead-capture form can start from the request body of an existing API
// endpoint instead of an empty canvas.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/relayform/leadform/pkg/field"
)

var errOperationIDRequired = errors.New("openapi import: operation id is required")

// Import extracts form fields from the request body of the identified
// operation. Properties that have no sensible form representation (nested
// objects, free-form arrays) are skipped rather than failing the import.
func Import(ctx context.Context, raw []byte, operationID string) ([]field.FormField, error) {
	if strings.TrimSpace(operationID) == "" {
		return nil, errOperationIDRequired
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi import: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi import: load document: %w", err)
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return nil, fmt.Errorf("openapi import: operation %q not found", operationID)
	}

	schema := requestSchema(operation.RequestBody)
	if schema == nil || len(schema.Properties) == 0 {
		return nil, fmt.Errorf("openapi import: operation %q has no object request body", operationID)
	}

	requiredSet := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		requiredSet[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]field.FormField, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		converted, ok := convertProperty(name, ref.Value)
		if !ok {
			continue
		}
		_, converted.Required = requiredSet[name]
		converted.Order = len(fields)
		fields = append(fields, converted)
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("openapi import: operation %q yields no usable fields", operationID)
	}
	return fields, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete, item.Patch,
		} {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func convertProperty(name string, schema *openapi3.Schema) (field.FormField, bool) {
	fieldType, ok := mapType(schema)
	if !ok {
		return field.FormField{}, false
	}

	converted := field.FormField{
		ID:          name,
		Type:        fieldType,
		Label:       labelFromName(name),
		Description: schema.Description,
		Validation:  mapValidation(schema),
		Config:      field.DefaultConfig(fieldType),
	}

	if fieldType == field.TypeSelect {
		enum := schema.Enum
		if enum == nil && schemaIs(schema, "array") && schema.Items != nil && schema.Items.Value != nil {
			enum = schema.Items.Value.Enum
			if cfg, ok := converted.Config.(*field.ChoiceConfig); ok {
				cfg.AllowMultiple = true
			}
		}
		if cfg, ok := converted.Config.(*field.ChoiceConfig); ok {
			for _, value := range enum {
				text := fmt.Sprint(value)
				cfg.Options = append(cfg.Options, field.Option{Label: labelFromName(text), Value: text})
			}
		}
	}

	return converted, true
}

func mapType(schema *openapi3.Schema) (field.Type, bool) {
	switch {
	case schemaIs(schema, "string"):
		if len(schema.Enum) > 0 {
			return field.TypeSelect, true
		}
		switch schema.Format {
		case "email":
			return field.TypeEmail, true
		case "date", "date-time":
			return field.TypeDate, true
		case "binary", "byte":
			return field.TypeFile, true
		}
		return field.TypeText, true
	case schemaIs(schema, "integer"), schemaIs(schema, "number"):
		return field.TypeNumber, true
	case schemaIs(schema, "boolean"):
		return field.TypeCheckbox, true
	case schemaIs(schema, "array"):
		items := schema.Items
		if items != nil && items.Value != nil && len(items.Value.Enum) > 0 {
			return field.TypeSelect, true
		}
		return "", false
	default:
		return "", false
	}
}

func schemaIs(schema *openapi3.Schema, kind string) bool {
	return schema.Type != nil && schema.Type.Is(kind)
}

func mapValidation(schema *openapi3.Schema) field.ValidationRules {
	var rules field.ValidationRules
	if schema.Min != nil {
		value := *schema.Min
		rules.Min = &value
	}
	if schema.Max != nil {
		value := *schema.Max
		rules.Max = &value
	}
	if schema.MinLength != 0 {
		value := int(schema.MinLength)
		rules.MinLength = &value
	}
	if schema.MaxLength != nil {
		value := int(*schema.MaxLength)
		rules.MaxLength = &value
	}
	rules.Pattern = schema.Pattern
	return rules
}
