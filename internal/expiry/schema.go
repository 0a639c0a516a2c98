package expiry

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildOverrideBatchSchema returns the JSON-Schema (draft 2020-12 subset)
// for an override batch submitted by a user. Validated locally before any
// row is written.
func BuildOverrideBatchSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"pick_entry_id": map[string]any{
				"type":    "string",
				"pattern": `^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`,
			},
			"overrides": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"expiry_date": map[string]any{
							"type":    "string",
							"pattern": `^\d{4}-\d{2}-\d{2}$`,
						},
						"quantity": map[string]any{
							"type":    "integer",
							"minimum": 1,
						},
					},
					"required": []string{"expiry_date", "quantity"},
				},
			},
		},
		"required": []string{"pick_entry_id", "overrides"},
	}
}

// validateJSONAgainstSchema validates data against schemaMap.
func validateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
