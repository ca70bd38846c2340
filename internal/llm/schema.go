package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ObjectGateSchema is intentionally minimal. Wrong-typed or missing
// fields are repaired downstream by the invoice normalizer, so the only
// hard requirement on a model reply is that it is a JSON object at all.
func ObjectGateSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"line_items": map[string]any{},
		},
	}
}

// ValidateObjectShape checks raw model output against the object gate.
func ValidateObjectShape(data []byte) error {
	return ValidateJSONAgainstSchema(ObjectGateSchema(), data)
}

// ValidateJSONAgainstSchema validates data against schemaMap.
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
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
