package discovery

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// JSONSchemaValidator is the default ValidateConfig collaborator. It
// compiles schema once per call with
// github.com/santhosh-tekuri/jsonschema/v6 and validates config against
// it, surfacing the library's own field-level detail in the returned
// error so [kiln.loadComponent] can wrap it as an INVALID_CONFIG error.
type JSONSchemaValidator struct{}

// NewJSONSchemaValidator creates a JSONSchemaValidator.
func NewJSONSchemaValidator() *JSONSchemaValidator { return &JSONSchemaValidator{} }

func (v *JSONSchemaValidator) ValidateConfig(config map[string]any, schema []byte) error {
	if len(schema) == 0 {
		return nil
	}

	var doc any
	if err := json.Unmarshal(schema, &doc); err != nil {
		return fmt.Errorf("discovery: parse schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("component.json", doc); err != nil {
		return fmt.Errorf("discovery: add schema resource: %w", err)
	}
	compiled, err := compiler.Compile("component.json")
	if err != nil {
		return fmt.Errorf("discovery: compile schema: %w", err)
	}

	// jsonschema validates JSON-decoded instances; round-trip config
	// through JSON so numeric and nested types match the schema's
	// expectations exactly.
	raw, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("discovery: marshal config: %w", err)
	}
	var instance any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&instance); err != nil {
		return fmt.Errorf("discovery: decode config: %w", err)
	}

	return compiled.Validate(instance)
}
