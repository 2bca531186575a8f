package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["name", "enabled"],
	"properties": {
		"name": {"type": "string"},
		"enabled": {"type": "boolean"}
	}
}`

func TestJSONSchemaValidator_AcceptsValidConfig(t *testing.T) {
	v := NewJSONSchemaValidator()
	err := v.ValidateConfig(map[string]any{"name": "alpha", "enabled": true}, []byte(testSchema))
	require.NoError(t, err)
}

func TestJSONSchemaValidator_RejectsMissingRequiredField(t *testing.T) {
	v := NewJSONSchemaValidator()
	err := v.ValidateConfig(map[string]any{"enabled": true}, []byte(testSchema))
	require.Error(t, err)
}

func TestJSONSchemaValidator_RejectsWrongType(t *testing.T) {
	v := NewJSONSchemaValidator()
	err := v.ValidateConfig(map[string]any{"name": "alpha", "enabled": "yes"}, []byte(testSchema))
	require.Error(t, err)
}

func TestJSONSchemaValidator_EmptySchemaAllowsAnything(t *testing.T) {
	v := NewJSONSchemaValidator()
	err := v.ValidateConfig(map[string]any{"anything": 1}, nil)
	assert.NoError(t, err)
}
