package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

var schemaReflector = jsonschema.Reflector{
	DoNotReference: true,
}

// Schema returns the JSON schema of the configuration file.
func Schema() (json.RawMessage, error) {
	schema := schemaReflector.Reflect(&Configuration{})
	schema.Title = "business-case configuration"
	raw, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal configuration schema: %w", err)
	}
	return raw, nil
}
