package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

const schemaFileName = "config.schema.json"

// Schema returns the JSON schema describing config.toml.
func Schema() *jsonschema.Schema {
	r := new(jsonschema.Reflector)
	r.FieldNameTag = "toml"
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/bnema/consent/config.schema.json"
	schema.Title = "Consent Configuration"
	schema.Description = "Configuration schema for consent, a permission prompt queue"
	return schema
}

// GenerateSchemaFile writes config.schema.json next to config.toml and
// returns its path.
func (m *Manager) GenerateSchemaFile() (string, error) {
	schemaFile := filepath.Join(m.configDir, schemaFileName)

	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal config schema: %w", err)
	}

	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return "", fmt.Errorf("create %s: %w", m.configDir, err)
	}
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return "", fmt.Errorf("write config schema: %w", err)
	}
	return schemaFile, nil
}
