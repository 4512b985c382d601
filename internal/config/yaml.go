package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLoader parses YAML documents.
type YAMLLoader struct{}

// Parse decodes YAML data into a Document.
func (YAMLLoader) Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	return &doc, nil
}
