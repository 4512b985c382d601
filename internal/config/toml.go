package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader parses TOML documents.
type TOMLLoader struct{}

// Parse decodes TOML data into a Document.
func (TOMLLoader) Parse(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding toml: %w", err)
	}
	return &doc, nil
}
