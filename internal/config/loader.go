package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultDocumentFilename is the file init writes when no path is given.
const DefaultDocumentFilename = "ranchsync.yaml"

// Load reads, defaults and validates a document from a file.
func Load(path string) (*Document, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read desired state file: %w", err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses, defaults and validates a document.
func LoadFromBytes(data []byte) (*Document, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	doc.ApplyDefaults()

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("desired state validation failed: %w", err)
	}

	return doc, nil
}

// parseDocument parses YAML data into a Document.
func parseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &doc, nil
}

// Save writes the document as YAML. The file may hold credentials and is created 0600.
func Save(doc *Document, path string) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
