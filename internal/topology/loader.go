package topology

import (
	"fmt"
	"os"

	"github.com/clabops/backend-go/internal/domain"
	"gopkg.in/yaml.v3"
)

// Parse decodes YAML topology content. Input that cannot be interpreted as a
// document at all yields a *domain.ParseError; structurally incomplete but
// parseable content always succeeds.
func Parse(data []byte) (*domain.Document, error) {
	return parseNamed(data, "inline")
}

func parseNamed(data []byte, source string) (*domain.Document, error) {
	var doc domain.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &domain.ParseError{Source: source, Err: err}
	}
	return &doc, nil
}

// LoadFile reads and parses a topology file from disk
func LoadFile(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ParseError{Source: path, Err: err}
	}
	return parseNamed(data, path)
}

// Marshal serializes a document back to YAML, unknown extra fields included
func Marshal(doc *domain.Document) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal topology: %w", err)
	}
	return out, nil
}

// WriteFile serializes a document to a file
func WriteFile(path string, doc *domain.Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write topology %s: %w", path, err)
	}
	return nil
}
