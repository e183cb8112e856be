package asyncapi

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToJSON serializes the document as indented JSON. The output is
// deterministic: map keys are emitted in sorted order.
func (d *Document) ToJSON() ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("document cannot be nil")
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return data, nil
}

// FromJSON parses a document from JSON.
func FromJSON(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &d, nil
}

// ToYAML serializes the document as YAML. The document is rendered through
// its JSON form first so custom marshalers and omitempty semantics apply
// identically in both formats.
func (d *Document) ToYAML() ([]byte, error) {
	data, err := d.ToJSON()
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("failed to rebuild document tree: %w", err)
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document as YAML: %w", err)
	}
	return out, nil
}

// SchemaFromJSON parses a single schema from JSON.
func SchemaFromJSON(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return &s, nil
}
