package compiler

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/asyncdoc/asyncdoc/asyncapi"
	"github.com/asyncdoc/asyncdoc/compiler/annotation"
)

// Manifest is the YAML front end for the compiler. It is the file-based
// form of the annotation surface: each section maps onto one annotation
// block kind, and inline type definitions stand in for the reflection
// collaborator when compiling outside a Go program.
type Manifest struct {
	Name       string                   `yaml:"name"`
	Spec       map[string]interface{}   `yaml:"spec"`
	Servers    []map[string]interface{} `yaml:"servers"`
	Channels   []map[string]interface{} `yaml:"channels"`
	Operations []map[string]interface{} `yaml:"operations"`
	Messages   []string                 `yaml:"messages"`
	Types      []TypeManifest           `yaml:"types"`
}

// TypeManifest is one inline message type definition.
type TypeManifest struct {
	Name     string                 `yaml:"name"`
	Tag      string                 `yaml:"tag"`
	Message  map[string]interface{} `yaml:"message"`
	Variants []VariantManifest      `yaml:"variants"`
	Schema   map[string]interface{} `yaml:"schema"`
}

// VariantManifest is one union variant inside a type definition.
type VariantManifest struct {
	Name    string                 `yaml:"name"`
	Message map[string]interface{} `yaml:"message"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest parses manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.Name == "" {
		m.Name = "spec"
	}
	return &m, nil
}

// Compile builds the registry from the manifest's type definitions and
// compiles the spec declaration against it.
func (m *Manifest) Compile() (*asyncapi.Document, error) {
	types, err := m.TypeDefs()
	if err != nil {
		return nil, err
	}
	reg, err := BuildRegistry(types)
	if err != nil {
		return nil, err
	}
	return Compile(m.Decl(), reg)
}

// Decl converts the manifest's spec sections into the declaration's
// annotation tree.
func (m *Manifest) Decl() annotation.Decl {
	decl := annotation.Decl{Name: m.Name}

	if len(m.Spec) > 0 {
		decl.Blocks = append(decl.Blocks, blockFromMap("spec", m.Spec))
	}
	for _, fields := range m.Servers {
		decl.Blocks = append(decl.Blocks, blockFromMap("server", fields))
	}
	for _, fields := range m.Channels {
		decl.Blocks = append(decl.Blocks, blockFromMap("channel", fields))
	}
	for _, fields := range m.Operations {
		decl.Blocks = append(decl.Blocks, blockFromMap("operation", fields))
	}
	if len(m.Messages) > 0 {
		decl.Blocks = append(decl.Blocks, annotation.Block{
			Name:  "messages",
			Items: m.Messages,
		})
	}

	return decl
}

// TypeDefs converts the manifest's type definitions, parsing each inline
// structural schema.
func (m *Manifest) TypeDefs() ([]TypeDef, error) {
	defs := make([]TypeDef, 0, len(m.Types))
	for _, t := range m.Types {
		def := TypeDef{Name: t.Name, Tag: t.Tag}

		if len(t.Message) > 0 {
			def.Blocks = []annotation.Block{blockFromMap("message", t.Message)}
		}
		for _, v := range t.Variants {
			variant := VariantDef{Name: v.Name}
			if len(v.Message) > 0 {
				variant.Blocks = []annotation.Block{blockFromMap("message", v.Message)}
			}
			def.Variants = append(def.Variants, variant)
		}

		if len(t.Schema) > 0 {
			schema, err := schemaFromYAML(t.Schema)
			if err != nil {
				return nil, fmt.Errorf("type %q: %w", t.Name, err)
			}
			def.Schema = schema
		}

		defs = append(defs, def)
	}
	return defs, nil
}

// UnknownTypes lists the message type identifiers the spec sections
// reference without a matching entry under types, in first-reference
// order. These compile fine (the assembler skips them), so they are
// surfaced as warnings rather than errors.
func (m *Manifest) UnknownTypes() []string {
	defined := make(map[string]bool, len(m.Types))
	for _, t := range m.Types {
		defined[t.Name] = true
	}

	seen := make(map[string]bool)
	var unknown []string
	note := func(name string) {
		if name == "" || defined[name] || seen[name] {
			return
		}
		seen[name] = true
		unknown = append(unknown, name)
	}

	decl := m.Decl()
	for _, op := range decl.Named("operation") {
		if names, ok := op.List("messages"); ok {
			for _, name := range names {
				note(name)
			}
		}
	}
	for _, name := range m.Messages {
		note(name)
	}

	return unknown
}

// TypeNames returns the identifiers of the manifest's type definitions.
func (m *Manifest) TypeNames() []string {
	names := make([]string, 0, len(m.Types))
	for _, t := range m.Types {
		names = append(names, t.Name)
	}
	return names
}

// schemaFromYAML converts a decoded YAML schema tree into the document
// model's schema type by way of its JSON form.
func schemaFromYAML(tree map[string]interface{}) (*asyncapi.Schema, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return asyncapi.SchemaFromJSON(data)
}

// blockFromMap converts one decoded YAML mapping into an annotation block.
// Field order inside a block is not significant, so keys are visited in
// sorted order for determinism. Values that do not fit any node kind are
// skipped; extraction downstream treats the field as unset.
func blockFromMap(name string, fields map[string]interface{}) annotation.Block {
	block := annotation.Block{Name: name}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch value := fields[key].(type) {
		case string:
			block.Nodes = append(block.Nodes, annotation.StringNode(key, value))
		case bool:
			if value {
				block.Nodes = append(block.Nodes, annotation.FlagNode(key))
			}
		case int:
			block.Nodes = append(block.Nodes, annotation.StringNode(key, fmt.Sprintf("%d", value)))
		case float64:
			block.Nodes = append(block.Nodes, annotation.StringNode(key, fmt.Sprintf("%v", value)))
		case []interface{}:
			block.Nodes = append(block.Nodes, nodesFromList(key, value)...)
		}
	}

	return block
}

// nodesFromList converts a YAML sequence into either one list node (scalar
// items) or a run of nested block nodes (mapping items), keyed by the
// singular form of the sequence key.
func nodesFromList(key string, items []interface{}) []annotation.Node {
	var scalars []string
	var blocks []annotation.Node

	nestedKey := singular(key)
	for _, item := range items {
		switch value := item.(type) {
		case string:
			scalars = append(scalars, value)
		case int, float64, bool:
			scalars = append(scalars, fmt.Sprintf("%v", value))
		case map[string]interface{}:
			nested := blockFromMap(nestedKey, value)
			blocks = append(blocks, annotation.Node{
				Key:   nestedKey,
				Kind:  annotation.KindBlock,
				Nodes: nested.Nodes,
			})
		}
	}

	if len(blocks) > 0 {
		return blocks
	}
	if scalars == nil && len(items) > 0 {
		// Nothing representable; drop the field.
		return nil
	}
	return []annotation.Node{{Key: key, Kind: annotation.KindList, Items: scalars}}
}

func singular(key string) string {
	switch key {
	case "variables":
		return "variable"
	case "parameters":
		return "parameter"
	default:
		if len(key) > 1 && key[len(key)-1] == 's' {
			return key[:len(key)-1]
		}
		return key
	}
}
