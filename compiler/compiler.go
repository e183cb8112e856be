// Package compiler wires the compilation pipeline together: annotation
// trees are extracted into typed metadata, message types are synthesized
// into payload-bearing messages and registered, and the assembler produces
// the final document.
package compiler

import (
	"fmt"

	"github.com/asyncdoc/asyncdoc/asyncapi"
	"github.com/asyncdoc/asyncdoc/compiler/annotation"
	"github.com/asyncdoc/asyncdoc/compiler/assembler"
	"github.com/asyncdoc/asyncdoc/compiler/metadata"
	"github.com/asyncdoc/asyncdoc/compiler/schemagen"
	"github.com/asyncdoc/asyncdoc/registry"
)

// TypeDef is one message type definition: its annotation blocks (per
// variant for tagged unions), the discriminator field name, and the type's
// structural schema from the reflection collaborator.
type TypeDef struct {
	Name     string
	Tag      string
	Blocks   []annotation.Block
	Variants []VariantDef
	Schema   *asyncapi.Schema
}

// VariantDef is one variant of a tagged union type.
type VariantDef struct {
	Name   string
	Blocks []annotation.Block
}

// MessageMetas extracts the ordered message metadata records of the type:
// one per variant for unions, a single record otherwise.
func (t TypeDef) MessageMetas() []metadata.MessageMeta {
	if len(t.Variants) == 0 {
		return []metadata.MessageMeta{metadata.ExtractMessage(t.Name, t.Blocks)}
	}
	metas := make([]metadata.MessageMeta, 0, len(t.Variants))
	for _, v := range t.Variants {
		metas = append(metas, metadata.ExtractMessage(v.Name, v.Blocks))
	}
	return metas
}

// BuildRegistry compiles every type definition into its message set and
// registers it under the type's identifier.
func BuildRegistry(types []TypeDef) (*registry.Registry, error) {
	reg := registry.New()
	for _, t := range types {
		messages := schemagen.BuildMessages(t.MessageMetas(), t.Schema, t.Tag)
		if err := reg.Register(t.Name, registry.NewStaticSource(messages)); err != nil {
			return nil, fmt.Errorf("failed to register type %q: %w", t.Name, err)
		}
	}
	return reg, nil
}

// Compile extracts a spec declaration's metadata and assembles the
// document against the given registry.
func Compile(decl annotation.Decl, reg *registry.Registry) (*asyncapi.Document, error) {
	meta := metadata.ExtractSpec(decl)
	return assembler.Assemble(meta, reg)
}
