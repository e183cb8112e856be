package compiler

import (
	"fmt"
	"reflect"

	"github.com/asyncdoc/asyncdoc/compiler/annotation"
	"github.com/asyncdoc/asyncdoc/reflectschema"
)

// GoType builds a message type definition from a Go value's type: the
// structural schema is derived by reflection and the annotation blocks
// carry the message metadata. The type identifier defaults to the Go type
// name when name is empty.
func GoType(name string, v interface{}, blocks ...annotation.Block) (TypeDef, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return TypeDef{}, fmt.Errorf("type definition needs a non-nil value")
	}
	if name == "" {
		name = t.Name()
	}
	if name == "" {
		return TypeDef{}, fmt.Errorf("unnamed type %s needs an explicit identifier", t)
	}

	schema, err := reflectschema.Schema(t)
	if err != nil {
		return TypeDef{}, fmt.Errorf("type %q: %w", name, err)
	}

	return TypeDef{Name: name, Blocks: blocks, Schema: schema}, nil
}

// GoVariant is one union branch for GoUnion: the discriminator literal,
// the Go value carrying the branch's fields, and the variant's message
// annotation blocks.
type GoVariant struct {
	Name   string
	Value  interface{}
	Blocks []annotation.Block
}

// GoUnion builds a tagged-union type definition from Go variant values.
// Each branch's schema gets the discriminator property tag pinned to the
// variant's name.
func GoUnion(name, tag string, variants []GoVariant) (TypeDef, error) {
	rsVariants := make([]reflectschema.Variant, 0, len(variants))
	defs := make([]VariantDef, 0, len(variants))
	for _, v := range variants {
		t := reflect.TypeOf(v.Value)
		if t == nil {
			return TypeDef{}, fmt.Errorf("variant %q: value cannot be nil", v.Name)
		}
		rsVariants = append(rsVariants, reflectschema.Variant{Name: v.Name, Type: t})
		defs = append(defs, VariantDef{Name: v.Name, Blocks: v.Blocks})
	}

	schema, err := reflectschema.Union(tag, rsVariants)
	if err != nil {
		return TypeDef{}, fmt.Errorf("type %q: %w", name, err)
	}

	return TypeDef{Name: name, Tag: tag, Variants: defs, Schema: schema}, nil
}
