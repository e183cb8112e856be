// Package reflectschema derives generic structural schemas from Go types.
// It is the reflection collaborator behind the schema synthesizer: structs
// become object schemas keyed by their json tags, and tagged unions
// declared as variant sets become a oneOf disjunction whose branches carry
// a constant discriminator property.
package reflectschema

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/asyncdoc/asyncdoc/asyncapi"
)

// Schema derives a structural schema for a Go type.
func Schema(t reflect.Type) (*asyncapi.Schema, error) {
	return schemaFor(t, make(map[reflect.Type]bool))
}

// Variant is one branch of a tagged union: the discriminator literal and
// the Go type carrying the variant's fields.
type Variant struct {
	Name string
	Type reflect.Type
}

// Union derives the structural schema of a tagged union: a oneOf listing
// one object branch per variant, each with the discriminator property tag
// pinned to the variant's name and marked required.
func Union(tag string, variants []Variant) (*asyncapi.Schema, error) {
	if tag == "" {
		return nil, fmt.Errorf("union tag field cannot be empty")
	}

	branches := make([]*asyncapi.Schema, 0, len(variants))
	for _, v := range variants {
		branch, err := schemaFor(v.Type, make(map[reflect.Type]bool))
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", v.Name, err)
		}
		if branch.Object == nil || branch.Object.Type != "object" {
			// A discriminator property can only live inside an object.
			return nil, fmt.Errorf("variant %q: type %s is not an object", v.Name, v.Type)
		}

		obj := branch.Object
		if obj.Properties == nil {
			obj.Properties = make(map[string]*asyncapi.Schema)
		}
		constVal := asyncapi.StringValue(v.Name)
		obj.Properties[tag] = asyncapi.NewObjectSchema(&asyncapi.SchemaObject{
			Type:  "string",
			Const: &constVal,
		})
		obj.Required = append([]string{tag}, obj.Required...)
		if obj.Title == "" {
			obj.Title = v.Name
		}

		branches = append(branches, branch)
	}

	return asyncapi.NewObjectSchema(&asyncapi.SchemaObject{OneOf: branches}), nil
}

var timeType = reflect.TypeOf(time.Time{})

func typed(t string) *asyncapi.Schema {
	return asyncapi.NewObjectSchema(&asyncapi.SchemaObject{Type: t})
}

func schemaFor(t reflect.Type, visiting map[reflect.Type]bool) (*asyncapi.Schema, error) {
	if t == nil {
		return nil, fmt.Errorf("type cannot be nil")
	}

	switch t.Kind() {
	case reflect.Pointer:
		return schemaFor(t.Elem(), visiting)
	case reflect.Bool:
		return typed("boolean"), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return typed("integer"), nil
	case reflect.Float32, reflect.Float64:
		return typed("number"), nil
	case reflect.String:
		return typed("string"), nil
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			// []byte serializes as a base64 string.
			return asyncapi.NewObjectSchema(&asyncapi.SchemaObject{
				Type:   "string",
				Format: "byte",
			}), nil
		}
		items, err := schemaFor(t.Elem(), visiting)
		if err != nil {
			return nil, err
		}
		return asyncapi.NewObjectSchema(&asyncapi.SchemaObject{
			Type:  "array",
			Items: items,
		}), nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map key type %s is not representable", t.Key())
		}
		values, err := schemaFor(t.Elem(), visiting)
		if err != nil {
			return nil, err
		}
		return asyncapi.NewObjectSchema(&asyncapi.SchemaObject{
			Type:                 "object",
			AdditionalProperties: values,
		}), nil
	case reflect.Interface:
		// Anything goes; an unconstrained schema.
		return asyncapi.NewObjectSchema(&asyncapi.SchemaObject{}), nil
	case reflect.Struct:
		if t == timeType {
			return asyncapi.NewObjectSchema(&asyncapi.SchemaObject{
				Type:   "string",
				Format: "date-time",
			}), nil
		}
		return structSchema(t, visiting)
	default:
		return nil, fmt.Errorf("type %s is not representable", t)
	}
}

func structSchema(t reflect.Type, visiting map[reflect.Type]bool) (*asyncapi.Schema, error) {
	if visiting[t] {
		// Recursive type; fall back to an unconstrained object rather
		// than expanding forever.
		return asyncapi.NewObjectSchema(&asyncapi.SchemaObject{Type: "object"}), nil
	}
	visiting[t] = true
	defer delete(visiting, t)

	obj := &asyncapi.SchemaObject{
		Type:  "object",
		Title: t.Name(),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitempty, skip := parseJSONTag(field)
		if skip {
			continue
		}

		if field.Anonymous && field.Tag.Get("json") == "" {
			// Embedded struct fields are flattened like encoding/json does.
			embedded, err := schemaFor(field.Type, visiting)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field.Name, err)
			}
			if embedded.Object != nil && embedded.Object.Type == "object" {
				for k, v := range embedded.Object.Properties {
					if obj.Properties == nil {
						obj.Properties = make(map[string]*asyncapi.Schema)
					}
					obj.Properties[k] = v
				}
				obj.Required = append(obj.Required, embedded.Object.Required...)
				continue
			}
		}

		prop, err := schemaFor(field.Type, visiting)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		if doc := field.Tag.Get("doc"); doc != "" && prop.Object != nil {
			prop.Object.Description = doc
		}

		if obj.Properties == nil {
			obj.Properties = make(map[string]*asyncapi.Schema)
		}
		obj.Properties[name] = prop

		if !omitempty && field.Type.Kind() != reflect.Pointer {
			obj.Required = append(obj.Required, name)
		}
	}

	return asyncapi.NewObjectSchema(obj), nil
}

// parseJSONTag resolves the serialized field name the way encoding/json
// does: the json tag name when present, "-" skips the field, and the Go
// field name is the fallback.
func parseJSONTag(field reflect.StructField) (name string, omitempty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}

	name = field.Name
	if tag != "" {
		parts := strings.Split(tag, ",")
		if parts[0] != "" {
			name = parts[0]
		}
		for _, opt := range parts[1:] {
			if opt == "omitempty" {
				omitempty = true
			}
		}
	}
	return name, omitempty, false
}

// TypeOf is a convenience wrapper deriving a schema from a value's dynamic
// type.
func TypeOf(v interface{}) (*asyncapi.Schema, error) {
	return Schema(reflect.TypeOf(v))
}
