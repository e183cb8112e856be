package asyncapi

import (
	"encoding/json"
	"fmt"
)

// Schema is either a reference to a schema elsewhere in the document or
// an inline schema object. Exactly one of Ref and Object is set.
type Schema struct {
	// Ref is a reference path such as "#/components/schemas/Chat".
	Ref string
	// Object is the inline schema definition.
	Object *SchemaObject
}

// SchemaObject is a JSON-Schema-shaped definition. Keywords the model does
// not represent explicitly are preserved in Additional so round trips are
// lossless.
type SchemaObject struct {
	Type                 string
	Title                string
	Description          string
	Format               string
	Properties           map[string]*Schema
	Required             []string
	Enum                 []Value
	Const                *Value
	Items                *Schema
	AdditionalProperties *Schema
	OneOf                []*Schema
	AnyOf                []*Schema
	AllOf                []*Schema
	Additional           map[string]Value
}

// NewRefSchema returns a reference schema.
func NewRefSchema(ref string) *Schema {
	return &Schema{Ref: ref}
}

// NewObjectSchema returns an inline schema.
func NewObjectSchema(obj *SchemaObject) *Schema {
	return &Schema{Object: obj}
}

// IsRef reports whether the schema is a reference.
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != ""
}

// MarshalJSON implements json.Marshaler.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s.Ref != "" {
		return json.Marshal(map[string]string{"$ref": s.Ref})
	}
	if s.Object == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.Object)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var probe struct {
		Ref string `json:"$ref"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Ref != "" {
		s.Ref = probe.Ref
		s.Object = nil
		return nil
	}
	var obj SchemaObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	s.Ref = ""
	s.Object = &obj
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o SchemaObject) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{})

	if o.Type != "" {
		out["type"] = o.Type
	}
	if o.Title != "" {
		out["title"] = o.Title
	}
	if o.Description != "" {
		out["description"] = o.Description
	}
	if o.Format != "" {
		out["format"] = o.Format
	}
	if len(o.Properties) > 0 {
		out["properties"] = o.Properties
	}
	if len(o.Required) > 0 {
		out["required"] = o.Required
	}
	if len(o.Enum) > 0 {
		out["enum"] = o.Enum
	}
	if o.Const != nil {
		out["const"] = *o.Const
	}
	if o.Items != nil {
		out["items"] = o.Items
	}
	if o.AdditionalProperties != nil {
		out["additionalProperties"] = o.AdditionalProperties
	}
	if len(o.OneOf) > 0 {
		out["oneOf"] = o.OneOf
	}
	if len(o.AnyOf) > 0 {
		out["anyOf"] = o.AnyOf
	}
	if len(o.AllOf) > 0 {
		out["allOf"] = o.AllOf
	}
	for k, v := range o.Additional {
		if _, taken := out[k]; !taken {
			out[k] = v
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *SchemaObject) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*o = SchemaObject{}

	for key, val := range raw {
		var err error
		switch key {
		case "type":
			err = json.Unmarshal(val, &o.Type)
		case "title":
			err = json.Unmarshal(val, &o.Title)
		case "description":
			err = json.Unmarshal(val, &o.Description)
		case "format":
			err = json.Unmarshal(val, &o.Format)
		case "properties":
			err = json.Unmarshal(val, &o.Properties)
		case "required":
			err = json.Unmarshal(val, &o.Required)
		case "enum":
			err = json.Unmarshal(val, &o.Enum)
		case "const":
			var c Value
			if err = json.Unmarshal(val, &c); err == nil {
				o.Const = &c
			}
		case "items":
			err = json.Unmarshal(val, &o.Items)
		case "additionalProperties":
			// Booleans are legal here; keep them in Additional.
			if err = json.Unmarshal(val, &o.AdditionalProperties); err != nil {
				var v Value
				if err = json.Unmarshal(val, &v); err == nil {
					if o.Additional == nil {
						o.Additional = make(map[string]Value)
					}
					o.Additional["additionalProperties"] = v
				}
			}
		case "oneOf":
			err = json.Unmarshal(val, &o.OneOf)
		case "anyOf":
			err = json.Unmarshal(val, &o.AnyOf)
		case "allOf":
			err = json.Unmarshal(val, &o.AllOf)
		default:
			var v Value
			if err = json.Unmarshal(val, &v); err == nil {
				if o.Additional == nil {
					o.Additional = make(map[string]Value)
				}
				o.Additional[key] = v
			}
		}
		if err != nil {
			return fmt.Errorf("schema field %q: %w", key, err)
		}
	}

	return nil
}
