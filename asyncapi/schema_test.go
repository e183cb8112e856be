package asyncapi

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestSchema_MarshalReference(t *testing.T) {
	s := NewRefSchema("#/components/schemas/Chat")

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"$ref":"#/components/schemas/Chat"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestSchema_UnmarshalReference(t *testing.T) {
	var s Schema
	if err := json.Unmarshal([]byte(`{"$ref":"#/channels/chat"}`), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !s.IsRef() {
		t.Fatal("expected a reference schema")
	}
	if s.Ref != "#/channels/chat" {
		t.Errorf("Ref = %q, want #/channels/chat", s.Ref)
	}
}

func TestSchemaObject_RoundTrip(t *testing.T) {
	constVal := StringValue("join")
	original := &Schema{Object: &SchemaObject{
		Type:  "object",
		Title: "Join",
		Properties: map[string]*Schema{
			"type": {Object: &SchemaObject{Type: "string", Const: &constVal}},
			"room": {Object: &SchemaObject{Type: "string"}},
			"seq":  {Object: &SchemaObject{Type: "integer", Format: "int64"}},
		},
		Required: []string{"type", "room"},
	}}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Schema
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !reflect.DeepEqual(original, &decoded) {
		t.Errorf("round trip changed schema:\noriginal: %+v\ndecoded:  %+v", original.Object, decoded.Object)
	}
}

func TestSchemaObject_PreservesUnknownKeywords(t *testing.T) {
	input := `{
		"type": "string",
		"minLength": 1,
		"x-custom": {"nested": true}
	}`

	var s Schema
	if err := json.Unmarshal([]byte(input), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if s.Object == nil {
		t.Fatal("expected an object schema")
	}
	if got := s.Object.Additional["minLength"]; !got.Equal(NumberValue(1)) {
		t.Errorf("minLength = %+v, want 1", got)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"minLength":1`) {
		t.Errorf("unknown keyword dropped on re-marshal: %s", data)
	}
	if !strings.Contains(string(data), `"x-custom"`) {
		t.Errorf("extension keyword dropped on re-marshal: %s", data)
	}
}

func TestSchemaObject_BooleanAdditionalProperties(t *testing.T) {
	var s Schema
	if err := json.Unmarshal([]byte(`{"type":"object","additionalProperties":false}`), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	got, ok := s.Object.Additional["additionalProperties"]
	if !ok {
		t.Fatal("boolean additionalProperties was not preserved")
	}
	if !got.Equal(BoolValue(false)) {
		t.Errorf("additionalProperties = %+v, want false", got)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"additionalProperties":false`) {
		t.Errorf("boolean additionalProperties dropped on re-marshal: %s", data)
	}
}

func TestSchema_DisjunctionRoundTrip(t *testing.T) {
	input := `{
		"oneOf": [
			{"type": "object", "properties": {"type": {"type": "string", "const": "join"}}},
			{"type": "object", "properties": {"type": {"type": "string", "const": "leave"}}}
		]
	}`

	var s Schema
	if err := json.Unmarshal([]byte(input), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(s.Object.OneOf) != 2 {
		t.Fatalf("OneOf count = %d, want 2", len(s.Object.OneOf))
	}

	branch := s.Object.OneOf[1]
	prop := branch.Object.Properties["type"]
	if prop == nil || prop.Object.Const == nil || !prop.Object.Const.Equal(StringValue("leave")) {
		t.Errorf("second branch discriminator = %+v, want const \"leave\"", prop)
	}
}
