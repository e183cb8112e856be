package schemagen

import (
	"testing"

	"github.com/asyncdoc/asyncdoc/asyncapi"
	"github.com/asyncdoc/asyncdoc/compiler/metadata"
)

func constBranch(tag, name string, extra map[string]*asyncapi.Schema) *asyncapi.Schema {
	constVal := asyncapi.StringValue(name)
	props := map[string]*asyncapi.Schema{
		tag: {Object: &asyncapi.SchemaObject{Type: "string", Const: &constVal}},
	}
	for k, v := range extra {
		props[k] = v
	}
	return &asyncapi.Schema{Object: &asyncapi.SchemaObject{
		Type:       "object",
		Properties: props,
		Required:   []string{tag},
	}}
}

func TestBuildMessages_SingleTypeCarriesWholeSchema(t *testing.T) {
	structural := &asyncapi.Schema{Object: &asyncapi.SchemaObject{
		Type: "object",
		Properties: map[string]*asyncapi.Schema{
			"text": {Object: &asyncapi.SchemaObject{Type: "string"}},
		},
	}}

	messages := BuildMessages([]metadata.MessageMeta{{Name: "chat"}}, structural, "")

	if len(messages) != 1 {
		t.Fatalf("message count = %d, want 1", len(messages))
	}
	if messages[0].Payload != structural {
		t.Error("single message should carry the whole structural schema as payload")
	}
	if messages[0].Name != "chat" || messages[0].Title != "chat" {
		t.Errorf("name/title = %q/%q", messages[0].Name, messages[0].Title)
	}
}

func TestBuildMessages_UnionDecomposition(t *testing.T) {
	join := constBranch("type", "join", map[string]*asyncapi.Schema{
		"room": {Object: &asyncapi.SchemaObject{Type: "string"}},
	})
	leave := constBranch("type", "leave", nil)
	structural := &asyncapi.Schema{Object: &asyncapi.SchemaObject{
		OneOf: []*asyncapi.Schema{join, leave},
	}}

	metas := []metadata.MessageMeta{{Name: "leave"}, {Name: "join"}}
	messages := BuildMessages(metas, structural, "type")

	if len(messages) != 2 {
		t.Fatalf("message count = %d, want 2", len(messages))
	}
	// Output order follows metadata order, not branch order.
	if messages[0].Name != "leave" || messages[1].Name != "join" {
		t.Fatalf("order = %q, %q", messages[0].Name, messages[1].Name)
	}
	if messages[0].Payload != leave {
		t.Error("leave message matched the wrong branch")
	}
	if messages[1].Payload != join {
		t.Error("join message matched the wrong branch")
	}
}

func TestBuildMessages_AnyOfFallback(t *testing.T) {
	a := constBranch("kind", "a", nil)
	b := constBranch("kind", "b", nil)
	structural := &asyncapi.Schema{Object: &asyncapi.SchemaObject{
		AnyOf: []*asyncapi.Schema{a, b},
	}}

	messages := BuildMessages([]metadata.MessageMeta{{Name: "a"}, {Name: "b"}}, structural, "kind")

	if messages[0].Payload != a || messages[1].Payload != b {
		t.Error("anyOf branches not matched")
	}
}

func TestBuildMessages_UnknownTagScansAllProperties(t *testing.T) {
	join := constBranch("event", "join", nil)
	leave := constBranch("event", "leave", nil)
	structural := &asyncapi.Schema{Object: &asyncapi.SchemaObject{
		OneOf: []*asyncapi.Schema{join, leave},
	}}

	messages := BuildMessages([]metadata.MessageMeta{{Name: "join"}, {Name: "leave"}}, structural, "")

	if messages[0].Payload != join || messages[1].Payload != leave {
		t.Error("branches not matched without a known discriminator field")
	}
}

func TestBuildMessages_SingleValuedEnumActsAsConst(t *testing.T) {
	branch := &asyncapi.Schema{Object: &asyncapi.SchemaObject{
		Type: "object",
		Properties: map[string]*asyncapi.Schema{
			"type": {Object: &asyncapi.SchemaObject{
				Type: "string",
				Enum: []asyncapi.Value{asyncapi.StringValue("ping")},
			}},
		},
	}}
	other := constBranch("type", "pong", nil)
	structural := &asyncapi.Schema{Object: &asyncapi.SchemaObject{
		OneOf: []*asyncapi.Schema{branch, other},
	}}

	messages := BuildMessages([]metadata.MessageMeta{{Name: "ping"}, {Name: "pong"}}, structural, "type")

	if messages[0].Payload != branch {
		t.Error("single-valued enum discriminator not recognized")
	}
}

func TestBuildMessages_NoMatchLeavesPayloadAbsent(t *testing.T) {
	structural := &asyncapi.Schema{Object: &asyncapi.SchemaObject{
		OneOf: []*asyncapi.Schema{constBranch("type", "join", nil)},
	}}

	messages := BuildMessages([]metadata.MessageMeta{{Name: "join"}, {Name: "typo"}}, structural, "type")

	if messages[0].Payload == nil {
		t.Error("matching message lost its payload")
	}
	if messages[1].Payload != nil {
		t.Error("unmatched message should have no payload")
	}
}

func TestBuildMessages_NoDisjunctionLeavesPayloadsAbsent(t *testing.T) {
	// Multiple messages but a flat structural schema: nothing to decompose.
	structural := &asyncapi.Schema{Object: &asyncapi.SchemaObject{Type: "object"}}

	messages := BuildMessages([]metadata.MessageMeta{{Name: "a"}, {Name: "b"}}, structural, "")

	for _, msg := range messages {
		if msg.Payload != nil {
			t.Errorf("message %q should have no payload", msg.Name)
		}
	}
}

func TestBuildMessages_ContentTypePrecedence(t *testing.T) {
	tests := []struct {
		name string
		meta metadata.MessageMeta
		want string
	}{
		{
			"explicit content type wins over binary flag",
			metadata.MessageMeta{Name: "m", ContentType: "application/avro", TriggersBinary: true},
			"application/avro",
		},
		{
			"binary flag",
			metadata.MessageMeta{Name: "m", TriggersBinary: true},
			asyncapi.ContentTypeBinary,
		},
		{
			"json default",
			metadata.MessageMeta{Name: "m"},
			asyncapi.ContentTypeJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := BuildMessages([]metadata.MessageMeta{tt.meta}, nil, "")
			if got := messages[0].ContentType; got != tt.want {
				t.Errorf("ContentType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildMessages_TitleDefaultsToName(t *testing.T) {
	messages := BuildMessages([]metadata.MessageMeta{
		{Name: "join", Title: "User joined"},
		{Name: "leave"},
	}, nil, "")

	if messages[0].Title != "User joined" {
		t.Errorf("explicit title lost: %q", messages[0].Title)
	}
	if messages[1].Title != "leave" {
		t.Errorf("title default = %q, want leave", messages[1].Title)
	}
}
