package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asyncdoc/asyncdoc/asyncapi"
	"github.com/asyncdoc/asyncdoc/compiler/annotation"
)

func unionSchema() *asyncapi.Schema {
	joinConst := asyncapi.StringValue("join")
	leaveConst := asyncapi.StringValue("leave")
	return &asyncapi.Schema{Object: &asyncapi.SchemaObject{
		OneOf: []*asyncapi.Schema{
			{Object: &asyncapi.SchemaObject{
				Type: "object",
				Properties: map[string]*asyncapi.Schema{
					"type": {Object: &asyncapi.SchemaObject{Type: "string", Const: &joinConst}},
					"room": {Object: &asyncapi.SchemaObject{Type: "string"}},
				},
			}},
			{Object: &asyncapi.SchemaObject{
				Type: "object",
				Properties: map[string]*asyncapi.Schema{
					"type": {Object: &asyncapi.SchemaObject{Type: "string", Const: &leaveConst}},
				},
			}},
		},
	}}
}

func TestTypeDef_MessageMetas(t *testing.T) {
	plain := TypeDef{
		Name: "Ping",
		Blocks: []annotation.Block{
			{Name: "message", Nodes: []annotation.Node{
				annotation.StringNode("summary", "Keepalive"),
			}},
		},
	}
	metas := plain.MessageMetas()
	require.Len(t, metas, 1)
	assert.Equal(t, "Ping", metas[0].Name)
	assert.Equal(t, "Keepalive", metas[0].Summary)

	union := TypeDef{
		Name: "ChatEvent",
		Tag:  "type",
		Variants: []VariantDef{
			{Name: "Join", Blocks: []annotation.Block{
				{Name: "message", Nodes: []annotation.Node{
					annotation.StringNode("name", "join"),
				}},
			}},
			{Name: "Leave"},
		},
	}
	metas = union.MessageMetas()
	require.Len(t, metas, 2)
	assert.Equal(t, "join", metas[0].Name, "variant rename")
	assert.Equal(t, "Leave", metas[1].Name, "fallback to variant identifier")
}

func TestBuildRegistry(t *testing.T) {
	reg, err := BuildRegistry([]TypeDef{
		{
			Name:   "ChatEvent",
			Tag:    "type",
			Schema: unionSchema(),
			Variants: []VariantDef{
				{Name: "join"},
				{Name: "leave"},
			},
		},
	})
	require.NoError(t, err)

	names, ok := reg.MessageNames("ChatEvent")
	require.True(t, ok)
	assert.Equal(t, []string{"join", "leave"}, names)

	msgs, ok := reg.Messages("ChatEvent")
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.NotNil(t, msgs[0].Payload, "join should carry its branch payload")
	assert.NotNil(t, msgs[1].Payload, "leave should carry its branch payload")
	assert.Equal(t, asyncapi.ContentTypeJSON, msgs[0].ContentType)
}

func TestBuildRegistry_DuplicateType(t *testing.T) {
	_, err := BuildRegistry([]TypeDef{
		{Name: "Dup"},
		{Name: "Dup"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Dup")
}

func TestCompile_EndToEnd(t *testing.T) {
	reg, err := BuildRegistry([]TypeDef{
		{
			Name:   "ChatEvent",
			Tag:    "type",
			Schema: unionSchema(),
			Variants: []VariantDef{
				{Name: "join"},
				{Name: "leave"},
			},
		},
	})
	require.NoError(t, err)

	decl := annotation.Decl{
		Name: "ChatApi",
		Blocks: []annotation.Block{
			{Name: "spec", Nodes: []annotation.Node{
				annotation.StringNode("title", "Chat API"),
				annotation.StringNode("version", "1.0.0"),
			}},
			{Name: "channel", Nodes: []annotation.Node{
				annotation.StringNode("name", "chat"),
				annotation.StringNode("address", "/ws/chat"),
			}},
			{Name: "operation", Nodes: []annotation.Node{
				annotation.StringNode("name", "sendMessage"),
				annotation.StringNode("action", "send"),
				annotation.StringNode("channel", "chat"),
				annotation.ListNode("messages", "ChatEvent"),
			}},
			{Name: "messages", Items: []string{"ChatEvent"}},
		},
	}

	doc, err := Compile(decl, reg)
	require.NoError(t, err)

	assert.Equal(t, "Chat API", doc.Info.Title)
	require.Contains(t, doc.Channels, "chat")
	assert.Len(t, doc.Channels["chat"].Messages, 2)
	require.Contains(t, doc.Operations, "sendMessage")
	assert.Equal(t, "#/channels/chat", doc.Operations["sendMessage"].Channel.Ref)
	require.NotNil(t, doc.Components)
	assert.Len(t, doc.Components.Messages, 2)
}

func TestCompile_InvalidAction(t *testing.T) {
	reg, err := BuildRegistry(nil)
	require.NoError(t, err)

	decl := annotation.Decl{
		Name: "Api",
		Blocks: []annotation.Block{
			{Name: "spec", Nodes: []annotation.Node{
				annotation.StringNode("title", "T"),
				annotation.StringNode("version", "1"),
			}},
			{Name: "operation", Nodes: []annotation.Node{
				annotation.StringNode("name", "bad"),
				annotation.StringNode("action", "broadcast"),
			}},
		},
	}

	_, err = Compile(decl, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPC002")
	assert.Contains(t, err.Error(), `"broadcast"`)
}
