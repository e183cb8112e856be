// Package asyncapi defines the typed AsyncAPI 3.0 document model produced
// by the compiler, plus JSON/YAML codecs for it. Optional fields are
// omitted from serialized output when absent.
package asyncapi

import (
	"encoding/json"
	"fmt"
)

// DefaultVersion is the AsyncAPI version tag emitted on compiled documents.
const DefaultVersion = "3.0.0"

// Default content types applied when a message declares none.
const (
	ContentTypeJSON   = "application/json"
	ContentTypeBinary = "application/octet-stream"
)

// Document is the root of a compiled AsyncAPI specification.
type Document struct {
	AsyncAPI   string               `json:"asyncapi"`
	ID         string               `json:"id,omitempty"`
	Info       Info                 `json:"info"`
	Servers    map[string]Server    `json:"servers,omitempty"`
	Channels   map[string]Channel   `json:"channels,omitempty"`
	Operations map[string]Operation `json:"operations,omitempty"`
	Components *Components          `json:"components,omitempty"`
}

// Info carries general information about the API.
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Server describes one connection target.
type Server struct {
	Host        string                    `json:"host"`
	Protocol    string                    `json:"protocol"`
	Pathname    string                    `json:"pathname,omitempty"`
	Description string                    `json:"description,omitempty"`
	Variables   map[string]ServerVariable `json:"variables,omitempty"`
}

// ServerVariable describes a substitutable part of a server host or pathname.
type ServerVariable struct {
	Description string   `json:"description,omitempty"`
	Default     string   `json:"default,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// Channel is a named communication path messages flow through.
type Channel struct {
	Address     string                `json:"address,omitempty"`
	Description string                `json:"description,omitempty"`
	Messages    map[string]MessageRef `json:"messages,omitempty"`
	Parameters  map[string]Parameter  `json:"parameters,omitempty"`
}

// Parameter describes one channel address parameter.
type Parameter struct {
	Description string  `json:"description,omitempty"`
	Schema      *Schema `json:"schema,omitempty"`
}

// OperationAction is the direction of an operation.
type OperationAction string

const (
	// ActionSend marks an operation that sends messages to a channel.
	ActionSend OperationAction = "send"
	// ActionReceive marks an operation that receives messages from a channel.
	ActionReceive OperationAction = "receive"
)

// Operation binds a send/receive action to one channel.
type Operation struct {
	Action      OperationAction `json:"action"`
	Channel     ChannelRef      `json:"channel"`
	Description string          `json:"description,omitempty"`
	Messages    []MessageRef    `json:"messages,omitempty"`
}

// ChannelRef is a reference to a channel entry in the same document.
type ChannelRef struct {
	Ref string `json:"$ref"`
}

// Components holds reusable, name-addressable definitions.
type Components struct {
	Messages map[string]Message `json:"messages,omitempty"`
	Schemas  map[string]*Schema `json:"schemas,omitempty"`
}

// Message is a named payload definition with descriptive metadata.
type Message struct {
	Name        string  `json:"name,omitempty"`
	Title       string  `json:"title,omitempty"`
	Summary     string  `json:"summary,omitempty"`
	Description string  `json:"description,omitempty"`
	ContentType string  `json:"contentType,omitempty"`
	Payload     *Schema `json:"payload,omitempty"`
}

// MessageRef is either a reference into the document's components or an
// inline message definition. Exactly one of Ref and Message is set.
type MessageRef struct {
	Ref     string
	Message *Message
}

// NewMessageRef returns a component reference.
func NewMessageRef(ref string) MessageRef {
	return MessageRef{Ref: ref}
}

// NewInlineMessage returns an inline message definition.
func NewInlineMessage(msg Message) MessageRef {
	return MessageRef{Message: &msg}
}

// MarshalJSON implements json.Marshaler.
func (r MessageRef) MarshalJSON() ([]byte, error) {
	if r.Ref != "" {
		return json.Marshal(map[string]string{"$ref": r.Ref})
	}
	if r.Message == nil {
		return nil, fmt.Errorf("message reference has neither $ref nor inline message")
	}
	return json.Marshal(r.Message)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *MessageRef) UnmarshalJSON(data []byte) error {
	var probe struct {
		Ref string `json:"$ref"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Ref != "" {
		r.Ref = probe.Ref
		r.Message = nil
		return nil
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}
	r.Ref = ""
	r.Message = &msg
	return nil
}

// NewDocument returns a document carrying the default version tag.
func NewDocument(info Info) *Document {
	return &Document{
		AsyncAPI: DefaultVersion,
		Info:     info,
	}
}
