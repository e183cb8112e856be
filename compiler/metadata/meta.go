// Package metadata extracts typed intermediate records from a declaration's
// annotation tree. Extraction is best-effort: individual fields with the
// wrong shape are left unset rather than aborting the block, and required
// fields are not enforced here (the assembler validates them), with one
// exception: nested variable/parameter blocks without a name are dropped
// because their parent has no slot for an unnamed entry.
package metadata

// SpecMeta is the top-level record extracted from a spec declaration.
type SpecMeta struct {
	// Symbol is the declaring identifier, used in diagnostics.
	Symbol       string          `json:"symbol"`
	Title        string          `json:"title"`
	Version      string          `json:"version"`
	Description  string          `json:"description,omitempty"`
	ID           string          `json:"id,omitempty"`
	Servers      []ServerMeta    `json:"servers,omitempty"`
	Channels     []ChannelMeta   `json:"channels,omitempty"`
	Operations   []OperationMeta `json:"operations,omitempty"`
	MessageTypes []string        `json:"message_types,omitempty"`
}

// ServerMeta describes one server block.
type ServerMeta struct {
	Name        string               `json:"name"`
	Host        string               `json:"host"`
	Protocol    string               `json:"protocol"`
	Pathname    string               `json:"pathname,omitempty"`
	Description string               `json:"description,omitempty"`
	Variables   []ServerVariableMeta `json:"variables,omitempty"`
}

// ServerVariableMeta describes one variable block nested in a server block.
type ServerVariableMeta struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Default     string   `json:"default,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// ChannelMeta describes one channel block.
type ChannelMeta struct {
	Name        string          `json:"name"`
	Address     string          `json:"address,omitempty"`
	Description string          `json:"description,omitempty"`
	Parameters  []ParameterMeta `json:"parameters,omitempty"`
}

// ParameterMeta describes one parameter block nested in a channel block.
type ParameterMeta struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SchemaType  string `json:"schema_type,omitempty"`
	Format      string `json:"format,omitempty"`
}

// OperationMeta describes one operation block.
type OperationMeta struct {
	Name        string   `json:"name"`
	Action      string   `json:"action"`
	Channel     string   `json:"channel"`
	Description string   `json:"description,omitempty"`
	Messages    []string `json:"messages,omitempty"`
}

// MessageMeta describes the message metadata of one type or union variant.
type MessageMeta struct {
	Name           string `json:"name"`
	Title          string `json:"title,omitempty"`
	Summary        string `json:"summary,omitempty"`
	Description    string `json:"description,omitempty"`
	ContentType    string `json:"content_type,omitempty"`
	TriggersBinary bool   `json:"triggers_binary,omitempty"`
}
