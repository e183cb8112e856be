// Package registry holds the compiled message metadata of every known
// message type, keyed by type identifier. The assembler queries it to
// resolve the types an operation or a spec's components list references.
//
// A registry is populated before compilation and read-only afterwards, so
// compilations of unrelated declarations can share one instance without
// further locking.
package registry

import (
	"fmt"
	"sync"

	"github.com/asyncdoc/asyncdoc/asyncapi"
)

// MessageSource exposes the compiled message set of one type. Both methods
// return entries in variant declaration order.
type MessageSource interface {
	// MessageNames lists the resolved message names of the type.
	MessageNames() []string
	// Messages lists the full messages including payload schemas.
	Messages() []asyncapi.Message
}

// Registry maps type identifiers to their message sources.
type Registry struct {
	mu    sync.RWMutex
	types map[string]MessageSource
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		types: make(map[string]MessageSource),
	}
}

// Register adds a message source under the given type identifier.
// Registering the same identifier twice is an error.
func (r *Registry) Register(name string, src MessageSource) error {
	if name == "" {
		return fmt.Errorf("type name cannot be empty")
	}
	if src == nil {
		return fmt.Errorf("message source cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[name]; exists {
		return fmt.Errorf("type %q is already registered", name)
	}
	r.types[name] = src
	return nil
}

// MessageNames returns the resolved message names of a registered type.
// The second result is false when the type is unknown.
func (r *Registry) MessageNames(name string) ([]string, bool) {
	r.mu.RLock()
	src, ok := r.types[name]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return src.MessageNames(), true
}

// Messages returns the full compiled messages of a registered type.
// The second result is false when the type is unknown.
func (r *Registry) Messages(name string) ([]asyncapi.Message, bool) {
	r.mu.RLock()
	src, ok := r.types[name]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return src.Messages(), true
}

// TypeNames returns the identifiers of every registered type.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	return names
}

// StaticSource is a MessageSource backed by a fixed message slice, as
// produced by the schema synthesizer.
type StaticSource struct {
	messages []asyncapi.Message
}

// NewStaticSource wraps a compiled message slice.
func NewStaticSource(messages []asyncapi.Message) *StaticSource {
	return &StaticSource{messages: messages}
}

// MessageNames implements MessageSource.
func (s *StaticSource) MessageNames() []string {
	names := make([]string, 0, len(s.messages))
	for _, m := range s.messages {
		names = append(names, m.Name)
	}
	return names
}

// Messages implements MessageSource.
func (s *StaticSource) Messages() []asyncapi.Message {
	out := make([]asyncapi.Message, len(s.messages))
	copy(out, s.messages)
	return out
}
