// Package assembler builds the final cross-referenced document from one
// spec's intermediate metadata plus read-only queries against other,
// already-compiled types. Assembly is a pure function of its inputs; the
// only hard failures are a missing spec title/version and an operation
// action outside {send, receive}. Everything else degrades to an absent
// field in the output.
package assembler

import (
	"strings"

	"github.com/asyncdoc/asyncdoc/asyncapi"
	"github.com/asyncdoc/asyncdoc/compiler/errors"
	"github.com/asyncdoc/asyncdoc/compiler/metadata"
)

// TypeResolver answers queries about other compiled types' message sets.
// *registry.Registry satisfies it.
type TypeResolver interface {
	// MessageNames lists the resolved message names of a type; false when
	// the type is unknown.
	MessageNames(typeName string) ([]string, bool)
	// Messages lists the full messages of a type; false when unknown.
	Messages(typeName string) ([]asyncapi.Message, bool)
}

// Reference path prefixes emitted by the assembler.
const (
	channelRefPrefix = "#/channels/"
	messageRefPrefix = "#/components/messages/"
)

// ChannelRef builds the reference path for a channel name.
func ChannelRef(name string) string {
	return channelRefPrefix + name
}

// MessageRef builds the reference path for a component message name.
func MessageRef(name string) string {
	return messageRefPrefix + name
}

// Assemble compiles one spec's metadata into a document. On hard failure
// no document is returned.
func Assemble(meta metadata.SpecMeta, resolver TypeResolver) (*asyncapi.Document, error) {
	// Step 1: spec-level required fields.
	if meta.Title == "" {
		return nil, errors.MissingRequiredField(meta.Symbol, "title")
	}
	if meta.Version == "" {
		return nil, errors.MissingRequiredField(meta.Symbol, "version")
	}

	doc := asyncapi.NewDocument(asyncapi.Info{
		Title:       meta.Title,
		Version:     meta.Version,
		Description: meta.Description,
	})
	doc.ID = meta.ID

	// Step 2: servers.
	doc.Servers = assembleServers(meta.Servers)

	// Step 3: channels.
	doc.Channels = assembleChannels(meta.Channels)

	// Step 4: operations. Each operation also records the message
	// references it contributes, for channel propagation below.
	operations, opMessages, err := assembleOperations(meta.Operations, resolver)
	if err != nil {
		return nil, err
	}
	doc.Operations = operations

	// Step 5: channel message propagation.
	propagateChannelMessages(doc.Channels, meta.Operations, opMessages)

	// Step 6: components.
	doc.Components = assembleComponents(meta.MessageTypes, resolver)

	return doc, nil
}

func assembleServers(metas []metadata.ServerMeta) map[string]asyncapi.Server {
	if len(metas) == 0 {
		return nil
	}

	servers := make(map[string]asyncapi.Server, len(metas))
	for _, m := range metas {
		if m.Name == "" {
			// An unnamed block has no map slot; drop it and keep going.
			continue
		}

		server := asyncapi.Server{
			Host:        m.Host,
			Protocol:    m.Protocol,
			Pathname:    m.Pathname,
			Description: m.Description,
		}
		for _, v := range m.Variables {
			if server.Variables == nil {
				server.Variables = make(map[string]asyncapi.ServerVariable, len(m.Variables))
			}
			server.Variables[v.Name] = asyncapi.ServerVariable{
				Description: v.Description,
				Default:     v.Default,
				Enum:        v.Enum,
				Examples:    v.Examples,
			}
		}

		servers[m.Name] = server
	}

	if len(servers) == 0 {
		return nil
	}
	return servers
}

func assembleChannels(metas []metadata.ChannelMeta) map[string]asyncapi.Channel {
	if len(metas) == 0 {
		return nil
	}

	channels := make(map[string]asyncapi.Channel, len(metas))
	for _, m := range metas {
		if m.Name == "" {
			continue
		}

		channel := asyncapi.Channel{
			Address:     m.Address,
			Description: m.Description,
		}
		for _, p := range m.Parameters {
			if channel.Parameters == nil {
				channel.Parameters = make(map[string]asyncapi.Parameter, len(m.Parameters))
			}
			channel.Parameters[p.Name] = asyncapi.Parameter{
				Description: p.Description,
				Schema:      parameterSchema(p),
			}
		}

		channels[m.Name] = channel
	}

	if len(channels) == 0 {
		return nil
	}
	return channels
}

// parameterSchema synthesizes a parameter's schema inline from its
// schema_type and format fields; no reflection is involved.
func parameterSchema(p metadata.ParameterMeta) *asyncapi.Schema {
	if p.SchemaType == "" && p.Format == "" {
		return nil
	}
	return asyncapi.NewObjectSchema(&asyncapi.SchemaObject{
		Type:   p.SchemaType,
		Format: p.Format,
	})
}

func assembleOperations(metas []metadata.OperationMeta, resolver TypeResolver) (map[string]asyncapi.Operation, map[string][]asyncapi.MessageRef, error) {
	if len(metas) == 0 {
		return nil, nil, nil
	}

	operations := make(map[string]asyncapi.Operation, len(metas))
	opMessages := make(map[string][]asyncapi.MessageRef, len(metas))

	for _, m := range metas {
		action, err := parseAction(m)
		if err != nil {
			return nil, nil, err
		}
		if m.Name == "" {
			continue
		}

		op := asyncapi.Operation{
			Action:      action,
			Channel:     asyncapi.ChannelRef{Ref: ChannelRef(m.Channel)},
			Description: m.Description,
		}

		for _, typeName := range m.Messages {
			names, ok := resolver.MessageNames(typeName)
			if !ok {
				// Unknown type identifiers degrade to no contribution.
				continue
			}
			for _, msgName := range names {
				op.Messages = append(op.Messages, asyncapi.NewMessageRef(MessageRef(msgName)))
			}
		}

		operations[m.Name] = op
		opMessages[m.Name] = op.Messages
	}

	if len(operations) == 0 {
		return nil, nil, nil
	}
	return operations, opMessages, nil
}

func parseAction(m metadata.OperationMeta) (asyncapi.OperationAction, error) {
	switch m.Action {
	case string(asyncapi.ActionSend):
		return asyncapi.ActionSend, nil
	case string(asyncapi.ActionReceive):
		return asyncapi.ActionReceive, nil
	default:
		symbol := m.Name
		if symbol == "" {
			symbol = "operation"
		}
		return "", errors.InvalidEnumValue(symbol, "action", m.Action)
	}
}

// propagateChannelMessages assigns each channel the deduplicated union of
// the message references contributed by every operation bound to it.
// Deduplication is by reference string, first-seen order preserved.
func propagateChannelMessages(channels map[string]asyncapi.Channel, opMetas []metadata.OperationMeta, opMessages map[string][]asyncapi.MessageRef) {
	for channelName, channel := range channels {
		seen := make(map[string]bool)
		var refs []asyncapi.MessageRef

		for _, m := range opMetas {
			if m.Channel != channelName {
				continue
			}
			for _, ref := range opMessages[m.Name] {
				if seen[ref.Ref] {
					continue
				}
				seen[ref.Ref] = true
				refs = append(refs, ref)
			}
		}

		if len(refs) == 0 {
			continue
		}

		channel.Messages = make(map[string]asyncapi.MessageRef, len(refs))
		for _, ref := range refs {
			channel.Messages[messageNameFromRef(ref.Ref)] = ref
		}
		channels[channelName] = channel
	}
}

// messageNameFromRef extracts the message name from a component reference
// path such as "#/components/messages/join".
func messageNameFromRef(ref string) string {
	idx := strings.LastIndex(ref, "/")
	if idx < 0 {
		return ref
	}
	return ref[idx+1:]
}

func assembleComponents(typeNames []string, resolver TypeResolver) *asyncapi.Components {
	if len(typeNames) == 0 {
		return nil
	}

	messages := make(map[string]asyncapi.Message)
	for _, typeName := range typeNames {
		msgs, ok := resolver.Messages(typeName)
		if !ok {
			continue
		}
		for _, msg := range msgs {
			// Duplicate names across listed types overwrite silently;
			// last write wins.
			messages[msg.Name] = msg
		}
	}

	if len(messages) == 0 {
		return nil
	}
	return &asyncapi.Components{Messages: messages}
}
