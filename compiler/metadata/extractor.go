package metadata

import (
	"github.com/asyncdoc/asyncdoc/compiler/annotation"
)

// Block names recognized on a spec declaration.
const (
	blockSpec      = "spec"
	blockServer    = "server"
	blockChannel   = "channel"
	blockOperation = "operation"
	blockMessages  = "messages"
	blockMessage   = "message"
)

// ExtractSpec converts a spec declaration's annotation tree into a SpecMeta.
// Repeated blocks each contribute one record, in declaration order. The
// function is pure; it never fails, and it performs no required-field
// validation (the assembler does).
func ExtractSpec(decl annotation.Decl) SpecMeta {
	meta := SpecMeta{Symbol: decl.Name}

	for _, block := range decl.Blocks {
		switch block.Name {
		case blockSpec:
			if v, ok := block.String("title"); ok {
				meta.Title = v
			}
			if v, ok := block.String("version"); ok {
				meta.Version = v
			}
			if v, ok := block.String("description"); ok {
				meta.Description = v
			}
			if v, ok := block.String("id"); ok {
				meta.ID = v
			}
		case blockServer:
			meta.Servers = append(meta.Servers, extractServer(block))
		case blockChannel:
			meta.Channels = append(meta.Channels, extractChannel(block))
		case blockOperation:
			meta.Operations = append(meta.Operations, extractOperation(block))
		case blockMessages:
			meta.MessageTypes = append(meta.MessageTypes, block.Items...)
		}
	}

	return meta
}

// ExtractMessage converts the message annotation blocks of one type or
// union variant into a MessageMeta. The message name is the explicit
// rename when present, otherwise the declaration's own identifier.
func ExtractMessage(declName string, blocks []annotation.Block) MessageMeta {
	meta := MessageMeta{Name: declName}

	for _, block := range blocks {
		if block.Name != blockMessage {
			continue
		}
		if v, ok := block.String("name"); ok {
			meta.Name = v
		}
		if v, ok := block.String("title"); ok {
			meta.Title = v
		}
		if v, ok := block.String("summary"); ok {
			meta.Summary = v
		}
		if v, ok := block.String("description"); ok {
			meta.Description = v
		}
		if v, ok := block.String("content_type"); ok {
			meta.ContentType = v
		}
		if block.Flag("triggers_binary") {
			meta.TriggersBinary = true
		}
	}

	return meta
}

func extractServer(block annotation.Block) ServerMeta {
	server := ServerMeta{}
	if v, ok := block.String("name"); ok {
		server.Name = v
	}
	if v, ok := block.String("host"); ok {
		server.Host = v
	}
	if v, ok := block.String("protocol"); ok {
		server.Protocol = v
	}
	if v, ok := block.String("pathname"); ok {
		server.Pathname = v
	}
	if v, ok := block.String("description"); ok {
		server.Description = v
	}

	for _, nested := range block.Nested("variable") {
		variable, ok := extractServerVariable(nested)
		if !ok {
			// Unnamed nested blocks are dropped; the server itself
			// is still produced.
			continue
		}
		server.Variables = append(server.Variables, variable)
	}

	return server
}

func extractServerVariable(block annotation.Block) (ServerVariableMeta, bool) {
	name, ok := block.String("name")
	if !ok || name == "" {
		return ServerVariableMeta{}, false
	}

	variable := ServerVariableMeta{Name: name}
	if v, ok := block.String("description"); ok {
		variable.Description = v
	}
	if v, ok := block.String("default"); ok {
		variable.Default = v
	}
	if items, ok := block.List("enum_values"); ok {
		variable.Enum = append(variable.Enum, items...)
	}
	if items, ok := block.List("examples"); ok {
		variable.Examples = append(variable.Examples, items...)
	}

	return variable, true
}

func extractChannel(block annotation.Block) ChannelMeta {
	channel := ChannelMeta{}
	if v, ok := block.String("name"); ok {
		channel.Name = v
	}
	if v, ok := block.String("address"); ok {
		channel.Address = v
	}
	if v, ok := block.String("description"); ok {
		channel.Description = v
	}

	for _, nested := range block.Nested("parameter") {
		parameter, ok := extractParameter(nested)
		if !ok {
			continue
		}
		channel.Parameters = append(channel.Parameters, parameter)
	}

	return channel
}

func extractParameter(block annotation.Block) (ParameterMeta, bool) {
	name, ok := block.String("name")
	if !ok || name == "" {
		return ParameterMeta{}, false
	}

	parameter := ParameterMeta{Name: name}
	if v, ok := block.String("description"); ok {
		parameter.Description = v
	}
	if v, ok := block.String("schema_type"); ok {
		parameter.SchemaType = v
	}
	if v, ok := block.String("format"); ok {
		parameter.Format = v
	}

	return parameter, true
}

func extractOperation(block annotation.Block) OperationMeta {
	op := OperationMeta{}
	if v, ok := block.String("name"); ok {
		op.Name = v
	}
	if v, ok := block.String("action"); ok {
		op.Action = v
	}
	if v, ok := block.String("channel"); ok {
		op.Channel = v
	}
	if v, ok := block.String("description"); ok {
		op.Description = v
	}
	if items, ok := block.List("messages"); ok {
		op.Messages = append(op.Messages, items...)
	}

	return op
}
