// Package schemagen synthesizes per-message payload schemas from a type's
// structural schema. Non-union types carry the whole structural schema as
// their single message's payload; tagged unions are decomposed into one
// payload per variant by locating the matching branch of the disjunction
// node.
package schemagen

import (
	"github.com/asyncdoc/asyncdoc/asyncapi"
	"github.com/asyncdoc/asyncdoc/compiler/metadata"
)

// BuildMessages produces one message per metadata record, in input order.
// structural is the type's structural schema from the reflection collaborator
// (nil when the type has none); tag is the discriminator field name of a
// tagged union, empty when unknown or not a union.
//
// For a single record the payload is the whole structural schema. For
// multiple records each payload is the disjunction branch whose
// discriminator carries a constant equal to the record's resolved name.
// A record with no matching branch gets no payload; that is not an error.
func BuildMessages(metas []metadata.MessageMeta, structural *asyncapi.Schema, tag string) []asyncapi.Message {
	messages := make([]asyncapi.Message, 0, len(metas))

	var branches []*asyncapi.Schema
	if len(metas) > 1 {
		branches = disjunctionBranches(structural)
	}

	for _, meta := range metas {
		msg := asyncapi.Message{
			Name:        meta.Name,
			Title:       resolveTitle(meta),
			Summary:     meta.Summary,
			Description: meta.Description,
			ContentType: resolveContentType(meta),
		}

		if len(metas) == 1 {
			msg.Payload = structural
		} else if branch := matchBranch(branches, tag, meta.Name); branch != nil {
			msg.Payload = branch
		}

		messages = append(messages, msg)
	}

	return messages
}

// resolveContentType applies the content-type precedence: an explicit
// content_type attribute wins, then the triggers_binary flag, then the
// JSON default.
func resolveContentType(meta metadata.MessageMeta) string {
	if meta.ContentType != "" {
		return meta.ContentType
	}
	if meta.TriggersBinary {
		return asyncapi.ContentTypeBinary
	}
	return asyncapi.ContentTypeJSON
}

// resolveTitle applies the title default: the explicit title attribute,
// else the resolved message name.
func resolveTitle(meta metadata.MessageMeta) string {
	if meta.Title != "" {
		return meta.Title
	}
	return meta.Name
}

// disjunctionBranches locates the disjunction node of a structural schema:
// the node listing one branch per union variant. oneOf takes precedence
// over anyOf, matching how tagged unions are encoded by the reflection
// collaborator.
func disjunctionBranches(s *asyncapi.Schema) []*asyncapi.Schema {
	if s == nil || s.Object == nil {
		return nil
	}
	if len(s.Object.OneOf) > 0 {
		return s.Object.OneOf
	}
	if len(s.Object.AnyOf) > 0 {
		return s.Object.AnyOf
	}
	return nil
}

// matchBranch finds the branch whose discriminator property carries a
// constant equal to name. When the tag field is known only that property
// is inspected; otherwise any property with a matching constant qualifies.
func matchBranch(branches []*asyncapi.Schema, tag, name string) *asyncapi.Schema {
	for _, branch := range branches {
		if branch == nil || branch.Object == nil {
			continue
		}
		if tag != "" {
			prop, ok := branch.Object.Properties[tag]
			if ok && propertyHasConst(prop, name) {
				return branch
			}
			continue
		}
		for _, prop := range branch.Object.Properties {
			if propertyHasConst(prop, name) {
				return branch
			}
		}
	}
	return nil
}

// propertyHasConst reports whether a property schema pins the given literal,
// either through const or through a single-valued enum.
func propertyHasConst(prop *asyncapi.Schema, name string) bool {
	if prop == nil || prop.Object == nil {
		return false
	}
	want := asyncapi.StringValue(name)
	if prop.Object.Const != nil && prop.Object.Const.Equal(want) {
		return true
	}
	if len(prop.Object.Enum) == 1 && prop.Object.Enum[0].Equal(want) {
		return true
	}
	return false
}
