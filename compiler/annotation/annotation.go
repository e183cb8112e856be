// Package annotation models declarative metadata attached to program
// declarations as a generic, recursively nested key/value/flag/list tree.
// The tree is the compiler's input contract: any front end (a source-level
// attribute parser, a YAML manifest, hand-built fixtures in tests) that can
// produce it can drive the compiler.
package annotation

// Kind identifies what a node's value holds.
type Kind int

const (
	// KindString is a single literal value, e.g. title = "Chat API".
	KindString Kind = iota
	// KindFlag is a bare key with no value, e.g. triggers_binary.
	KindFlag
	// KindList is an ordered sequence of literal values.
	KindList
	// KindBlock is a nested annotation block, e.g. variable(...) inside
	// a server block.
	KindBlock
)

// Node is one key inside an annotation block.
type Node struct {
	Key   string
	Kind  Kind
	Value string
	Items []string
	Nodes []Node
}

// Block is one annotation attached to a declaration, e.g. server(...) or
// operation(...). List-style blocks such as messages(TypeA, TypeB) carry
// their arguments in Items instead of Nodes.
type Block struct {
	Name  string
	Nodes []Node
	Items []string
}

// Decl is a declaration together with its annotation blocks. Name is the
// declaration's own identifier, used for diagnostics and as the fallback
// message name.
type Decl struct {
	Name   string
	Blocks []Block
}

// StringNode builds a string-valued node.
func StringNode(key, value string) Node {
	return Node{Key: key, Kind: KindString, Value: value}
}

// FlagNode builds a flag node.
func FlagNode(key string) Node {
	return Node{Key: key, Kind: KindFlag}
}

// ListNode builds a list-valued node.
func ListNode(key string, items ...string) Node {
	return Node{Key: key, Kind: KindList, Items: items}
}

// BlockNode builds a nested block node.
func BlockNode(key string, nodes ...Node) Node {
	return Node{Key: key, Kind: KindBlock, Nodes: nodes}
}

// String returns the value of the named string node. The second result is
// false when the key is absent or holds a different kind; callers treat
// that as the field being unset.
func (b Block) String(key string) (string, bool) {
	for _, n := range b.Nodes {
		if n.Key == key {
			if n.Kind != KindString {
				return "", false
			}
			return n.Value, true
		}
	}
	return "", false
}

// Flag reports whether the named flag node is present.
func (b Block) Flag(key string) bool {
	for _, n := range b.Nodes {
		if n.Key == key {
			return n.Kind == KindFlag
		}
	}
	return false
}

// List returns the items of the named list node.
func (b Block) List(key string) ([]string, bool) {
	for _, n := range b.Nodes {
		if n.Key == key {
			if n.Kind != KindList {
				return nil, false
			}
			return n.Items, true
		}
	}
	return nil, false
}

// Nested returns every nested block with the given key, in declaration
// order. Each is parsed the same way as a top-level block.
func (b Block) Nested(key string) []Block {
	var out []Block
	for _, n := range b.Nodes {
		if n.Key == key && n.Kind == KindBlock {
			out = append(out, Block{Name: key, Nodes: n.Nodes})
		}
	}
	return out
}

// Named returns every block on the declaration with the given name, in
// declaration order.
func (d Decl) Named(name string) []Block {
	var out []Block
	for _, b := range d.Blocks {
		if b.Name == name {
			out = append(out, b)
		}
	}
	return out
}
