package property

import (
	"github.com/bits-and-blooms/bitset"
)

// Attribute flags carried by a PropertyNode. Stored in a bitset rather than
// a handful of bool fields so new flags (e.g. a future "ARCHIVABLE") can be
// added without growing the struct.
const (
	// Read indicates the node's value may be read. Set on every node.
	Read uint = iota
	// Write indicates the node accepts Registry.Write. Untied nodes are
	// writable by default; tied nodes never are, regardless of this bit.
	Write
	// Tied indicates the node's value is produced by a Supplier rather than
	// stored directly.
	Tied
)

// Supplier produces a tied node's current value on read.
type Supplier func() float64

// Node is one named scalar variable in the Property Registry tree. Leaves
// hold a stored double or delegate to a Supplier; interior nodes exist only
// to organise the path namespace and carry no meaningful value of their own.
type Node struct {
	path     string
	name     string
	parent   *Node
	children []*Node
	value    float64
	attrs    *bitset.BitSet
	supplier Supplier
}

func newNode(path, name string, parent *Node) *Node {
	attrs := bitset.New(3)
	attrs.Set(Read)
	attrs.Set(Write)

	return &Node{
		path:   path,
		name:   name,
		parent: parent,
		attrs:  attrs,
	}
}

// Path returns the node's fully-qualified slash-separated path.
func (n *Node) Path() string { return n.path }

// Name returns the node's local (last-segment) name.
func (n *Node) Name() string { return n.name }

// Parent returns the node's parent, or nil at the registry root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's ordered children. Callers must not mutate the
// returned slice.
func (n *Node) Children() []*Node { return n.children }

// IsTied reports whether the node currently delegates to a Supplier.
func (n *Node) IsTied() bool { return n.attrs.Test(Tied) }

// IsWritable reports whether Registry.Write would succeed against this node
// right now (i.e. it is untied and its WRITE flag is set).
func (n *Node) IsWritable() bool {
	return !n.attrs.Test(Tied) && n.attrs.Test(Write)
}

// IsConstant reports whether the node is neither tied nor writable, i.e. its
// value can never change once set.
func (n *Node) IsConstant() bool {
	return !n.attrs.Test(Tied) && !n.attrs.Test(Write)
}

// SetWritable toggles the WRITE attribute. Has no effect on whether the node
// is tied.
func (n *Node) SetWritable(w bool) {
	if w {
		n.attrs.Set(Write)
	} else {
		n.attrs.Clear(Write)
	}
}

func (n *Node) addChild(c *Node) {
	n.children = append(n.children, c)
}

func (n *Node) findChild(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}

	return nil
}
