package property

import (
	"fmt"
	"strings"
)

// Registry is a persistent, hierarchical mapping from slash-separated paths
// to Nodes. The empty path names the root; duplicate paths are forbidden by
// construction (GetOrCreateNode is idempotent, never duplicating).
type Registry struct {
	root  *Node
	frame uint64
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{root: newNode("", "", nil)}
}

// Frame returns the registry's current evaluation frame counter. Expression
// memoisation slots compare their stored frame against this value to decide
// whether a cached value is still valid (see SPEC_FULL.md §4).
func (r *Registry) Frame() uint64 { return r.frame }

// AdvanceFrame increments the frame counter, invalidating every expression's
// memoised value. Called by the surrounding framework once per physics tick,
// after all property writes for that tick have landed.
func (r *Registry) AdvanceFrame() { r.frame++ }

// splitPath normalises and splits a path into segments. A leading '-' (sign)
// is not part of path normalisation itself; callers peel it off before
// calling this (see PropertyRef). Leading and trailing slashes are trimmed;
// an empty interior segment ("a//b") is rejected as malformed.
func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, nil
	}

	segments := strings.Split(trimmed, "/")
	for _, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("%w: empty path segment in %q", ErrMalformedDocument, path)
		}
	}

	return segments, nil
}

// ExpandMacro replaces the first '#' placeholder in path with prefix. Used
// to namespace per-instance properties (e.g. "propulsion/engine[#]/thrust-lbs"
// instantiated per engine index).
func ExpandMacro(path, prefix string) string {
	return strings.Replace(path, "#", prefix, 1)
}

// GetOrCreateNode returns the node at path, creating any missing ancestors
// and the leaf itself. Idempotent: calling it twice with the same path
// returns the same *Node.
func (r *Registry) GetOrCreateNode(path string) (*Node, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	cur := r.root
	built := ""

	for _, seg := range segments {
		if built == "" {
			built = seg
		} else {
			built = built + "/" + seg
		}

		child := cur.findChild(seg)
		if child == nil {
			child = newNode(built, seg, cur)
			cur.addChild(child)
		}

		cur = child
	}

	return cur, nil
}

// LookupNode returns the node at path, or nil if any segment along the path
// is missing.
func (r *Registry) LookupNode(path string) *Node {
	segments, err := splitPath(path)
	if err != nil {
		return nil
	}

	cur := r.root

	for _, seg := range segments {
		cur = cur.findChild(seg)
		if cur == nil {
			return nil
		}
	}

	return cur
}

// HasNode reports whether path resolves to an existing node.
func (r *Registry) HasNode(path string) bool {
	return r.LookupNode(path) != nil
}

// Tie attaches supplier to the node at path (creating it if necessary),
// turning it into a tied (computed) node. Fails with ErrAlreadyTied if the
// node already has a supplier.
func (r *Registry) Tie(path string, supplier Supplier) (*Node, error) {
	node, err := r.GetOrCreateNode(path)
	if err != nil {
		return nil, err
	}

	if node.attrs.Test(Tied) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyTied, path)
	}

	node.supplier = supplier
	node.attrs.Set(Tied)

	return node, nil
}

// Untie restores a tied node to a stored-value node, preserving its last
// observed value as the new stored value. No-op on an already-untied node.
func (r *Registry) Untie(path string) error {
	node := r.LookupNode(path)
	if node == nil {
		return fmt.Errorf("%w: %s", ErrUnresolvedProperty, path)
	}

	if !node.attrs.Test(Tied) {
		return nil
	}

	node.value = node.supplier()
	node.supplier = nil
	node.attrs.Clear(Tied)

	return nil
}

// Read returns node's current value: the supplier's output when tied, else
// the stored value.
func (r *Registry) Read(node *Node) float64 {
	if node.attrs.Test(Tied) {
		return node.supplier()
	}

	return node.value
}

// Write stores v into node. Fails with ErrNotWritable when the node is tied
// or its WRITE attribute is unset.
func (r *Registry) Write(node *Node, v float64) error {
	if !node.IsWritable() {
		return fmt.Errorf("%w: %s", ErrNotWritable, node.path)
	}

	node.value = v

	return nil
}
