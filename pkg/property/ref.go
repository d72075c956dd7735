package property

import (
	"fmt"
	"strings"
)

// Ref is a late-bindable, optionally-negated handle to a Node. It is built
// from a textual path (an optional leading '-' sets sign = -1) and resolves
// against a Registry either eagerly, if the node already exists, or lazily
// on first Value call.
type Ref struct {
	path     string
	sign     float64
	registry *Registry
	node     *Node
}

// NewRef constructs a reference to path against registry. If the node
// already exists it is bound immediately; otherwise binding is deferred to
// the first Value() call.
func NewRef(registry *Registry, path string) *Ref {
	sign := 1.0

	if strings.HasPrefix(path, "-") {
		sign = -1.0
		path = path[1:]
	}

	ref := &Ref{path: path, sign: sign, registry: registry}
	ref.node = registry.LookupNode(path)

	return ref
}

// Path returns the unsigned path this reference was constructed from.
func (r *Ref) Path() string { return r.path }

// Sign returns +1 or -1 depending on whether the reference was constructed
// with a leading '-'.
func (r *Ref) Sign() float64 { return r.sign }

// Node returns the bound node, or nil if resolution hasn't happened (or
// failed) yet.
func (r *Ref) Node() *Node { return r.node }

// Value resolves the reference if necessary and returns the node's current
// value multiplied by the reference's sign. Fails with ErrUnresolvedProperty
// if the path still doesn't exist.
func (r *Ref) Value() (float64, error) {
	if r.node == nil {
		r.node = r.registry.LookupNode(r.path)
		if r.node == nil {
			return 0, fmt.Errorf("%w: %s", ErrUnresolvedProperty, r.path)
		}
	}

	return r.sign * r.registry.Read(r.node), nil
}
