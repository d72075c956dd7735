package expr

import "github.com/flightdyn/fdcore/pkg/property"

// cache implements the frame-counter memoisation scheme from spec.md §9
// ("Cached evaluation"): rather than a boolean the surrounding framework
// must walk and clear, each node compares its own stored frame against the
// registry's current frame and recomputes only when they differ.
//
// registry is nil for subtrees built without Registry access (e.g. tables
// constructed purely programmatically); such nodes never memoise, which is
// safe since spec.md §8 requires non-property expressions to be
// deterministic regardless of call count anyway.
type cache struct {
	registry *property.Registry
	frame    uint64
	value    float64
	valid    bool
}

func (c *cache) get() (float64, bool) {
	if !c.valid || c.registry == nil {
		return 0, false
	}

	if c.frame != c.registry.Frame() {
		return 0, false
	}

	return c.value, true
}

func (c *cache) put(v float64) {
	if c.registry == nil {
		return
	}

	c.frame = c.registry.Frame()
	c.value = v
	c.valid = true
}
