package expr

import (
	log "github.com/sirupsen/logrus"

	"github.com/flightdyn/fdcore/pkg/property"
)

// Publish registers expr under name in registry as a tied node, per
// spec.md §3 ("the root of an expression tree ... registered under its
// declared name ... exactly once") and §4.2 ("A top-level function element
// ... publishes it into the Property Registry as a tied node backed by its
// own evaluation").
//
// property.Node's Supplier signature returns only a float64: evaluation
// errors can't be propagated through Registry.Read. Rather than panic
// inside a read path the spec explicitly says must stay reentrant and
// allocation-light, a publish supplier logs the failure and substitutes the
// last successfully computed value (0 before any success). spec.md §9
// leaves this case open; this is the resolution recorded in DESIGN.md.
func Publish(registry *property.Registry, name string, e Expression) (*property.Node, error) {
	var last float64

	supplier := func() float64 {
		v, err := e.Evaluate()
		if err != nil {
			log.Warnf("expr: evaluation error for %q: %s (using last value %v)", name, err, last)
			return last
		}

		last = v

		return v
	}

	return registry.Tie(name, supplier)
}
