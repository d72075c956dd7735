package script

import "github.com/flightdyn/fdcore/pkg/property"

// WhenBlock is an AND-composed set of Conditions and the Actions to fire
// when they hold, per spec.md §3. Persistent blocks re-fire on every tick
// the conjunction holds; non-persistent blocks fire once per rising edge.
type WhenBlock struct {
	Name       string
	Conditions []*Condition
	Actions    []*Action
	Persistent bool

	wasTrue   bool
	everFired bool
}

// evaluate runs the block for one tick: checks the conjunction, decides
// whether this is a firing tick (rising edge, or persistent-and-true), and
// if so runs every action. Returns whether the block fired this tick.
func (w *WhenBlock) evaluate(registry *property.Registry, simTime, dt float64) (bool, error) {
	allTrue, err := w.allConditionsTrue()
	if err != nil {
		return false, err
	}

	if !allTrue {
		w.wasTrue = false

		for _, a := range w.Actions {
			a.reset()
		}

		return false, nil
	}

	fire := w.Persistent || !w.wasTrue
	w.wasTrue = true

	if !fire {
		return false, nil
	}

	for _, a := range w.Actions {
		if err := a.fire(registry, simTime, dt); err != nil {
			return false, err
		}
	}

	w.everFired = true

	return true, nil
}

func (w *WhenBlock) allConditionsTrue() (bool, error) {
	for _, c := range w.Conditions {
		ok, err := c.Evaluate()
		if err != nil {
			return false, err
		}

		if !ok {
			return false, nil
		}
	}

	return true, nil
}

// remainsFirable reports whether this block still keeps the run from
// settling: a persistent block always does; a one-shot block does until it
// has fired once (while the run continues, a later rising edge can still
// re-fire it).
func (w *WhenBlock) remainsFirable() bool {
	return w.Persistent || !w.everFired
}
