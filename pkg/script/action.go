package script

import (
	"fmt"
	"math"

	"github.com/flightdyn/fdcore/pkg/property"
)

// Kind identifies an Action's assignment strategy, per spec.md §4.4.
type Kind int

const (
	// Step writes Value to Target immediately.
	Step Kind = iota
	// Ramp linearly drives Target toward Value over TimeConstant seconds.
	Ramp
	// Exp drives Target toward Value with an exponential approach:
	// target += (value - target) * (1 - exp(-dt/tc)) per tick.
	Exp
)

var kindNames = map[string]Kind{
	"step": Step,
	"ramp": Ramp,
	"exp":  Exp,
}

// Action assigns Value to Target according to Kind. Ramp bookkeeping
// (started/startValue/startTime) lives on the struct itself, the same
// cached-hint discipline pkg/table uses for lastRow/lastColumn: small
// explicit mutable state instead of recomputing history every tick.
type Action struct {
	Kind         Kind
	Target       *property.Node
	Value        float64
	TimeConstant float64

	started    bool
	startValue float64
	startTime  float64
}

// fire applies the action for the current tick. simTime and dt are the
// engine's current simulated time and tick step.
func (a *Action) fire(registry *property.Registry, simTime, dt float64) error {
	switch a.Kind {
	case Step:
		return registry.Write(a.Target, a.Value)
	case Ramp:
		if !a.started {
			a.started = true
			a.startValue = registry.Read(a.Target)
			// The ramp starts at the beginning of the tick it first fires
			// in, so that first firing already advances it by dt.
			a.startTime = simTime - dt
		}

		if a.TimeConstant <= 0 {
			return registry.Write(a.Target, a.Value)
		}

		frac := (simTime - a.startTime) / a.TimeConstant
		if frac >= 1 {
			return registry.Write(a.Target, a.Value)
		}

		return registry.Write(a.Target, a.startValue+(a.Value-a.startValue)*frac)
	case Exp:
		if a.TimeConstant <= 0 {
			return registry.Write(a.Target, a.Value)
		}

		cur := registry.Read(a.Target)
		next := cur + (a.Value-cur)*(1-math.Exp(-dt/a.TimeConstant))

		return registry.Write(a.Target, next)
	default:
		return fmt.Errorf("%w: unknown action kind %d", ErrMalformedDocument, a.Kind)
	}
}

// reset clears Ramp's in-progress bookkeeping so a later rising edge starts
// the approach over from the target's then-current value.
func (a *Action) reset() {
	a.started = false
}
