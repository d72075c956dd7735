package script

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/flightdyn/fdcore/pkg/docfmt"
	"github.com/flightdyn/fdcore/pkg/property"
)

// Engine drives a loaded Script against a Registry, per spec.md §4.4 and
// §6's consumer surface: loadScript(path), runOneTick() → bool.
type Engine struct {
	Registry *property.Registry
	Blocks   []*WhenBlock

	dt         float64
	simTime    float64
	simNode    *property.Node
	endTime    float64
	hasEndTime bool
}

// NewEngine constructs an Engine against registry with no loaded blocks.
// sim-time-sec is created (not tied) so external readers can observe it the
// same way they read any other stored property.
func NewEngine(registry *property.Registry) (*Engine, error) {
	node, err := registry.GetOrCreateNode("sim-time-sec")
	if err != nil {
		return nil, err
	}

	return &Engine{Registry: registry, simNode: node, dt: 0.01}, nil
}

// SimTime returns the engine's current simulated time.
func (e *Engine) SimTime() float64 { return e.simTime }

// LoadScript reads and parses the script document at path, replacing any
// previously loaded blocks.
func (e *Engine) LoadScript(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer f.Close()

	root, err := docfmt.Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := e.LoadDocument(root); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

// LoadDocument builds the engine's run parameters and WhenBlocks from an
// already-parsed document element (the <runscript><run>... tree).
func (e *Engine) LoadDocument(root *docfmt.Element) error {
	blocks, dt, endTime, hasEndTime, err := buildScript(e.Registry, root)
	if err != nil {
		return err
	}

	e.Blocks = blocks
	e.dt = dt
	e.endTime = endTime
	e.hasEndTime = hasEndTime

	log.Debugf("script: loaded %d when-blocks, dt=%v", len(e.Blocks), e.dt)

	return nil
}

// RunOneTick advances the simulated clock by one dt, evaluates every
// WhenBlock, and fires actions per spec.md §4.4's rising-edge rule. The
// returned bool is true while the run should continue — it becomes false
// once the end-time is reached or every block has fired and none remain
// firable (spec.md §4.4, "Termination").
func (e *Engine) RunOneTick() (bool, error) {
	e.simTime += e.dt

	if err := e.Registry.Write(e.simNode, e.simTime); err != nil {
		return false, err
	}

	for _, w := range e.Blocks {
		if _, err := w.evaluate(e.Registry, e.simTime, e.dt); err != nil {
			return false, err
		}
	}

	if e.hasEndTime && e.simTime >= e.endTime {
		return false, nil
	}

	return !e.allBlocksSettled(), nil
}

func (e *Engine) allBlocksSettled() bool {
	for _, w := range e.Blocks {
		if w.remainsFirable() {
			return false
		}
	}

	return len(e.Blocks) > 0
}
