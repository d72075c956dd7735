package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flightdyn/fdcore/pkg/docfmt"
	"github.com/flightdyn/fdcore/pkg/property"
)

// buildScript parses a <runscript><run start=".." end=".." dt="..">
// ...<event name=".." persistent="true"><condition>...</condition>
// <set name=".." value=".." action=".." tc=".."/></event></run></runscript>
// document, the textual shape JSBSim scripts use, per SPEC_FULL.md §6.
func buildScript(registry *property.Registry, root *docfmt.Element) ([]*WhenBlock, float64, float64, bool, error) {
	runs := root.ChildrenTagged("run")
	if len(runs) != 1 {
		return nil, 0, 0, false, fmt.Errorf("%w: script document must have exactly one run element, got %d", ErrMalformedDocument, len(runs))
	}

	run := runs[0]

	dt, err := attrFloat(run, "dt", 0.01)
	if err != nil {
		return nil, 0, 0, false, err
	}

	var endTime float64

	hasEndTime := false

	if endText, ok := run.Attr("end"); ok {
		endTime, err = strconv.ParseFloat(endText, 64)
		if err != nil {
			return nil, 0, 0, false, fmt.Errorf("%w: malformed run end %q", ErrMalformedDocument, endText)
		}

		hasEndTime = true
	}

	events := run.ChildrenTagged("event")
	blocks := make([]*WhenBlock, 0, len(events))

	for _, ev := range events {
		block, err := buildWhenBlock(registry, ev)
		if err != nil {
			return nil, 0, 0, false, err
		}

		blocks = append(blocks, block)
	}

	return blocks, dt, endTime, hasEndTime, nil
}

func attrFloat(el *docfmt.Element, name string, def float64) (float64, error) {
	text, ok := el.Attr(name)
	if !ok {
		return def, nil
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed %s attribute %q", ErrMalformedDocument, name, text)
	}

	return v, nil
}

func buildWhenBlock(registry *property.Registry, ev *docfmt.Element) (*WhenBlock, error) {
	name, _ := ev.Attr("name")

	persistent := false
	if p, ok := ev.Attr("persistent"); ok {
		persistent = p == "true"
	}

	condEls := ev.ChildrenTagged("condition")
	if len(condEls) == 0 {
		return nil, fmt.Errorf("%w: event %q has no condition", ErrMalformedDocument, name)
	}

	var conditions []*Condition

	for _, ce := range condEls {
		for _, line := range strings.Split(ce.Text(), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			cond, err := parseCondition(registry, line)
			if err != nil {
				return nil, err
			}

			conditions = append(conditions, cond)
		}
	}

	setEls := ev.ChildrenTagged("set")
	actions := make([]*Action, 0, len(setEls))

	for _, se := range setEls {
		action, err := buildAction(registry, se)
		if err != nil {
			return nil, err
		}

		actions = append(actions, action)
	}

	return &WhenBlock{Name: name, Conditions: conditions, Actions: actions, Persistent: persistent}, nil
}

func buildAction(registry *property.Registry, se *docfmt.Element) (*Action, error) {
	targetPath, ok := se.Attr("name")
	if !ok {
		return nil, fmt.Errorf("%w: set element missing name attribute", ErrMalformedDocument)
	}

	target := registry.LookupNode(targetPath)
	if target == nil {
		return nil, fmt.Errorf("%w: set target %q", ErrUnresolvedProperty, targetPath)
	}

	valueText, ok := se.Attr("value")
	if !ok {
		return nil, fmt.Errorf("%w: set element %q missing value attribute", ErrMalformedDocument, targetPath)
	}

	value, err := strconv.ParseFloat(valueText, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: set element %q malformed value %q", ErrMalformedDocument, targetPath, valueText)
	}

	kind := Step

	if kindText, ok := se.Attr("action"); ok {
		k, ok := kindNames[kindText]
		if !ok {
			return nil, fmt.Errorf("%w: unknown action kind %q", ErrMalformedDocument, kindText)
		}

		kind = k
	}

	tc, err := attrFloat(se, "tc", 0)
	if err != nil {
		return nil, err
	}

	return &Action{Kind: kind, Target: target, Value: value, TimeConstant: tc}, nil
}
