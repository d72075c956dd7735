package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/flightdyn/fdcore/pkg/docfmt"
	"github.com/flightdyn/fdcore/pkg/property"
)

func parseScriptDoc(t *testing.T, doc string) *docfmt.Element {
	t.Helper()

	el, err := docfmt.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	return el
}

func Test_Condition_01_PropertyVsValue(t *testing.T) {
	reg := property.NewRegistry()

	node, err := reg.GetOrCreateNode("fcs/elevator-pos-deg")
	if err != nil {
		t.Fatal(err)
	}

	if err := reg.Write(node, 6); err != nil {
		t.Fatal(err)
	}

	cond, err := parseCondition(reg, "fcs/elevator-pos-deg ge 5")
	if err != nil {
		t.Fatal(err)
	}

	ok, err := cond.Evaluate()
	if err != nil {
		t.Fatal(err)
	}

	if !ok {
		t.Fatal("expected 6 ge 5 to be true")
	}
}

func Test_Condition_02_PropertyVsProperty(t *testing.T) {
	reg := property.NewRegistry()

	a, err := reg.GetOrCreateNode("a")
	if err != nil {
		t.Fatal(err)
	}

	b, err := reg.GetOrCreateNode("b")
	if err != nil {
		t.Fatal(err)
	}

	if err := reg.Write(a, 3); err != nil {
		t.Fatal(err)
	}

	if err := reg.Write(b, 3); err != nil {
		t.Fatal(err)
	}

	cond, err := parseCondition(reg, "a eq b")
	if err != nil {
		t.Fatal(err)
	}

	ok, err := cond.Evaluate()
	if err != nil {
		t.Fatal(err)
	}

	if !ok {
		t.Fatal("expected a eq b to be true")
	}
}

func Test_Condition_03_UnresolvedOperandRejected(t *testing.T) {
	reg := property.NewRegistry()

	if _, err := parseCondition(reg, "nowhere/here ge 5"); !errors.Is(err, ErrUnresolvedProperty) {
		t.Fatalf("expected ErrUnresolvedProperty, got %v", err)
	}
}

func Test_WhenBlock_01_RisingEdgeFiresOnce(t *testing.T) {
	reg := property.NewRegistry()

	guard, err := reg.GetOrCreateNode("guard")
	if err != nil {
		t.Fatal(err)
	}

	target, err := reg.GetOrCreateNode("target")
	if err != nil {
		t.Fatal(err)
	}

	cond, err := parseCondition(reg, "guard eq 1")
	if err != nil {
		t.Fatal(err)
	}

	w := &WhenBlock{Conditions: []*Condition{cond}, Actions: []*Action{{Kind: Step, Target: target, Value: 42}}}

	if err := reg.Write(guard, 1); err != nil {
		t.Fatal(err)
	}

	fired, err := w.evaluate(reg, 0, 0.01)
	if err != nil {
		t.Fatal(err)
	}

	if !fired {
		t.Fatal("expected first tick with guard true to fire")
	}

	if got := reg.Read(target); got != 42 {
		t.Fatalf("expected target=42, got %v", got)
	}

	if err := reg.Write(target, 0); err != nil {
		t.Fatal(err)
	}

	fired, err = w.evaluate(reg, 0.01, 0.01)
	if err != nil {
		t.Fatal(err)
	}

	if fired {
		t.Fatal("expected no re-fire while guard stays true without a new rising edge")
	}

	if got := reg.Read(target); got != 0 {
		t.Fatalf("expected target to remain unchanged at 0, got %v", got)
	}
}

func Test_WhenBlock_02_PersistentRefiresEveryTick(t *testing.T) {
	reg := property.NewRegistry()

	guard, err := reg.GetOrCreateNode("guard")
	if err != nil {
		t.Fatal(err)
	}

	target, err := reg.GetOrCreateNode("target")
	if err != nil {
		t.Fatal(err)
	}

	cond, err := parseCondition(reg, "guard eq 1")
	if err != nil {
		t.Fatal(err)
	}

	w := &WhenBlock{
		Conditions: []*Condition{cond},
		Actions:    []*Action{{Kind: Step, Target: target, Value: 7}},
		Persistent: true,
	}

	if err := reg.Write(guard, 1); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		fired, err := w.evaluate(reg, float64(i)*0.01, 0.01)
		if err != nil {
			t.Fatal(err)
		}

		if !fired {
			t.Fatalf("tick %d: expected persistent block to fire", i)
		}
	}
}

func Test_Action_01_RampReachesTargetAfterTimeConstant(t *testing.T) {
	reg := property.NewRegistry()

	target, err := reg.GetOrCreateNode("target")
	if err != nil {
		t.Fatal(err)
	}

	a := &Action{Kind: Ramp, Target: target, Value: 10, TimeConstant: 1.0}

	if err := a.fire(reg, 0, 0.5); err != nil {
		t.Fatal(err)
	}

	if got := reg.Read(target); got != 5 {
		t.Fatalf("expected halfway (5) at t=0.5 of tc=1, got %v", got)
	}

	if err := a.fire(reg, 1.0, 0.5); err != nil {
		t.Fatal(err)
	}

	if got := reg.Read(target); got != 10 {
		t.Fatalf("expected exactly 10 once elapsed >= tc, got %v", got)
	}
}

func Test_Action_02_ExpApproachesAsymptotically(t *testing.T) {
	reg := property.NewRegistry()

	target, err := reg.GetOrCreateNode("target")
	if err != nil {
		t.Fatal(err)
	}

	a := &Action{Kind: Exp, Target: target, Value: 10, TimeConstant: 1.0}

	if err := a.fire(reg, 0, 0.01); err != nil {
		t.Fatal(err)
	}

	got := reg.Read(target)
	if got <= 0 || got >= 10 {
		t.Fatalf("expected first exp step strictly between 0 and 10, got %v", got)
	}
}

// Test_Engine_01_LoadAndRunTicks uses a persistent block (which never
// settles on its own) so termination exercises the end-time path rather
// than the fire-once settling path covered by Test_Engine_03.
func Test_Engine_01_LoadAndRunTicks(t *testing.T) {
	doc := `<runscript>
		<run start="0" end="0.03" dt="0.01">
			<event name="trigger-at-guard" persistent="true">
				<condition>guard eq 1</condition>
				<set name="target" value="9" action="step"/>
			</event>
		</run>
	</runscript>`

	reg := property.NewRegistry()

	if _, err := reg.GetOrCreateNode("guard"); err != nil {
		t.Fatal(err)
	}

	if err := reg.Write(reg.LookupNode("guard"), 1); err != nil {
		t.Fatal(err)
	}

	if _, err := reg.GetOrCreateNode("target"); err != nil {
		t.Fatal(err)
	}

	engine, err := NewEngine(reg)
	if err != nil {
		t.Fatal(err)
	}

	if err := engine.LoadDocument(parseScriptDoc(t, doc)); err != nil {
		t.Fatal(err)
	}

	more, err := engine.RunOneTick()
	if err != nil {
		t.Fatal(err)
	}

	if !more {
		t.Fatal("expected run to continue before reaching end-time")
	}

	if got := reg.Read(reg.LookupNode("target")); got != 9 {
		t.Fatalf("expected target=9 after first tick, got %v", got)
	}

	for i := 0; i < 5; i++ {
		more, err = engine.RunOneTick()
		if err != nil {
			t.Fatal(err)
		}

		if !more {
			break
		}
	}

	if more {
		t.Fatal("expected run to report done once end-time is reached")
	}
}

// Test_Engine_03_SettlesWhenNoBlockRemainsFirable covers the other half of
// spec.md §4.4's termination rule: a one-shot block that has already fired
// ends the run even with a distant end-time.
func Test_Engine_03_SettlesWhenNoBlockRemainsFirable(t *testing.T) {
	doc := `<runscript>
		<run start="0" end="1000" dt="0.01">
			<event name="one-shot">
				<condition>guard eq 1</condition>
				<set name="target" value="9" action="step"/>
			</event>
		</run>
	</runscript>`

	reg := property.NewRegistry()

	if _, err := reg.GetOrCreateNode("guard"); err != nil {
		t.Fatal(err)
	}

	if err := reg.Write(reg.LookupNode("guard"), 1); err != nil {
		t.Fatal(err)
	}

	if _, err := reg.GetOrCreateNode("target"); err != nil {
		t.Fatal(err)
	}

	engine, err := NewEngine(reg)
	if err != nil {
		t.Fatal(err)
	}

	if err := engine.LoadDocument(parseScriptDoc(t, doc)); err != nil {
		t.Fatal(err)
	}

	more, err := engine.RunOneTick()
	if err != nil {
		t.Fatal(err)
	}

	if more {
		t.Fatal("expected run to settle once its sole one-shot block has fired")
	}
}

func Test_Engine_02_UnresolvedTargetRejectedAtLoad(t *testing.T) {
	doc := `<runscript>
		<run dt="0.01">
			<event name="bad">
				<condition>guard eq 1</condition>
				<set name="nowhere/here" value="1"/>
			</event>
		</run>
	</runscript>`

	reg := property.NewRegistry()

	if _, err := reg.GetOrCreateNode("guard"); err != nil {
		t.Fatal(err)
	}

	engine, err := NewEngine(reg)
	if err != nil {
		t.Fatal(err)
	}

	if err := engine.LoadDocument(parseScriptDoc(t, doc)); !errors.Is(err, ErrUnresolvedProperty) {
		t.Fatalf("expected ErrUnresolvedProperty, got %v", err)
	}
}
