package expr

import (
	"testing"

	"github.com/flightdyn/fdcore/pkg/property"
)

func Test_PropertyRef_01_LateBinding(t *testing.T) {
	reg := property.NewRegistry()
	ref := property.NewRef(reg, "aero/qbar-psf")
	e := NewPropertyRef(ref)

	if _, err := reg.Tie("aero/qbar-psf", func() float64 { return 7 }); err != nil {
		t.Fatal(err)
	}

	got, err := e.Evaluate()
	if err != nil {
		t.Fatal(err)
	}

	if got != 7 {
		t.Fatalf("expected 7, got %v", got)
	}
}

func Test_Memoisation_01_CachesWithinFrame(t *testing.T) {
	reg := property.NewRegistry()
	calls := 0

	if _, err := reg.Tie("sensors/x", func() float64 {
		calls++
		return float64(calls)
	}); err != nil {
		t.Fatal(err)
	}

	ref := property.NewRef(reg, "sensors/x")
	propExpr := NewPropertyRef(ref)

	op, err := NewOperator(reg, TopLevel, []Expression{propExpr})
	if err != nil {
		t.Fatal(err)
	}

	v1, err := op.Evaluate()
	if err != nil {
		t.Fatal(err)
	}

	v2, err := op.Evaluate()
	if err != nil {
		t.Fatal(err)
	}

	if v1 != v2 {
		t.Fatalf("expected cached value within the same frame, got %v then %v", v1, v2)
	}

	reg.AdvanceFrame()

	v3, err := op.Evaluate()
	if err != nil {
		t.Fatal(err)
	}

	if v3 == v1 {
		t.Fatal("expected recomputation after AdvanceFrame")
	}
}

func Test_TemplateCall_01(t *testing.T) {
	reg := property.NewRegistry()

	node, err := reg.GetOrCreateNode("fcs/gain-input")
	if err != nil {
		t.Fatal(err)
	}

	if err := reg.Write(node, 4); err != nil {
		t.Fatal(err)
	}

	param := &Parameter{}

	double, err := NewOperator(reg, Product, []Expression{param, NewConstant(2)})
	if err != nil {
		t.Fatal(err)
	}

	tmpl := NewTemplate("double", param, double)
	call := NewTemplateCall(reg, tmpl, property.NewRef(reg, "fcs/gain-input"))

	got, err := call.Evaluate()
	if err != nil {
		t.Fatal(err)
	}

	if got != 8 {
		t.Fatalf("expected 8, got %v", got)
	}
}

func Test_Publish_01(t *testing.T) {
	reg := property.NewRegistry()

	e, err := NewOperator(reg, Sum, []Expression{NewConstant(1), NewConstant(2)})
	if err != nil {
		t.Fatal(err)
	}

	node, err := Publish(reg, "aero/cl-base", e)
	if err != nil {
		t.Fatal(err)
	}

	if got := reg.Read(node); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}

	if !node.IsTied() {
		t.Fatal("expected published node to be tied")
	}
}
