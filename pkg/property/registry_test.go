package property

import (
	"errors"
	"testing"
)

func Test_GetOrCreateNode_01(t *testing.T) {
	r := NewRegistry()

	n1, err := r.GetOrCreateNode("aero/qbar-psf")
	if err != nil {
		t.Fatal(err)
	}

	n2, err := r.GetOrCreateNode("aero/qbar-psf")
	if err != nil {
		t.Fatal(err)
	}

	if n1 != n2 {
		t.Fatal("expected idempotent node creation")
	}

	if n1.Path() != "aero/qbar-psf" {
		t.Fatalf("unexpected path: %s", n1.Path())
	}
}

func Test_GetOrCreateNode_02_RejectsEmptySegment(t *testing.T) {
	r := NewRegistry()

	if _, err := r.GetOrCreateNode("aero//qbar-psf"); !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
}

func Test_LookupNode_01_MissingSegment(t *testing.T) {
	r := NewRegistry()

	if _, err := r.GetOrCreateNode("aero/qbar-psf"); err != nil {
		t.Fatal(err)
	}

	if r.LookupNode("aero/missing") != nil {
		t.Fatal("expected nil for missing node")
	}
}

func Test_HasNode_01(t *testing.T) {
	r := NewRegistry()

	if r.HasNode("aero/qbar-psf") {
		t.Fatal("expected node to not exist yet")
	}

	if _, err := r.GetOrCreateNode("aero/qbar-psf"); err != nil {
		t.Fatal(err)
	}

	if !r.HasNode("aero/qbar-psf") {
		t.Fatal("expected node to exist")
	}
}

func Test_TieRead_01(t *testing.T) {
	r := NewRegistry()

	node, err := r.Tie("sensors/alpha-rad", func() float64 { return 0.125 })
	if err != nil {
		t.Fatal(err)
	}

	if got := r.Read(node); got != 0.125 {
		t.Fatalf("expected 0.125, got %v", got)
	}
}

func Test_Tie_02_AlreadyTied(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Tie("sensors/alpha-rad", func() float64 { return 1 }); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Tie("sensors/alpha-rad", func() float64 { return 2 }); !errors.Is(err, ErrAlreadyTied) {
		t.Fatalf("expected ErrAlreadyTied, got %v", err)
	}
}

func Test_Write_01_NotWritableWhenTied(t *testing.T) {
	r := NewRegistry()

	node, err := r.Tie("sensors/alpha-rad", func() float64 { return 1 })
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Write(node, 5); !errors.Is(err, ErrNotWritable) {
		t.Fatalf("expected ErrNotWritable, got %v", err)
	}
}

func Test_Untie_01_PreservesLastValue(t *testing.T) {
	r := NewRegistry()

	node, err := r.Tie("sensors/alpha-rad", func() float64 { return 3.5 })
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Untie("sensors/alpha-rad"); err != nil {
		t.Fatal(err)
	}

	if got := r.Read(node); got != 3.5 {
		t.Fatalf("expected preserved value 3.5, got %v", got)
	}

	if err := r.Write(node, 9); err != nil {
		t.Fatal(err)
	}

	if got := r.Read(node); got != 9 {
		t.Fatalf("expected 9, got %v", got)
	}
}

func Test_ExpandMacro_01(t *testing.T) {
	got := ExpandMacro("propulsion/engine[#]/thrust-lbs", "0")
	want := "propulsion/engine[0]/thrust-lbs"

	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func Test_AdvanceFrame_01(t *testing.T) {
	r := NewRegistry()

	if r.Frame() != 0 {
		t.Fatalf("expected initial frame 0, got %d", r.Frame())
	}

	r.AdvanceFrame()

	if r.Frame() != 1 {
		t.Fatalf("expected frame 1, got %d", r.Frame())
	}
}
