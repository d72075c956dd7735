package docfmt

import (
	"strings"
	"testing"
)

func Test_Parse_01_TagAttrText(t *testing.T) {
	doc := `<function name="aero/cl-base"><description>lift</description><sum><value>1</value><value>2</value></sum></function>`

	el, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	if el.Tag() != "function" {
		t.Fatalf("expected tag function, got %q", el.Tag())
	}

	name, ok := el.Attr("name")
	if !ok || name != "aero/cl-base" {
		t.Fatalf("expected name attribute aero/cl-base, got %q (ok=%v)", name, ok)
	}

	desc := el.ChildrenTagged("description")
	if len(desc) != 1 || desc[0].Text() != "lift" {
		t.Fatalf("expected single description %q, got %+v", "lift", desc)
	}

	sums := el.ChildrenTagged("sum")
	if len(sums) != 1 {
		t.Fatalf("expected one sum child, got %d", len(sums))
	}

	values := sums[0].ChildrenTagged("value")
	if len(values) != 2 {
		t.Fatalf("expected two value children, got %d", len(values))
	}
}

func Test_Parse_02_MissingAttrReturnsFalse(t *testing.T) {
	el, err := Parse(strings.NewReader(`<table/>`))
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := el.Attr("type"); ok {
		t.Fatal("expected missing type attribute to report ok=false")
	}
}

func Test_Parse_03_TextTrimsWhitespace(t *testing.T) {
	el, err := Parse(strings.NewReader("<value>\n   3.5  \n</value>"))
	if err != nil {
		t.Fatal(err)
	}

	if el.Text() != "3.5" {
		t.Fatalf("expected trimmed text 3.5, got %q", el.Text())
	}
}

func Test_Parse_04_ChildrenPreservesOrder(t *testing.T) {
	el, err := Parse(strings.NewReader(`<difference><value>10</value><value>2</value><value>3</value></difference>`))
	if err != nil {
		t.Fatal(err)
	}

	kids := el.Children()
	if len(kids) != 3 {
		t.Fatalf("expected 3 children, got %d", len(kids))
	}

	want := []string{"10", "2", "3"}
	for i, k := range kids {
		if k.Text() != want[i] {
			t.Fatalf("child %d: expected %q, got %q", i, want[i], k.Text())
		}
	}
}
