package expr

import (
	"fmt"
	"strconv"

	"github.com/flightdyn/fdcore/pkg/docfmt"
	"github.com/flightdyn/fdcore/pkg/property"
	"github.com/flightdyn/fdcore/pkg/table"
)

// operatorTags maps a document tag to its Operator Kind, per spec.md §4.2's
// tag vocabulary.
var operatorTags = map[string]Kind{
	"product":    Product,
	"sum":        Sum,
	"difference": Difference,
	"quotient":   Quotient,
	"pow":        Pow,
	"abs":        Abs,
	"sin":        Sin,
	"cos":        Cos,
	"tan":        Tan,
	"asin":       ASin,
	"acos":       ACos,
	"atan":       ATan,
	"atan2":      ATan2,
}

// Build walks one document element and returns the Expression it denotes,
// per spec.md §4.2's builder contract. Recognised tags are value, property,
// table, and the operator tags in operatorTags; description is a sibling
// annotation, not an expression, and is skipped by BuildChildren rather than
// reaching Build. Anything else fails with ErrUnknownOperator.
func Build(registry *property.Registry, el *docfmt.Element) (Expression, error) {
	switch tag := el.Tag(); tag {
	case "value":
		v, err := strconv.ParseFloat(el.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed value %q", ErrMalformedDocument, el.Text())
		}

		return NewConstant(v), nil
	case "property":
		return NewPropertyRef(property.NewRef(registry, el.Text())), nil
	case "table":
		t, err := table.BuildFromElement(registry, el)
		if err != nil {
			return nil, err
		}

		return NewTableExpr(registry, t), nil
	default:
		kind, ok := operatorTags[tag]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownOperator, tag)
		}

		children, err := BuildChildren(registry, el)
		if err != nil {
			return nil, err
		}

		return NewOperator(registry, kind, children)
	}
}

// BuildChildren builds an Expression for every child of el except
// description elements, preserving document order.
func BuildChildren(registry *property.Registry, el *docfmt.Element) ([]Expression, error) {
	kids := el.Children()
	out := make([]Expression, 0, len(kids))

	for i := range kids {
		if kids[i].Tag() == "description" {
			continue
		}

		e, err := Build(registry, &kids[i])
		if err != nil {
			return nil, err
		}

		out = append(out, e)
	}

	return out, nil
}

// BuildFunction builds and publishes a single top-level <function> element,
// per spec.md §4.2: "A top-level function element ... publishes it into the
// Property Registry as a tied node backed by its own evaluation." The
// function's name attribute is required.
func BuildFunction(registry *property.Registry, el *docfmt.Element) (*property.Node, error) {
	if el.Tag() != "function" {
		return nil, fmt.Errorf("%w: expected function element, got %s", ErrMalformedDocument, el.Tag())
	}

	name, ok := el.Attr("name")
	if !ok {
		return nil, fmt.Errorf("%w: function element missing name attribute", ErrMalformedDocument)
	}

	children, err := BuildChildren(registry, el)
	if err != nil {
		return nil, err
	}

	top, err := NewOperator(registry, TopLevel, children)
	if err != nil {
		return nil, err
	}

	return Publish(registry, name, top)
}

// BuildDocument builds and publishes every top-level function element
// directly under root, in document order.
func BuildDocument(registry *property.Registry, root *docfmt.Element) ([]*property.Node, error) {
	fns := root.ChildrenTagged("function")
	out := make([]*property.Node, 0, len(fns))

	for _, fn := range fns {
		node, err := BuildFunction(registry, fn)
		if err != nil {
			return nil, err
		}

		out = append(out, node)
	}

	return out, nil
}
