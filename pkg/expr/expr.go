// Package expr implements the Expression Model: a uniform evaluate()
// contract over constants, late-bound property references, n-ary
// arithmetic/transcendental operators, lookup tables and parameter-bound
// template calls, composable into arbitrarily nested trees (spec.md §3,
// §4.2).
package expr

import (
	"github.com/flightdyn/fdcore/pkg/property"
	"github.com/flightdyn/fdcore/pkg/table"
)

// Expression is the uniform contract every node kind implements. Dispatch
// happens once per call, at the root of each node (spec.md §9, "Expression
// polymorphism") — there is no virtual-call chain beyond that single
// dispatch, since each concrete type owns its own evaluation logic rather
// than delegating through a shared base.
type Expression interface {
	// Evaluate computes the node's current value, consulting and updating
	// its memoisation slot when the node owns one.
	Evaluate() (float64, error)
	// IsConstant reports whether the node's value can never change across
	// evaluations (true for Constant and for operators whose entire
	// subtree is constant).
	IsConstant() bool
}

// Constant is an immutable scalar leaf. It never memoises — there is
// nothing to invalidate.
type Constant struct {
	Value float64
}

// NewConstant constructs a Constant expression.
func NewConstant(v float64) *Constant { return &Constant{Value: v} }

// Evaluate returns the constant's value.
func (c *Constant) Evaluate() (float64, error) { return c.Value, nil }

// IsConstant always returns true.
func (c *Constant) IsConstant() bool { return true }

// PropertyRef wraps a property.Ref as a leaf expression node.
type PropertyRef struct {
	Ref *property.Ref
}

// NewPropertyRef constructs a PropertyRef expression bound to ref.
func NewPropertyRef(ref *property.Ref) *PropertyRef {
	return &PropertyRef{Ref: ref}
}

// Evaluate resolves and reads the underlying property, applying its sign.
func (p *PropertyRef) Evaluate() (float64, error) { return p.Ref.Value() }

// IsConstant always returns false: a property's value can change between
// frames even if its node never moves.
func (p *PropertyRef) IsConstant() bool { return false }

// TableExpr wraps a *table.Table as an expression node, delegating axis
// resolution and interpolation to it.
type TableExpr struct {
	Table *table.Table
	c     cache
}

// NewTableExpr constructs a TableExpr. registry may be nil if the table's
// owner does not participate in frame-based memoisation.
func NewTableExpr(registry *property.Registry, t *table.Table) *TableExpr {
	return &TableExpr{Table: t, c: cache{registry: registry}}
}

// Evaluate resolves the table's bound axes and interpolates.
func (t *TableExpr) Evaluate() (float64, error) {
	if v, ok := t.c.get(); ok {
		return v, nil
	}

	v, err := t.Table.GetValue()
	if err != nil {
		return 0, err
	}

	t.c.put(v)

	return v, nil
}

// IsConstant always returns false: a table's axes are bound to properties.
func (t *TableExpr) IsConstant() bool { return false }

// Parameter is the late-bound placeholder inside a Template body. A single
// Parameter instance is shared by every reference to it within one
// Template's Body; TemplateCall sets its current value immediately before
// evaluating that body (spec.md §3, "TemplateCall").
type Parameter struct {
	value float64
}

// Evaluate returns the parameter's currently-bound value.
func (p *Parameter) Evaluate() (float64, error) { return p.value, nil }

// IsConstant always returns false.
func (p *Parameter) IsConstant() bool { return false }

// Template is a reusable sub-expression parameterised by one Parameter
// placeholder. Building two TemplateCalls against the same Template shares
// the Body tree but not its evaluation: TemplateCall rebinds Param on every
// call.
type Template struct {
	Name  string
	Param *Parameter
	Body  Expression
}

// NewTemplate constructs a Template whose Body may reference param.
func NewTemplate(name string, param *Parameter, body Expression) *Template {
	return &Template{Name: name, Param: param, Body: body}
}

// TemplateCall binds one late-bound property reference as a Template's
// argument and evaluates its Body.
type TemplateCall struct {
	Template *Template
	Arg      *property.Ref
	c        cache
}

// NewTemplateCall constructs a call of template with arg bound to its
// Parameter.
func NewTemplateCall(registry *property.Registry, template *Template, arg *property.Ref) *TemplateCall {
	return &TemplateCall{Template: template, Arg: arg, c: cache{registry: registry}}
}

// Evaluate resolves Arg, binds it into the Template's Parameter, and
// evaluates the Template's Body.
func (t *TemplateCall) Evaluate() (float64, error) {
	if v, ok := t.c.get(); ok {
		return v, nil
	}

	argVal, err := t.Arg.Value()
	if err != nil {
		return 0, err
	}

	t.Template.Param.value = argVal

	v, err := t.Template.Body.Evaluate()
	if err != nil {
		return 0, err
	}

	t.c.put(v)

	return v, nil
}

// IsConstant always returns false: a TemplateCall's argument is a property
// reference.
func (t *TemplateCall) IsConstant() bool { return false }
