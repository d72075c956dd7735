package expr

import (
	"fmt"
	"math"

	"github.com/flightdyn/fdcore/pkg/property"
)

// Kind identifies an Operator's arithmetic/transcendental function.
type Kind int

// Operator kinds from spec.md §3. TopLevel is a single-child wrapper used
// at expression tree roots (the "function" document element).
const (
	TopLevel Kind = iota
	Product
	Sum
	Difference
	Quotient
	Pow
	Abs
	Sin
	Cos
	Tan
	ASin
	ACos
	ATan
	ATan2
)

// arity reports the required child count for each operator kind, per
// spec.md §3's "Arity" paragraph. -1 means "2 or more".
func (k Kind) arity() int {
	switch k {
	case TopLevel, Abs, Sin, Cos, Tan, ASin, ACos, ATan:
		return 1
	case Quotient, Pow, ATan2:
		return 2
	case Product, Sum, Difference:
		return -1
	default:
		return 0
	}
}

func (k Kind) String() string {
	switch k {
	case TopLevel:
		return "function"
	case Product:
		return "product"
	case Sum:
		return "sum"
	case Difference:
		return "difference"
	case Quotient:
		return "quotient"
	case Pow:
		return "pow"
	case Abs:
		return "abs"
	case Sin:
		return "sin"
	case Cos:
		return "cos"
	case Tan:
		return "tan"
	case ASin:
		return "asin"
	case ACos:
		return "acos"
	case ATan:
		return "atan"
	case ATan2:
		return "atan2"
	default:
		return "unknown"
	}
}

// Operator is an n-ary arithmetic or transcendental expression node. Its
// children fold left-to-right for the variadic kinds (Product, Sum,
// Difference); see spec.md §4.2, "Algorithm by operator kind".
type Operator struct {
	Kind     Kind
	Children []Expression
	c        cache
}

// NewOperator constructs an Operator, validating child count against kind's
// required arity (spec.md §3, §9's Quotient/Difference open questions).
func NewOperator(registry *property.Registry, kind Kind, children []Expression) (*Operator, error) {
	n := kind.arity()

	switch {
	case n == -1 && len(children) < 2:
		return nil, fmt.Errorf("%w: %s requires at least 2 children, got %d", ErrMalformedDocument, kind, len(children))
	case n >= 1 && len(children) != n:
		return nil, fmt.Errorf("%w: %s requires exactly %d children, got %d", ErrMalformedDocument, kind, n, len(children))
	}

	return &Operator{Kind: kind, Children: children, c: cache{registry: registry}}, nil
}

// IsConstant reports whether every child is constant.
func (o *Operator) IsConstant() bool {
	for _, c := range o.Children {
		if !c.IsConstant() {
			return false
		}
	}

	return true
}

// Evaluate computes the operator's value per spec.md §4.2's algorithm
// table, consulting the memoisation slot first.
func (o *Operator) Evaluate() (float64, error) {
	if v, ok := o.c.get(); ok {
		return v, nil
	}

	values := make([]float64, len(o.Children))

	for i, child := range o.Children {
		v, err := child.Evaluate()
		if err != nil {
			return 0, err
		}

		values[i] = v
	}

	result, err := apply(o.Kind, values)
	if err != nil {
		return 0, err
	}

	o.c.put(result)

	return result, nil
}

func apply(kind Kind, v []float64) (float64, error) {
	switch kind {
	case TopLevel:
		return v[0], nil
	case Product:
		result := 1.0
		for _, x := range v {
			result *= x
		}

		return result, nil
	case Sum:
		result := 0.0
		for _, x := range v {
			result += x
		}

		return result, nil
	case Difference:
		result := v[0]
		for _, x := range v[1:] {
			result -= x
		}

		return result, nil
	case Quotient:
		if v[1] == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrNumericFailure)
		}

		return v[0] / v[1], nil
	case Pow:
		result := math.Pow(v[0], v[1])
		if math.IsNaN(result) {
			return 0, fmt.Errorf("%w: pow(%v, %v) out of domain", ErrNumericFailure, v[0], v[1])
		}

		return result, nil
	case Abs:
		return math.Abs(v[0]), nil
	case Sin:
		return math.Sin(v[0]), nil
	case Cos:
		return math.Cos(v[0]), nil
	case Tan:
		return math.Tan(v[0]), nil
	case ASin:
		return math.Asin(clamp(v[0], -1, 1)), nil
	case ACos:
		return math.Acos(clamp(v[0], -1, 1)), nil
	case ATan:
		return math.Atan(v[0]), nil
	case ATan2:
		return math.Atan2(v[0], v[1]), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownOperator, kind)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
