package expr

import "errors"

// Sentinel error kinds from spec.md §7 that are specific to the expression
// model. Property-resolution and table-construction failures are reported
// using the sentinels defined in their own packages (property,
// table) — callers errors.Is against whichever is relevant.
var (
	// ErrUnknownOperator is returned by the builder when a document element
	// names a tag outside the recognised operator/primitive vocabulary.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrNumericFailure covers division by zero, Pow domain errors, and any
	// other evaluation-time arithmetic failure.
	ErrNumericFailure = errors.New("numeric failure")
	// ErrMalformedDocument covers structural problems in a parsed document
	// element: wrong arity, missing required children, and so on.
	ErrMalformedDocument = errors.New("malformed document")
)
