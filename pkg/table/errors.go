package table

import "errors"

// ErrMalformedTable covers non-monotonic axes, empty data, mismatched
// column counts and any other structural defect caught at construction
// time.
var ErrMalformedTable = errors.New("malformed table")

// ErrUnresolvedProperty is returned by Lookup variants that resolve an axis
// through a bound property.Ref when that reference cannot be resolved.
var ErrUnresolvedProperty = errors.New("unresolved property")
