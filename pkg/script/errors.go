package script

import "errors"

// ErrMalformedDocument covers script documents with missing attributes,
// unknown action kinds, or conditions that don't parse into exactly three
// tokens.
var ErrMalformedDocument = errors.New("malformed script document")

// ErrUnresolvedProperty is returned when a condition operand or action
// target names a property that does not exist at script load time, per
// spec.md §4.4: "actions that name non-existent properties fail with
// UnresolvedProperty at script load."
var ErrUnresolvedProperty = errors.New("unresolved property")
