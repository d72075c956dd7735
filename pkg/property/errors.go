package property

import "errors"

// Sentinel error kinds. Callers compare with errors.Is against these, never
// against a formatted message.
var (
	// ErrMalformedDocument indicates a configuration document could not be
	// parsed into a valid property path or tree shape.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrUnresolvedProperty indicates a PropertyRef could not be bound to a
	// node at first evaluation.
	ErrUnresolvedProperty = errors.New("unresolved property")
	// ErrAlreadyTied indicates Tie was called on a node that already has a
	// supplier attached.
	ErrAlreadyTied = errors.New("already tied")
	// ErrNotWritable indicates Write was called on a tied node, or on a node
	// whose WRITE attribute is unset.
	ErrNotWritable = errors.New("not writable")
)
