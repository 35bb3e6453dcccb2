package common

import "errors"

// Core error kinds. Services wrap these with fmt.Errorf("...: %w") so handlers
// can classify failures with errors.Is while keeping operation context.
var (
	// ErrNotFound reports a reference to a nonexistent supplier, inventory
	// item, purchase order, or order item.
	ErrNotFound = errors.New("not found")

	// ErrValidation reports malformed input: non-positive quantities or
	// prices, empty required fields, unparseable numerics.
	ErrValidation = errors.New("validation failed")
)
