package types

import "errors"

// Domain errors for type validation
var (
	// Item errors
	ErrMissingItemID   = errors.New("item id is required")
	ErrMissingItemName = errors.New("item name is required")
	ErrMissingExec     = errors.New("item exec command is required")

	// Lookup errors
	ErrItemNotFound = errors.New("item not found")
)
