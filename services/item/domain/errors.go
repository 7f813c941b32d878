package domain

import "errors"

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist, or — for
	// owner-scoped deletion — exists but belongs to a different user. The two
	// cases are deliberately indistinguishable so callers cannot probe for
	// other users' listings.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemAlreadyExists indicates an item with the same unique constraint already exists.
	ErrItemAlreadyExists = errors.New("item already exists")

	// ErrInvalidItemName indicates the item name violates domain constraints.
	ErrInvalidItemName = errors.New("invalid item name")

	// ErrInvalidItemPrice indicates the item price violates domain constraints.
	ErrInvalidItemPrice = errors.New("invalid item price")
)
