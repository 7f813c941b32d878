package models

import "fmt"

// ItemStatus is the sale state of a listing. The only transition the
// service performs is ON_SALE → SOLD_OUT; nothing moves an item back.
type ItemStatus string

const (
	StatusOnSale  ItemStatus = "ON_SALE"
	StatusSoldOut ItemStatus = "SOLD_OUT"
)

// ParseItemStatus converts a stored string into an ItemStatus.
func ParseItemStatus(s string) (ItemStatus, error) {
	switch ItemStatus(s) {
	case StatusOnSale, StatusSoldOut:
		return ItemStatus(s), nil
	}
	return "", fmt.Errorf("unknown item status %q", s)
}

// String returns the underlying string value.
func (s ItemStatus) String() string {
	return string(s)
}
