package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is the core aggregate for this bounded context: a marketplace listing.
type Item struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID // user who created the listing — the only caller allowed to delete it
	Name        ItemName
	Price       decimal.Decimal
	Description string
	Status      ItemStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewItem constructs a valid Item aggregate with a generated ID, the owner
// taken from the authenticated caller, and status ON_SALE. CreatedAt and
// UpdatedAt start equal.
func NewItem(ownerID uuid.UUID, name ItemName, price decimal.Decimal, description string) (*Item, error) {
	if price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}
	now := time.Now().UTC()
	return &Item{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Price:       price,
		Description: description,
		Status:      StatusOnSale,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MarkSold transitions the item to SOLD_OUT and refreshes UpdatedAt.
// Marking an already sold-out item is a no-op transition, not an error.
func (i *Item) MarkSold() {
	i.Status = StatusSoldOut
	i.UpdatedAt = time.Now().UTC()
}
