package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Watermill topics for the item lifecycle.
const (
	TopicItemCreated = "item.created"
	TopicItemSold    = "item.sold"
	TopicItemDeleted = "item.deleted"
)

// ItemCreatedEvent is published after a new listing is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicItemCreated).
type ItemCreatedEvent struct {
	EventID     uuid.UUID       `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int             `json:"version"`  // Schema version; increment on breaking changes
	ItemID      uuid.UUID       `json:"item_id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// ItemSoldEvent is published after a listing transitions to SOLD_OUT.
type ItemSoldEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemDeletedEvent is published after the owner removes a listing.
type ItemDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
