package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stallmarket/services/item/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Every method is a single logical store round-trip. Implementations map
// "no matching row" onto domain.ErrItemNotFound so callers never see a
// driver-level absence signal.
type ItemRepository interface {
	// FindAll retrieves every item in store order. An empty slice is a
	// valid, non-error result.
	FindAll(ctx context.Context) ([]*models.Item, error)

	// GetByID retrieves a single item with no ownership restriction.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// Save inserts a new Item.
	Save(ctx context.Context, item *models.Item) error

	// UpdateStatus sets the status of an existing item and refreshes its
	// updated_at in one statement, returning the updated row.
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ItemStatus) (*models.Item, error)

	// DeleteByOwner removes an item matched by both id AND owner in a single
	// statement. The combined predicate is what enforces ownership — there is
	// no separate read, so two concurrent deletes cannot race past the check.
	// Returns the deleted row for event publication.
	DeleteByOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Item, error)
}
