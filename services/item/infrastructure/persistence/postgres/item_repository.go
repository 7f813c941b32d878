package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/stallmarket/pkg/database"
	"github.com/ghuser/stallmarket/pkg/events"
	itemdomain "github.com/ghuser/stallmarket/services/item/domain"
	domainevents "github.com/ghuser/stallmarket/services/item/domain/events"
	"github.com/ghuser/stallmarket/services/item/domain/models"
	"github.com/ghuser/stallmarket/services/item/infrastructure/persistence/postgres/db"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
// Mutations that emit domain events (Save, UpdateStatus, DeleteByOwner) run
// inside a transaction so the row change and the outbox message commit together.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. The bus publishes lifecycle events within the mutating transaction.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus}
}

// FindAll retrieves every item ordered by creation time.
func (r *ItemRepository) FindAll(ctx context.Context) ([]*models.Item, error) {
	q := db.New(r.db.DB())
	rows, err := q.FindAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}

	items := make([]*models.Item, 0, len(rows))
	for _, row := range rows {
		item, err := rowToItem(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// GetByID retrieves an Item by ID. Returns ErrItemNotFound if no row matches;
// the error message carries the requested id for diagnostics.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	q := db.New(r.db.DB())
	row, err := q.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %s: %w", id, itemdomain.ErrItemNotFound)
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row)
}

// Save persists a new Item and publishes an ItemCreatedEvent within the same
// transaction. Returns ErrItemAlreadyExists on unique constraint violations.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.InsertItem(ctx, db.InsertItemParams{
			ID:          item.ID,
			OwnerID:     item.OwnerID,
			Name:        item.Name.String(),
			Price:       item.Price,
			Description: item.Description,
			Status:      item.Status.String(),
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		}); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return itemdomain.ErrItemAlreadyExists
			}
			return fmt.Errorf("insert item: %w", err)
		}

		if r.bus != nil {
			event := domainevents.ItemCreatedEvent{
				EventID:     uuid.New(),
				Version:     1,
				ItemID:      item.ID,
				OwnerID:     item.OwnerID,
				Name:        item.Name.String(),
				Price:       item.Price,
				Description: item.Description,
				Status:      item.Status.String(),
				OccurredAt:  item.CreatedAt,
			}
			if err := r.publish(tx, domainevents.TopicItemCreated, event.EventID, event); err != nil {
				return fmt.Errorf("publish item created: %w", err)
			}
		}
		return nil
	})
}

// UpdateStatus sets the item's status and refreshes updated_at in one
// statement, publishing ItemSoldEvent in the same transaction when the new
// status is SOLD_OUT. Returns ErrItemNotFound if no row matches.
func (r *ItemRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ItemStatus) (*models.Item, error) {
	var item *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := q.UpdateItemStatus(ctx, db.UpdateItemStatusParams{
			ID:     id,
			Status: status.String(),
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("item %s: %w", id, itemdomain.ErrItemNotFound)
			}
			return fmt.Errorf("update item status: %w", err)
		}

		if item, err = rowToItem(row); err != nil {
			return err
		}

		if r.bus != nil && status == models.StatusSoldOut {
			event := domainevents.ItemSoldEvent{
				EventID:    uuid.New(),
				Version:    1,
				ItemID:     item.ID,
				OwnerID:    item.OwnerID,
				OccurredAt: item.UpdatedAt,
			}
			if err := r.publish(tx, domainevents.TopicItemSold, event.EventID, event); err != nil {
				return fmt.Errorf("publish item sold: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteByOwner removes an item matched by both id and owner in a single
// DELETE, publishing ItemDeletedEvent in the same transaction. A missing item
// and a foreign owner both return ErrItemNotFound — the statement cannot tell
// them apart and neither should callers.
func (r *ItemRepository) DeleteByOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Item, error) {
	var item *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := q.DeleteItemByOwner(ctx, db.DeleteItemByOwnerParams{
			ID:      id,
			OwnerID: ownerID,
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("item %s: %w", id, itemdomain.ErrItemNotFound)
			}
			return fmt.Errorf("delete item: %w", err)
		}

		if item, err = rowToItem(row); err != nil {
			return err
		}

		if r.bus != nil {
			event := domainevents.ItemDeletedEvent{
				EventID:    uuid.New(),
				Version:    1,
				ItemID:     item.ID,
				OwnerID:    item.OwnerID,
				OccurredAt: time.Now().UTC(),
			}
			if err := r.publish(tx, domainevents.TopicItemDeleted, event.EventID, event); err != nil {
				return fmt.Errorf("publish item deleted: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *ItemRepository) publish(tx *sql.Tx, topic string, eventID uuid.UUID, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// rowToItem maps a db.ItemItem to a domain models.Item.
func rowToItem(row db.ItemItem) (*models.Item, error) {
	status, err := models.ParseItemStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", row.ID, err)
	}
	return &models.Item{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Name:        models.ItemName(row.Name),
		Price:       row.Price,
		Description: row.Description,
		Status:      status,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}
