package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	itemdomain "github.com/ghuser/stallmarket/services/item/domain"
	"github.com/ghuser/stallmarket/services/item/domain/models"
)

// fakeItemRepository is an in-memory ItemRepository with the same not-found
// semantics as the postgres implementation. failWith forces every method to
// return that error, for store-failure propagation tests.
type fakeItemRepository struct {
	items    map[uuid.UUID]*models.Item
	order    []uuid.UUID
	failWith error
}

func newFakeItemRepository() *fakeItemRepository {
	return &fakeItemRepository{items: make(map[uuid.UUID]*models.Item)}
}

func (r *fakeItemRepository) FindAll(_ context.Context) ([]*models.Item, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	items := make([]*models.Item, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, copyItem(r.items[id]))
	}
	return items, nil
}

func (r *fakeItemRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", id, itemdomain.ErrItemNotFound)
	}
	return copyItem(item), nil
}

func (r *fakeItemRepository) Save(_ context.Context, item *models.Item) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.items[item.ID]; ok {
		return itemdomain.ErrItemAlreadyExists
	}
	r.items[item.ID] = copyItem(item)
	r.order = append(r.order, item.ID)
	return nil
}

func (r *fakeItemRepository) UpdateStatus(_ context.Context, id uuid.UUID, status models.ItemStatus) (*models.Item, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", id, itemdomain.ErrItemNotFound)
	}
	item.Status = status
	item.UpdatedAt = time.Now().UTC()
	return copyItem(item), nil
}

func (r *fakeItemRepository) DeleteByOwner(_ context.Context, id, ownerID uuid.UUID) (*models.Item, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	item, ok := r.items[id]
	if !ok || item.OwnerID != ownerID {
		return nil, fmt.Errorf("item %s: %w", id, itemdomain.ErrItemNotFound)
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return item, nil
}

func copyItem(item *models.Item) *models.Item {
	c := *item
	return &c
}

func newTestService() (*ItemService, *fakeItemRepository) {
	repo := newFakeItemRepository()
	return NewItemService(repo, nil), repo
}

func validInput() CreateItemInput {
	return CreateItemInput{
		Name:        "Walnut desk chair",
		Price:       decimal.NewFromInt(100),
		Description: "",
	}
}

func TestItemService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store returns empty slice", func(t *testing.T) {
		svc, _ := newTestService()
		items, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected no items, got %d", len(items))
		}
	})

	t.Run("returns items in store order", func(t *testing.T) {
		svc, _ := newTestService()
		owner := uuid.New()
		first, _ := svc.Create(ctx, CreateItemInput{Name: "First", Price: decimal.NewFromInt(1)}, owner)
		second, _ := svc.Create(ctx, CreateItemInput{Name: "Second", Price: decimal.NewFromInt(2)}, owner)

		items, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].ID != first.ID || items[1].ID != second.ID {
			t.Fatal("expected store insertion order to be preserved")
		}
	})

	t.Run("store failure propagates", func(t *testing.T) {
		svc, repo := newTestService()
		repo.failWith = errors.New("connection reset")
		if _, err := svc.List(ctx); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestItemService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the created item", func(t *testing.T) {
		svc, _ := newTestService()
		created, err := svc.Create(ctx, validInput(), uuid.New())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := svc.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != created.ID || got.Name != created.Name || !got.Price.Equal(created.Price) {
			t.Fatalf("round-trip mismatch: got %+v, want %+v", got, created)
		}
		if got.OwnerID != created.OwnerID || got.Status != created.Status {
			t.Fatalf("round-trip mismatch: got %+v, want %+v", got, created)
		}
	})

	t.Run("unknown id returns ErrItemNotFound", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.GetByID(ctx, uuid.New())
		if !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("not-found error carries the requested id", func(t *testing.T) {
		svc, _ := newTestService()
		id := uuid.New()
		_, err := svc.GetByID(ctx, id)
		if err == nil || !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
		if !strings.Contains(err.Error(), id.String()) {
			t.Fatalf("expected error to carry id %s, got %q", id, err)
		}
	})
}

func TestItemService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("owner comes from the caller, never the input", func(t *testing.T) {
		svc, _ := newTestService()
		caller := uuid.New()
		item, err := svc.Create(ctx, validInput(), caller)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.OwnerID != caller {
			t.Fatalf("expected OwnerID %v, got %v", caller, item.OwnerID)
		}
	})

	t.Run("new items start ON_SALE with equal timestamps", func(t *testing.T) {
		svc, _ := newTestService()
		item, err := svc.Create(ctx, validInput(), uuid.New())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.Status != models.StatusOnSale {
			t.Fatalf("expected %v, got %v", models.StatusOnSale, item.Status)
		}
		if !item.CreatedAt.Equal(item.UpdatedAt) {
			t.Fatal("expected CreatedAt == UpdatedAt at creation")
		}
		if item.ID == uuid.Nil {
			t.Fatal("expected generated id")
		}
	})

	t.Run("empty name fails with ErrInvalidItemName", func(t *testing.T) {
		svc, _ := newTestService()
		input := validInput()
		input.Name = ""
		_, err := svc.Create(ctx, input, uuid.New())
		if !errors.Is(err, itemdomain.ErrInvalidItemName) {
			t.Fatalf("expected ErrInvalidItemName, got %v", err)
		}
	})

	t.Run("name with consecutive spaces fails with ErrInvalidItemName", func(t *testing.T) {
		svc, _ := newTestService()
		input := validInput()
		input.Name = "Walnut  desk chair"
		_, err := svc.Create(ctx, input, uuid.New())
		if !errors.Is(err, itemdomain.ErrInvalidItemName) {
			t.Fatalf("expected ErrInvalidItemName, got %v", err)
		}
	})

	t.Run("negative price fails with ErrInvalidItemPrice", func(t *testing.T) {
		svc, _ := newTestService()
		input := validInput()
		input.Price = decimal.NewFromInt(-10)
		_, err := svc.Create(ctx, input, uuid.New())
		if !errors.Is(err, itemdomain.ErrInvalidItemPrice) {
			t.Fatalf("expected ErrInvalidItemPrice, got %v", err)
		}
	})

	t.Run("store failure propagates", func(t *testing.T) {
		svc, repo := newTestService()
		repo.failWith = errors.New("unique constraint race")
		if _, err := svc.Create(ctx, validInput(), uuid.New()); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestItemService_MarkSold(t *testing.T) {
	ctx := context.Background()

	t.Run("transitions to SOLD_OUT leaving other fields unchanged", func(t *testing.T) {
		svc, _ := newTestService()
		created, _ := svc.Create(ctx, validInput(), uuid.New())

		updated, err := svc.MarkSold(ctx, created.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != models.StatusSoldOut {
			t.Fatalf("expected %v, got %v", models.StatusSoldOut, updated.Status)
		}
		if updated.ID != created.ID || updated.Name != created.Name ||
			!updated.Price.Equal(created.Price) || updated.OwnerID != created.OwnerID ||
			updated.Description != created.Description {
			t.Fatalf("expected only status/updated_at to change: got %+v", updated)
		}
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Fatal("CreatedAt must be immutable")
		}
		if updated.UpdatedAt.Before(created.UpdatedAt) {
			t.Fatal("UpdatedAt must be refreshed")
		}
	})

	t.Run("already sold out is idempotent", func(t *testing.T) {
		svc, _ := newTestService()
		created, _ := svc.Create(ctx, validInput(), uuid.New())
		if _, err := svc.MarkSold(ctx, created.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		again, err := svc.MarkSold(ctx, created.ID)
		if err != nil {
			t.Fatalf("expected idempotent success, got %v", err)
		}
		if again.Status != models.StatusSoldOut {
			t.Fatalf("expected %v, got %v", models.StatusSoldOut, again.Status)
		}
	})

	t.Run("unknown id returns ErrItemNotFound carrying the id", func(t *testing.T) {
		svc, _ := newTestService()
		id := uuid.New()
		_, err := svc.MarkSold(ctx, id)
		if !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
		if !strings.Contains(err.Error(), id.String()) {
			t.Fatalf("expected error to carry id %s, got %q", id, err)
		}
	})

	t.Run("store failure propagates untouched", func(t *testing.T) {
		svc, repo := newTestService()
		storeErr := errors.New("deadlock detected")
		repo.failWith = storeErr
		_, err := svc.MarkSold(ctx, uuid.New())
		if !errors.Is(err, storeErr) {
			t.Fatalf("expected store error to propagate, got %v", err)
		}
		if errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Fatal("store failure must not be masked as not-found")
		}
	})
}

func TestItemService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can delete; item is gone afterwards", func(t *testing.T) {
		svc, _ := newTestService()
		owner := uuid.New()
		created, _ := svc.Create(ctx, validInput(), owner)

		if err := svc.Delete(ctx, created.ID, owner); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := svc.GetByID(ctx, created.ID)
		if !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound after delete, got %v", err)
		}
	})

	t.Run("non-owner gets ErrItemNotFound and the item survives", func(t *testing.T) {
		svc, _ := newTestService()
		owner := uuid.New()
		created, _ := svc.Create(ctx, validInput(), owner)

		err := svc.Delete(ctx, created.ID, uuid.New())
		if !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound for foreign owner, got %v", err)
		}

		if _, err := svc.GetByID(ctx, created.ID); err != nil {
			t.Fatalf("item must still exist after rejected delete: %v", err)
		}
	})

	t.Run("unknown id returns ErrItemNotFound carrying the id", func(t *testing.T) {
		svc, _ := newTestService()
		id := uuid.New()
		err := svc.Delete(ctx, id, uuid.New())
		if !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
		if !strings.Contains(err.Error(), id.String()) {
			t.Fatalf("expected error to carry id %s, got %q", id, err)
		}
	})

	t.Run("deleted owner can not delete twice", func(t *testing.T) {
		svc, _ := newTestService()
		owner := uuid.New()
		created, _ := svc.Create(ctx, validInput(), owner)

		if err := svc.Delete(ctx, created.ID, owner); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := svc.Delete(ctx, created.ID, owner)
		if !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound on second delete, got %v", err)
		}
	})
}

// Full lifecycle walk-through: create, sell, reject a foreign delete, then
// let the owner remove the listing.
func TestItemService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	owner := uuid.New()
	stranger := uuid.New()

	item, err := svc.Create(ctx, CreateItemInput{Name: "chair", Price: decimal.NewFromInt(100)}, owner)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Status != models.StatusOnSale || item.OwnerID != owner {
		t.Fatalf("unexpected created item: %+v", item)
	}

	sold, err := svc.MarkSold(ctx, item.ID)
	if err != nil {
		t.Fatalf("mark sold: %v", err)
	}
	if sold.Status != models.StatusSoldOut {
		t.Fatalf("expected SOLD_OUT, got %v", sold.Status)
	}

	if err := svc.Delete(ctx, item.ID, stranger); !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound for stranger, got %v", err)
	}
	if _, err := svc.GetByID(ctx, item.ID); err != nil {
		t.Fatalf("item must survive the stranger's delete: %v", err)
	}

	if err := svc.Delete(ctx, item.ID, owner); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, item.ID); !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound after delete, got %v", err)
	}
}
