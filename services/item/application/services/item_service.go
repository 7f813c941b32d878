package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/stallmarket/pkg/cache"
	itemdomain "github.com/ghuser/stallmarket/services/item/domain"
	"github.com/ghuser/stallmarket/services/item/domain/models"
	"github.com/ghuser/stallmarket/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/stallmarket/services/item/domain/services"
)

// CreateItemInput carries the caller-supplied listing fields. The owner is
// never part of this input — it always comes from the authenticated caller.
type CreateItemInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
}

// ItemService enforces the listing lifecycle: unrestricted reads, creation
// stamped with the caller as owner, the one-way ON_SALE → SOLD_OUT
// transition, and owner-scoped deletion. It holds no state of its own; a
// single instance is safe for concurrent use.
// Event publishing is handled by the repository layer (outbox pattern).
// Reads are served from Redis cache when available.
type ItemService struct {
	repo  repositories.ItemRepository
	cache *pkgcache.ItemCache
}

// NewItemService returns an ItemService wired with the given repository and cache.
func NewItemService(repo repositories.ItemRepository, itemCache *pkgcache.ItemCache) *ItemService {
	return &ItemService{repo: repo, cache: itemCache}
}

// List returns every listing in store order. An empty result is not an error.
func (s *ItemService) List(ctx context.Context) ([]*models.Item, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// GetByID retrieves an Item using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
//
// Reading is unrestricted — no ownership check applies.
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if s.cache != nil {
		// Cache misses, errors and unparsable entries all fall through to Postgres.
		if cached, err := s.cache.Get(ctx, id); err == nil {
			if item, err := cachedToItem(cached); err == nil {
				return item, nil
			}
		}
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if s.cache != nil {
		// A MarkSold/Delete invalidation can land between the read above and
		// this Set, leaving a stale entry until the TTL expires or the worker
		// replays the lifecycle event. Writes never consult the cache, so the
		// window only affects reads.
		go func() {
			_ = s.cache.Set(context.Background(), itemToCached(item))
		}()
	}

	return item, nil
}

// Create validates and persists a new listing owned by ownerID with status
// ON_SALE. The repository publishes ItemCreatedEvent transactionally.
func (s *ItemService) Create(ctx context.Context, input CreateItemInput, ownerID uuid.UUID) (*models.Item, error) {
	itemName, err := models.NewItemName(input.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemName, err)
	}

	item, err := models.NewItem(ownerID, itemName, input.Price, input.Description)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemPrice, err)
	}

	// Validator failures already carry their domain sentinel.
	if err := domainsvcs.ValidateItemForCreation(item); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	return item, nil
}

// MarkSold transitions a listing to SOLD_OUT in a single store statement and
// returns the updated item. Marking an already sold-out item succeeds and
// re-returns it unchanged apart from updated_at. Returns ErrItemNotFound if
// no listing has this id.
func (s *ItemService) MarkSold(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.UpdateStatus(ctx, id, models.StatusSoldOut)
	if err != nil {
		return nil, fmt.Errorf("mark item sold: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), id)
	}
	return item, nil
}

// Delete removes a listing permanently. The repository matches id AND owner
// in one statement, so a missing item and someone else's item both surface
// as ErrItemNotFound and nothing is ever read before the delete.
func (s *ItemService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if _, err := s.repo.DeleteByOwner(ctx, id, ownerID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), id)
	}
	return nil
}

func cachedToItem(c *pkgcache.CachedItem) (*models.Item, error) {
	status, err := models.ParseItemStatus(c.Status)
	if err != nil {
		return nil, fmt.Errorf("cached item: %w", err)
	}
	return &models.Item{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Name:        models.ItemName(c.Name),
		Price:       c.Price,
		Description: c.Description,
		Status:      status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}, nil
}

func itemToCached(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		ID:          item.ID,
		OwnerID:     item.OwnerID,
		Name:        item.Name.String(),
		Price:       item.Price,
		Description: item.Description,
		Status:      item.Status.String(),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
