// Package services contains stateless domain services for the item bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ghuser/stallmarket/services/item/domain"
	"github.com/ghuser/stallmarket/services/item/domain/models"
)

// ValidateName enforces business rules for ItemName beyond the structural
// constraints enforced by the ItemName constructor (length 1–255).
//
// Business rules:
//   - No leading or trailing whitespace
//   - No control characters (Unicode category Cc)
//   - No consecutive spaces
//   - Must not be only whitespace characters
func ValidateName(name models.ItemName) error {
	s := name.String()

	if s != strings.TrimSpace(s) {
		return fmt.Errorf("item name must not have leading or trailing whitespace")
	}

	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("item name must not be only whitespace")
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("item name must not contain control characters")
		}
	}

	if strings.Contains(s, "  ") {
		return fmt.Errorf("item name must not contain consecutive spaces")
	}

	return nil
}

// ValidateItemForCreation performs cross-field validation on a fully-constructed
// Item aggregate before it is persisted. It assumes the Item was built via
// models.NewItem (so structural constraints are already satisfied) and
// adds business-level checks that span multiple fields.
//
// Name and price failures wrap the matching domain sentinel so callers can
// distinguish them with errors.Is; the remaining checks guard construction
// invariants and return plain errors.
func ValidateItemForCreation(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}

	if err := ValidateName(item.Name); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidItemName, err)
	}

	if item.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidItemPrice)
	}

	if item.OwnerID == uuid.Nil {
		return fmt.Errorf("owner_id must be set")
	}

	if item.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}

	if item.Status != models.StatusOnSale {
		return fmt.Errorf("new items must start as %s", models.StatusOnSale)
	}

	if item.UpdatedAt.Before(item.CreatedAt) {
		return fmt.Errorf("updated_at must not precede created_at")
	}

	return nil
}
