package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/stallmarket/services/item/domain/models"
)

// ItemResponse is the JSON shape of a listing returned by every item endpoint.
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	OwnerID     uuid.UUID       `json:"owner_id"    example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string          `json:"name"        example:"Walnut desk chair"`
	Price       decimal.Decimal `json:"price"       example:"100"`
	Description string          `json:"description" example:"Lightly used"`
	Status      string          `json:"status"      example:"ON_SALE"`
	CreatedAt   time.Time       `json:"created_at"  example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time       `json:"updated_at"  example:"2024-01-15T10:30:00Z"`
} // @name ItemResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
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
