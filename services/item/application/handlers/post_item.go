package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ghuser/stallmarket/pkg/auth"
	"github.com/ghuser/stallmarket/pkg/errhttp"
	"github.com/ghuser/stallmarket/pkg/httpx"
	pkgvalidator "github.com/ghuser/stallmarket/pkg/validator"
	appsvcs "github.com/ghuser/stallmarket/services/item/application/services"
)

// CreateItemRequest is the request body for POST /items. The owner is never
// part of the body — it comes from the authenticated session.
type CreateItemRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255" example:"Walnut desk chair"`
	Price       decimal.Decimal `json:"price" example:"100"`
	Description string          `json:"description" example:"Lightly used"`
} // @name CreateItemRequest

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new listing owned by the authenticated user.
//
//	@Summary		Create listing
//	@Description	Creates a new listing with status ON_SALE owned by the caller
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Listing creation request"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}
	if req.Price.IsNegative() {
		httpx.JSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "price must not be negative"})
		return
	}

	item, err := h.svc.Item.Create(r.Context(), appsvcs.CreateItemInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	}, userID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}
